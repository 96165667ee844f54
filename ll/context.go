package ll

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/cl/native"
)

// Context owns one reference to an OpenCL context.
type Context struct {
	owner[native.Context]
}

func newContext(rt *Runtime, h native.Context) *Context {
	c := &Context{owner: owner[native.Context]{rt: rt, handle: h, ops: contextOps}}
	track(c, &c.owner)
	return c
}

// CreateContext creates a context for devices on platform. The context
// reports asynchronous errors through a callback that logs them and ends
// the process, since an error cannot be carried back across the runtime.
func (rt *Runtime) CreateContext(platform PlatformID, devices []DeviceID) (*Context, error) {
	if len(devices) == 0 {
		return nil, ErrNoDevices
	}

	props := [...]native.ContextProperty{native.ContextPlatform, native.ContextProperty(platform.raw), 0}
	raw := rawDevices(devices)

	var status native.Status
	h := rt.api.CreateContext(&props[0], uint32(len(raw)), &raw[0], rt.contextNotify, &status)
	if err := CheckStatus(status); err != nil {
		return nil, err
	}

	rt.Logger().Debug("opencl: context created", "platform", platform, "devices", len(devices), "handle", fmt.Sprintf("%#x", uintptr(h)))
	return newContext(rt, h), nil
}

func (rt *Runtime) contextNotify(errinfo string, privateInfo []byte) {
	rt.Logger().Error("opencl: context error", "errinfo", errinfo, "private_info_size", len(privateInfo))
	abort(&Violation{Kind: KindContextError, Detail: errinfo})
}

// TryClone returns a new owner of the same context, adding one native
// reference.
// It must not be called concurrently with Release on the same owner:
// the retain could then reach a handle that was just freed.
func (c *Context) TryClone() (*Context, error) {
	if err := c.retain(); err != nil {
		return nil, err
	}
	return newContext(c.rt, c.handle), nil
}

// Clone is TryClone for callers that cannot handle failure. A failed
// retain panics with a *Violation of kind KindRetainFailed.
func (c *Context) Clone() *Context {
	c.mustRetain()
	return newContext(c.rt, c.handle)
}

// Release gives back this owner's reference. Later calls do nothing.
func (c *Context) Release() {
	c.release()
}

// Runtime returns the runtime c was created with.
func (c *Context) Runtime() *Runtime {
	return c.rt
}

// CreateBuffer allocates a device buffer of size bytes.
func (c *Context) CreateBuffer(prot MemProt, size int) (*Mem, error) {
	if err := c.live(); err != nil {
		return nil, err
	}
	if !prot.valid() {
		return nil, fmt.Errorf("ll: invalid memory protection %v: %w", prot, native.InvalidValue)
	}
	if size < 0 {
		return nil, fmt.Errorf("ll: negative buffer size %d: %w", size, native.InvalidBufferSize)
	}

	var status native.Status
	h := c.rt.api.CreateBuffer(c.handle, uint64(prot.Flags()), uintptr(size), nil, &status)
	if err := CheckStatus(status); err != nil {
		return nil, err
	}

	c.rt.Logger().Debug("opencl: buffer created", "prot", prot, "size", size, "handle", fmt.Sprintf("%#x", uintptr(h)))
	return newMem(c.rt, h), nil
}

// CreateCommandQueue creates a queue on device, which must be one of the
// context's devices.
func (c *Context) CreateCommandQueue(device DeviceID, props CommandQueueProperties) (*CommandQueue, error) {
	if err := c.live(); err != nil {
		return nil, err
	}

	var status native.Status
	h := c.rt.api.CreateCommandQueue(c.handle, device.raw, uint64(props), &status)
	if err := CheckStatus(status); err != nil {
		return nil, err
	}

	c.rt.Logger().Debug("opencl: command queue created", "device", device, "properties", props, "handle", fmt.Sprintf("%#x", uintptr(h)))
	return newCommandQueue(c.rt, h), nil
}

// ContextInfo describes a context property whose decoded value has type T.
type ContextInfo[T any] struct {
	param native.ContextInfo
	read  shape[T]
}

func (i ContextInfo[T]) String() string {
	return fmt.Sprintf("CL_CONTEXT_INFO(%#x)", uint32(i.param))
}

// Context property descriptors.
var (
	ContextReferenceCount = ContextInfo[uint32]{native.ContextReferenceCount, readUint}
	ContextNumDevices     = ContextInfo[uint32]{native.ContextNumDevices, readUint}
	ContextDevices        = ContextInfo[[]DeviceID]{native.ContextDevices, readDevices}
)

// GetContextInfo reads one property of c.
func GetContextInfo[T any](c *Context, info ContextInfo[T]) (T, error) {
	if err := c.live(); err != nil {
		var zero T
		return zero, err
	}
	return query(c.rt, info.String(), info.read, func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
		return c.rt.api.GetContextInfo(c.handle, info.param, size, value, sizeRet)
	})
}
