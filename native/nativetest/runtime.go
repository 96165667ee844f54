// Package nativetest provides an in-memory OpenCL runtime implementing
// native.API, for tests that must not depend on real hardware.
//
// The fake follows the reference-counting rules of the OpenCL
// specification: every object starts with one reference, command queues
// and buffers hold an implicit reference on their context, and an object
// is destroyed when its count drops to zero. Calls are counted per entry
// point and individual calls can be made to fail:
//
//	rt := nativetest.New()
//	p := rt.AddPlatform("Fake Platform")
//	p.AddDevice(nativetest.DeviceConfig{Name: "Fake GPU", Type: native.DeviceTypeGPU})
//	rt.FailNext(native.SymRetainMemObject, native.OutOfResources)
package nativetest

import (
	"sync"
	"unsafe"

	"github.com/gogpu/cl/native"
)

// Kind identifies the reference-counted object kinds the fake tracks.
type Kind int

const (
	KindContext Kind = iota + 1
	KindCommandQueue
	KindMem
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindContext:
		return "context"
	case KindCommandQueue:
		return "command queue"
	case KindMem:
		return "mem object"
	default:
		return "unknown"
	}
}

type object struct {
	kind Kind
	refs int

	// context
	platform *Platform
	devices  []native.DeviceID
	props    []native.ContextProperty
	notify   native.ContextNotify

	// command queue and mem object
	context    native.Context
	device     native.DeviceID
	properties uint64
	size       uintptr
}

// Runtime is a fake OpenCL runtime. The zero value is not usable; call New.
type Runtime struct {
	// EmptyPlatformStatus is what clGetPlatformIDs reports when no
	// platform was added. The Khronos ICD loader reports
	// CL_PLATFORM_NOT_FOUND_KHR, which is the default.
	EmptyPlatformStatus native.Status

	mu        sync.Mutex
	next      uintptr
	platforms []*Platform
	byID      map[native.PlatformID]*Platform
	devices   map[native.DeviceID]*Device
	objects   map[uintptr]*object
	calls     map[string]int
	faults    map[string][]native.Status
}

var _ native.API = (*Runtime)(nil)

// New creates an empty runtime with no platforms.
func New() *Runtime {
	return &Runtime{
		EmptyPlatformStatus: native.PlatformNotFoundKHR,
		next:                0x1000,
		byID:                make(map[native.PlatformID]*Platform),
		devices:             make(map[native.DeviceID]*Device),
		objects:             make(map[uintptr]*object),
		calls:               make(map[string]int),
		faults:              make(map[string][]native.Status),
	}
}

// FailNext makes the next call of the named entry point (one of the
// native.Sym* constants) return status without side effects. Calls queue
// up: FailNext twice fails the next two calls.
func (r *Runtime) FailNext(sym string, status native.Status) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.faults[sym] = append(r.faults[sym], status)
}

// Calls returns how many times the named entry point was called,
// including calls that failed.
func (r *Runtime) Calls(sym string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls[sym]
}

// RefCount returns the reference count of a context, command queue or
// mem object handle, or 0 once the object has been destroyed.
func (r *Runtime) RefCount(handle uintptr) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if obj, ok := r.objects[handle]; ok {
		return obj.refs
	}
	return 0
}

// Live returns how many objects of the given kind are still alive.
func (r *Runtime) Live(kind Kind) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, obj := range r.objects {
		if obj.kind == kind {
			n++
		}
	}
	return n
}

// Notify invokes the error callback of every live context with errinfo
// and returns how many callbacks ran. Callbacks run without the runtime
// lock held.
func (r *Runtime) Notify(errinfo string) int {
	r.mu.Lock()
	var notify []native.ContextNotify
	for _, obj := range r.objects {
		if obj.kind == KindContext && obj.notify != nil {
			notify = append(notify, obj.notify)
		}
	}
	r.mu.Unlock()

	for _, fn := range notify {
		fn(errinfo, nil)
	}
	return len(notify)
}

// enter records a call and pops a pending fault. Callers hold r.mu.
func (r *Runtime) enter(sym string) (native.Status, bool) {
	r.calls[sym]++
	pending := r.faults[sym]
	if len(pending) == 0 {
		return native.Success, false
	}
	r.faults[sym] = pending[1:]
	return pending[0], true
}

func (r *Runtime) handle() uintptr {
	r.next += 0x10
	return r.next
}

func (r *Runtime) lookup(h uintptr, kind Kind) (*object, bool) {
	obj, ok := r.objects[h]
	if !ok || obj.kind != kind {
		return nil, false
	}
	return obj, true
}

func (r *Runtime) retain(sym string, h uintptr, kind Kind, invalid native.Status) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(sym); failed {
		return status
	}
	obj, ok := r.lookup(h, kind)
	if !ok {
		return invalid
	}
	obj.refs++
	return native.Success
}

func (r *Runtime) release(sym string, h uintptr, kind Kind, invalid native.Status) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(sym); failed {
		return status
	}
	if _, ok := r.lookup(h, kind); !ok {
		return invalid
	}
	r.unref(h)
	return native.Success
}

// unref drops one reference and destroys the object at zero. Queues and
// buffers give back the implicit reference they hold on their context.
func (r *Runtime) unref(h uintptr) {
	obj := r.objects[h]
	obj.refs--
	if obj.refs > 0 {
		return
	}
	delete(r.objects, h)
	if obj.kind != KindContext {
		r.unref(uintptr(obj.context))
	}
}

// writeInfo implements the size-query / fill contract shared by every
// clGet*Info entry point.
func writeInfo(src []byte, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	if value != nil {
		if size < uintptr(len(src)) {
			return native.InvalidValue
		}
		copy(unsafe.Slice((*byte)(value), size), src)
	}
	if sizeRet != nil {
		*sizeRet = uintptr(len(src))
	}
	return native.Success
}

// writeList implements the count-query / fill contract of
// clGetPlatformIDs and clGetDeviceIDs.
func writeList[T any](ids []T, numEntries uint32, out *T, numRet *uint32) native.Status {
	if (out != nil && numEntries == 0) || (out == nil && numRet == nil) {
		return native.InvalidValue
	}
	if out != nil {
		copy(unsafe.Slice(out, numEntries), ids)
	}
	if numRet != nil {
		*numRet = uint32(len(ids))
	}
	return native.Success
}
