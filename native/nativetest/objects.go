package nativetest

import (
	"math/bits"
	"slices"
	"unsafe"

	"github.com/gogpu/cl/native"
)

const (
	knownQueueProperties = native.QueueOutOfOrderExecModeEnable | native.QueueProfilingEnable |
		native.QueueOnDevice | native.QueueOnDeviceDefault

	accessFlags    = native.MemReadWrite | native.MemWriteOnly | native.MemReadOnly
	hostAccess     = native.MemHostWriteOnly | native.MemHostReadOnly | native.MemHostNoAccess
	knownMemFlags  = accessFlags | hostAccess | native.MemUseHostPtr | native.MemAllocHostPtr | native.MemCopyHostPtr | native.MemKernelReadAndWrite
	hostPtrFlags   = native.MemUseHostPtr | native.MemCopyHostPtr
	conflictingUse = native.MemUseHostPtr | native.MemAllocHostPtr
)

// CreateContext implements native.API.
func (r *Runtime) CreateContext(properties *native.ContextProperty, numDevices uint32, devices *native.DeviceID, notify native.ContextNotify, errcode *native.Status) native.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, status := r.createContext(properties, numDevices, devices, notify)
	if errcode != nil {
		*errcode = status
	}
	return h
}

func (r *Runtime) createContext(properties *native.ContextProperty, numDevices uint32, devices *native.DeviceID, notify native.ContextNotify) (native.Context, native.Status) {
	if status, failed := r.enter(native.SymCreateContext); failed {
		return 0, status
	}
	props, platform, status := r.parseContextProperties(properties)
	if status != native.Success {
		return 0, status
	}
	if devices == nil || numDevices == 0 {
		return 0, native.InvalidValue
	}
	ids := slices.Clone(unsafe.Slice(devices, numDevices))
	for _, id := range ids {
		d, ok := r.devices[id]
		if !ok || (platform != nil && d.platform != platform) {
			return 0, native.InvalidDevice
		}
		if platform == nil {
			platform = d.platform
		}
		if !d.avail {
			return 0, native.DeviceNotAvailable
		}
	}

	h := r.handle()
	r.objects[h] = &object{
		kind:     KindContext,
		refs:     1,
		platform: platform,
		devices:  ids,
		props:    props,
		notify:   notify,
	}
	return native.Context(h), native.Success
}

// parseContextProperties walks a zero-terminated property list. Only
// CL_CONTEXT_PLATFORM is understood.
func (r *Runtime) parseContextProperties(properties *native.ContextProperty) ([]native.ContextProperty, *Platform, native.Status) {
	if properties == nil {
		return nil, nil, native.Success
	}
	var (
		props    []native.ContextProperty
		platform *Platform
	)
	for p := properties; *p != 0; {
		name := *p
		value := *(*native.ContextProperty)(unsafe.Add(unsafe.Pointer(p), unsafe.Sizeof(name)))
		if name != native.ContextPlatform {
			return nil, nil, native.InvalidProperty
		}
		if platform != nil {
			return nil, nil, native.InvalidProperty
		}
		found, ok := r.byID[native.PlatformID(value)]
		if !ok {
			return nil, nil, native.InvalidPlatform
		}
		platform = found
		props = append(props, name, value)
		p = (*native.ContextProperty)(unsafe.Add(unsafe.Pointer(p), 2*unsafe.Sizeof(name)))
	}
	return append(props, 0), platform, native.Success
}

// RetainContext implements native.API.
func (r *Runtime) RetainContext(context native.Context) native.Status {
	return r.retain(native.SymRetainContext, uintptr(context), KindContext, native.InvalidContext)
}

// ReleaseContext implements native.API.
func (r *Runtime) ReleaseContext(context native.Context) native.Status {
	return r.release(native.SymReleaseContext, uintptr(context), KindContext, native.InvalidContext)
}

// GetContextInfo implements native.API.
func (r *Runtime) GetContextInfo(context native.Context, param native.ContextInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(native.SymGetContextInfo); failed {
		return status
	}
	obj, ok := r.lookup(uintptr(context), KindContext)
	if !ok {
		return native.InvalidContext
	}
	var raw []byte
	switch param {
	case native.ContextReferenceCount:
		raw = encodeUint32(uint32(obj.refs))
	case native.ContextDevices:
		raw = encodeHandles(obj.devices)
	case native.ContextNumDevices:
		raw = encodeUint32(uint32(len(obj.devices)))
	case native.ContextProperties:
		raw = encodeHandles(obj.props)
	default:
		return native.InvalidValue
	}
	return writeInfo(raw, size, value, sizeRet)
}

// CreateCommandQueue implements native.API.
func (r *Runtime) CreateCommandQueue(context native.Context, device native.DeviceID, properties uint64, errcode *native.Status) native.CommandQueue {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, status := r.createCommandQueue(context, device, properties)
	if errcode != nil {
		*errcode = status
	}
	return h
}

func (r *Runtime) createCommandQueue(context native.Context, device native.DeviceID, properties uint64) (native.CommandQueue, native.Status) {
	if status, failed := r.enter(native.SymCreateCommandQueue); failed {
		return 0, status
	}
	ctx, ok := r.lookup(uintptr(context), KindContext)
	if !ok {
		return 0, native.InvalidContext
	}
	if !slices.Contains(ctx.devices, device) {
		return 0, native.InvalidDevice
	}
	if properties&^knownQueueProperties != 0 {
		return 0, native.InvalidValue
	}
	if properties&^r.devices[device].queue != 0 {
		return 0, native.InvalidQueueProperties
	}

	h := r.handle()
	r.objects[h] = &object{
		kind:       KindCommandQueue,
		refs:       1,
		context:    context,
		device:     device,
		properties: properties,
	}
	ctx.refs++
	return native.CommandQueue(h), native.Success
}

// RetainCommandQueue implements native.API.
func (r *Runtime) RetainCommandQueue(queue native.CommandQueue) native.Status {
	return r.retain(native.SymRetainCommandQueue, uintptr(queue), KindCommandQueue, native.InvalidCommandQueue)
}

// ReleaseCommandQueue implements native.API.
func (r *Runtime) ReleaseCommandQueue(queue native.CommandQueue) native.Status {
	return r.release(native.SymReleaseCommandQueue, uintptr(queue), KindCommandQueue, native.InvalidCommandQueue)
}

// GetCommandQueueInfo implements native.API.
func (r *Runtime) GetCommandQueueInfo(queue native.CommandQueue, param native.CommandQueueInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(native.SymGetCommandQueueInfo); failed {
		return status
	}
	obj, ok := r.lookup(uintptr(queue), KindCommandQueue)
	if !ok {
		return native.InvalidCommandQueue
	}
	var raw []byte
	switch param {
	case native.QueueContext:
		raw = encodeSize(uintptr(obj.context))
	case native.QueueDevice:
		raw = encodeSize(uintptr(obj.device))
	case native.QueueReferenceCount:
		raw = encodeUint32(uint32(obj.refs))
	case native.QueueProperties:
		raw = encodeUint64(obj.properties)
	default:
		return native.InvalidValue
	}
	return writeInfo(raw, size, value, sizeRet)
}

// CreateBuffer implements native.API.
func (r *Runtime) CreateBuffer(context native.Context, flags uint64, size uintptr, hostPtr unsafe.Pointer, errcode *native.Status) native.Mem {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, status := r.createBuffer(context, flags, size, hostPtr)
	if errcode != nil {
		*errcode = status
	}
	return h
}

func (r *Runtime) createBuffer(context native.Context, flags uint64, size uintptr, hostPtr unsafe.Pointer) (native.Mem, native.Status) {
	if status, failed := r.enter(native.SymCreateBuffer); failed {
		return 0, status
	}
	ctx, ok := r.lookup(uintptr(context), KindContext)
	if !ok {
		return 0, native.InvalidContext
	}
	if flags&^knownMemFlags != 0 || bits.OnesCount64(flags&accessFlags) > 1 ||
		bits.OnesCount64(flags&hostAccess) > 1 || flags&conflictingUse == conflictingUse {
		return 0, native.InvalidValue
	}
	if (hostPtr == nil) == (flags&hostPtrFlags != 0) {
		return 0, native.InvalidHostPtr
	}
	if size == 0 {
		return 0, native.InvalidBufferSize
	}
	for _, id := range ctx.devices {
		if uint64(size) > r.devices[id].maxAlloc {
			return 0, native.InvalidBufferSize
		}
	}
	if flags&accessFlags == 0 {
		flags |= native.MemReadWrite
	}

	h := r.handle()
	r.objects[h] = &object{
		kind:       KindMem,
		refs:       1,
		context:    context,
		properties: flags,
		size:       size,
	}
	ctx.refs++
	return native.Mem(h), native.Success
}

// RetainMemObject implements native.API.
func (r *Runtime) RetainMemObject(mem native.Mem) native.Status {
	return r.retain(native.SymRetainMemObject, uintptr(mem), KindMem, native.InvalidMemObject)
}

// ReleaseMemObject implements native.API.
func (r *Runtime) ReleaseMemObject(mem native.Mem) native.Status {
	return r.release(native.SymReleaseMemObject, uintptr(mem), KindMem, native.InvalidMemObject)
}

// GetMemObjectInfo implements native.API.
func (r *Runtime) GetMemObjectInfo(mem native.Mem, param native.MemInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(native.SymGetMemObjectInfo); failed {
		return status
	}
	obj, ok := r.lookup(uintptr(mem), KindMem)
	if !ok {
		return native.InvalidMemObject
	}
	var raw []byte
	switch param {
	case native.MemType:
		raw = encodeUint32(native.MemObjectBuffer)
	case native.MemFlags:
		raw = encodeUint64(obj.properties)
	case native.MemSize:
		raw = encodeSize(obj.size)
	case native.MemHostPtr:
		raw = encodeSize(0)
	case native.MemMapCount:
		raw = encodeUint32(0)
	case native.MemReferenceCount:
		raw = encodeUint32(uint32(obj.refs))
	case native.MemContext:
		raw = encodeSize(uintptr(obj.context))
	default:
		return native.InvalidValue
	}
	return writeInfo(raw, size, value, sizeRet)
}
