package native

import "unsafe"

// Entry point symbol names as exported by an OpenCL ICD loader.
const (
	SymGetPlatformIDs      = "clGetPlatformIDs"
	SymGetPlatformInfo     = "clGetPlatformInfo"
	SymGetDeviceIDs        = "clGetDeviceIDs"
	SymGetDeviceInfo       = "clGetDeviceInfo"
	SymCreateContext       = "clCreateContext"
	SymRetainContext       = "clRetainContext"
	SymReleaseContext      = "clReleaseContext"
	SymGetContextInfo      = "clGetContextInfo"
	SymCreateCommandQueue  = "clCreateCommandQueue"
	SymRetainCommandQueue  = "clRetainCommandQueue"
	SymReleaseCommandQueue = "clReleaseCommandQueue"
	SymGetCommandQueueInfo = "clGetCommandQueueInfo"
	SymCreateBuffer        = "clCreateBuffer"
	SymRetainMemObject     = "clRetainMemObject"
	SymReleaseMemObject    = "clReleaseMemObject"
	SymGetMemObjectInfo    = "clGetMemObjectInfo"
)

// API is the set of OpenCL entry points used by the binding.
//
// Methods follow the C signatures exactly: sizes are in bytes, out
// parameters may be nil, and value buffers are raw memory of the stated
// size. Creation functions report their status through errcode and return
// a zero handle on failure.
type API interface {
	GetPlatformIDs(numEntries uint32, platforms *PlatformID, numPlatforms *uint32) Status
	GetPlatformInfo(platform PlatformID, param PlatformInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) Status
	GetDeviceIDs(platform PlatformID, deviceType uint64, numEntries uint32, devices *DeviceID, numDevices *uint32) Status
	GetDeviceInfo(device DeviceID, param DeviceInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) Status

	CreateContext(properties *ContextProperty, numDevices uint32, devices *DeviceID, notify ContextNotify, errcode *Status) Context
	RetainContext(context Context) Status
	ReleaseContext(context Context) Status
	GetContextInfo(context Context, param ContextInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) Status

	CreateCommandQueue(context Context, device DeviceID, properties uint64, errcode *Status) CommandQueue
	RetainCommandQueue(queue CommandQueue) Status
	ReleaseCommandQueue(queue CommandQueue) Status
	GetCommandQueueInfo(queue CommandQueue, param CommandQueueInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) Status

	CreateBuffer(context Context, flags uint64, size uintptr, hostPtr unsafe.Pointer, errcode *Status) Mem
	RetainMemObject(mem Mem) Status
	ReleaseMemObject(mem Mem) Status
	GetMemObjectInfo(mem Mem, param MemInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) Status
}
