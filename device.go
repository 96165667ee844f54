package cl

import (
	"github.com/gogpu/cl/ll"
)

// Device is one OpenCL device. Like Platform it is a plain value.
type Device struct {
	rt *ll.Runtime
	id ll.DeviceID
}

// ID returns the device identifier.
func (d Device) ID() ll.DeviceID { return d.id }

// QueryDevice reads any device property, returning the runtime's error
// instead of panicking.
func QueryDevice[T any](d Device, info ll.DeviceInfo[T]) (T, error) {
	return ll.GetDeviceInfo(d.rt, d.id, info)
}

func query[T any](d Device, info ll.DeviceInfo[T]) T {
	return must(ll.GetDeviceInfo(d.rt, d.id, info))(info.String())
}

// Name returns CL_DEVICE_NAME.
func (d Device) Name() string { return query(d, ll.DeviceName) }

// Vendor returns CL_DEVICE_VENDOR.
func (d Device) Vendor() string { return query(d, ll.DeviceVendor) }

// Profile returns CL_DEVICE_PROFILE.
func (d Device) Profile() string { return query(d, ll.DeviceProfile) }

// DeviceVersion returns CL_DEVICE_VERSION.
func (d Device) DeviceVersion() string { return query(d, ll.DeviceVersion) }

// DriverVersion returns CL_DRIVER_VERSION.
func (d Device) DriverVersion() string { return query(d, ll.DriverVersion) }

// OpenCLCVersion returns CL_DEVICE_OPENCL_C_VERSION.
func (d Device) OpenCLCVersion() string { return query(d, ll.DeviceOpenCLCVersion) }

// Extensions returns CL_DEVICE_EXTENSIONS.
func (d Device) Extensions() string { return query(d, ll.DeviceExtensions) }

// Type returns the device type bits.
func (d Device) Type() ll.DeviceType { return query(d, ll.DeviceTypeInfo) }

// ComputeUnits returns CL_DEVICE_MAX_COMPUTE_UNITS.
func (d Device) ComputeUnits() uint32 { return query(d, ll.DeviceMaxComputeUnits) }

// ClockFrequency returns the maximum clock in MHz.
func (d Device) ClockFrequency() uint32 { return query(d, ll.DeviceMaxClockFrequency) }

// Available reports CL_DEVICE_AVAILABLE.
func (d Device) Available() bool { return query(d, ll.DeviceAvailable) }

// CompilerAvailable reports CL_DEVICE_COMPILER_AVAILABLE.
func (d Device) CompilerAvailable() bool { return query(d, ll.DeviceCompilerAvailable) }

// GlobalMemSize returns the global memory size in bytes.
func (d Device) GlobalMemSize() uint64 { return query(d, ll.DeviceGlobalMemSize) }

// LocalMemSize returns the local memory size in bytes.
func (d Device) LocalMemSize() uint64 { return query(d, ll.DeviceLocalMemSize) }

// MaxMemAllocSize returns the largest buffer the device accepts.
func (d Device) MaxMemAllocSize() uint64 { return query(d, ll.DeviceMaxMemAllocSize) }

// MaxWorkGroupSize returns CL_DEVICE_MAX_WORK_GROUP_SIZE.
func (d Device) MaxWorkGroupSize() uint64 { return query(d, ll.DeviceMaxWorkGroupSize) }

// QueueProperties returns the queue properties the device supports.
func (d Device) QueueProperties() ll.CommandQueueProperties {
	return query(d, ll.DeviceQueueProperties)
}

// Platform returns the platform the device belongs to.
func (d Device) Platform() Platform {
	return Platform{rt: d.rt, id: query(d, ll.DevicePlatform)}
}

func (d Device) String() string {
	return d.id.String()
}
