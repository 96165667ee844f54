package nativetest

import (
	"unsafe"

	"github.com/gogpu/cl/native"
)

const knownDeviceTypes = native.DeviceTypeDefault | native.DeviceTypeCPU |
	native.DeviceTypeGPU | native.DeviceTypeAccelerator | native.DeviceTypeCustom

// DeviceConfig describes a fake device. Zero fields get defaults in
// AddDevice.
type DeviceConfig struct {
	Name          string
	Vendor        string
	Version       string
	DriverVersion string
	Profile       string
	Extensions    string

	// Type is a cl_device_type bit set; defaults to GPU.
	Type uint64

	ComputeUnits     uint32
	ClockFrequency   uint32
	GlobalMemSize    uint64
	MaxMemAllocSize  uint64
	MaxWorkGroupSize uintptr

	// QueueProperties are the queue properties the device supports;
	// defaults to profiling only.
	QueueProperties uint64

	Unavailable bool
}

// Device is a fake device.
type Device struct {
	platform *Platform
	id       native.DeviceID
	typ      uint64
	maxAlloc uint64
	queue    uint64
	avail    bool
	info     map[native.DeviceInfo][]byte
}

// AddDevice adds a device to the platform.
func (p *Platform) AddDevice(cfg DeviceConfig) *Device {
	if cfg.Name == "" {
		cfg.Name = "nativetest device"
	}
	if cfg.Vendor == "" {
		cfg.Vendor = "nativetest"
	}
	if cfg.Version == "" {
		cfg.Version = "OpenCL 1.2"
	}
	if cfg.DriverVersion == "" {
		cfg.DriverVersion = "1.0"
	}
	if cfg.Profile == "" {
		cfg.Profile = "FULL_PROFILE"
	}
	if cfg.Type == 0 {
		cfg.Type = native.DeviceTypeGPU
	}
	if cfg.ComputeUnits == 0 {
		cfg.ComputeUnits = 8
	}
	if cfg.ClockFrequency == 0 {
		cfg.ClockFrequency = 1000
	}
	if cfg.GlobalMemSize == 0 {
		cfg.GlobalMemSize = 1 << 30
	}
	if cfg.MaxMemAllocSize == 0 {
		cfg.MaxMemAllocSize = cfg.GlobalMemSize / 4
	}
	if cfg.MaxWorkGroupSize == 0 {
		cfg.MaxWorkGroupSize = 256
	}
	if cfg.QueueProperties == 0 {
		cfg.QueueProperties = native.QueueProfilingEnable
	}

	r := p.rt
	r.mu.Lock()
	defer r.mu.Unlock()

	d := &Device{
		platform: p,
		id:       native.DeviceID(r.handle()),
		typ:      cfg.Type,
		maxAlloc: cfg.MaxMemAllocSize,
		queue:    cfg.QueueProperties,
		avail:    !cfg.Unavailable,
	}
	d.info = map[native.DeviceInfo][]byte{
		native.DeviceType:                       encodeUint64(cfg.Type),
		native.DeviceVendorID:                   encodeUint32(0x10de),
		native.DeviceMaxComputeUnits:            encodeUint32(cfg.ComputeUnits),
		native.DeviceMaxWorkItemDimensions:      encodeUint32(3),
		native.DeviceMaxWorkGroupSize:           encodeSize(cfg.MaxWorkGroupSize),
		native.DevicePreferredVectorWidthChar:   encodeUint32(16),
		native.DevicePreferredVectorWidthShort:  encodeUint32(8),
		native.DevicePreferredVectorWidthInt:    encodeUint32(4),
		native.DevicePreferredVectorWidthLong:   encodeUint32(2),
		native.DevicePreferredVectorWidthFloat:  encodeUint32(4),
		native.DevicePreferredVectorWidthDouble: encodeUint32(2),
		native.DeviceMaxClockFrequency:          encodeUint32(cfg.ClockFrequency),
		native.DeviceAddressBits:                encodeUint32(64),
		native.DeviceMaxReadImageArgs:           encodeUint32(128),
		native.DeviceMaxWriteImageArgs:          encodeUint32(8),
		native.DeviceMaxMemAllocSize:            encodeUint64(cfg.MaxMemAllocSize),
		native.DeviceImageSupport:               encodeBool(false),
		native.DeviceMaxParameterSize:           encodeSize(1024),
		native.DeviceMaxSamplers:                encodeUint32(16),
		native.DeviceMemBaseAddrAlign:           encodeUint32(1024),
		native.DeviceMinDataTypeAlignSize:       encodeUint32(128),
		native.DeviceSingleFPConfig:             encodeUint64(native.FPDenorm | native.FPInfNaN | native.FPRoundToNearest | native.FPFMA),
		native.DeviceGlobalMemCachelineSize:     encodeUint32(64),
		native.DeviceGlobalMemCacheSize:         encodeUint64(256 << 10),
		native.DeviceGlobalMemSize:              encodeUint64(cfg.GlobalMemSize),
		native.DeviceMaxConstantBufferSize:      encodeUint64(64 << 10),
		native.DeviceMaxConstantArgs:            encodeUint32(8),
		native.DeviceLocalMemSize:               encodeUint64(48 << 10),
		native.DeviceErrorCorrectionSupport:     encodeBool(false),
		native.DeviceProfilingTimerResolution:   encodeSize(1),
		native.DeviceEndianLittle:               encodeBool(true),
		native.DeviceAvailable:                  encodeBool(!cfg.Unavailable),
		native.DeviceCompilerAvailable:          encodeBool(true),
		native.DeviceExecutionCapabilities:      encodeUint64(native.ExecKernel),
		native.DeviceQueueProperties:            encodeUint64(cfg.QueueProperties),
		native.DeviceName:                       cstring(cfg.Name),
		native.DeviceVendor:                     cstring(cfg.Vendor),
		native.DriverVersion:                    cstring(cfg.DriverVersion),
		native.DeviceProfile:                    cstring(cfg.Profile),
		native.DeviceVersion:                    cstring(cfg.Version),
		native.DeviceExtensions:                 cstring(cfg.Extensions),
		native.DevicePlatform:                   encodeSize(uintptr(p.id)),
		native.DeviceHostUnifiedMemory:          encodeBool(false),
		native.DeviceOpenCLCVersion:             cstring("OpenCL C 1.2"),
		native.DeviceLinkerAvailable:            encodeBool(true),
	}
	p.devices = append(p.devices, d)
	r.devices[d.id] = d
	return d
}

// ID returns the raw device handle.
func (d *Device) ID() native.DeviceID { return d.id }

// SetRawInfo replaces a property with exactly raw. Use it to hand the
// binding malformed strings or unknown bits.
func (d *Device) SetRawInfo(param native.DeviceInfo, raw []byte) {
	d.platform.rt.mu.Lock()
	defer d.platform.rt.mu.Unlock()
	d.info[param] = append([]byte(nil), raw...)
}

// GetDeviceIDs implements native.API.
func (r *Runtime) GetDeviceIDs(platform native.PlatformID, deviceType uint64, numEntries uint32, devices *native.DeviceID, numDevices *uint32) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(native.SymGetDeviceIDs); failed {
		return status
	}
	p, ok := r.byID[platform]
	if !ok {
		return native.InvalidPlatform
	}
	if deviceType == 0 || (deviceType != native.DeviceTypeAll && deviceType&^knownDeviceTypes != 0) {
		return native.InvalidDeviceType
	}
	var ids []native.DeviceID
	for _, d := range p.devices {
		if deviceType == native.DeviceTypeAll || d.typ&deviceType != 0 {
			ids = append(ids, d.id)
		}
	}
	if len(ids) == 0 {
		if numDevices != nil {
			*numDevices = 0
		}
		return native.DeviceNotFound
	}
	return writeList(ids, numEntries, devices, numDevices)
}

// GetDeviceInfo implements native.API.
func (r *Runtime) GetDeviceInfo(device native.DeviceID, param native.DeviceInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(native.SymGetDeviceInfo); failed {
		return status
	}
	d, ok := r.devices[device]
	if !ok {
		return native.InvalidDevice
	}
	raw, ok := d.info[param]
	if !ok {
		return native.InvalidValue
	}
	return writeInfo(raw, size, value, sizeRet)
}
