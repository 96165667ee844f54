// Package native declares the raw OpenCL surface the binding is built on:
// handle kinds, numeric constants, status codes and the API interface
// through which every entry point is reached.
//
// Nothing here decodes or validates values. Higher layers (package ll)
// own that; this package only has to agree with CL/cl.h bit for bit.
package native

import "unsafe"

// Raw handle kinds. Each one is an opaque pointer owned by the OpenCL
// runtime.
type (
	PlatformID   uintptr
	DeviceID     uintptr
	Context      uintptr
	CommandQueue uintptr
	Mem          uintptr
	Program      uintptr
	Kernel       uintptr
	Event        uintptr
	Sampler      uintptr
)

// ContextProperty is one entry of a zero-terminated cl_context_properties
// list.
type ContextProperty uintptr

// ContextNotify receives asynchronous errors reported by a context.
type ContextNotify func(errinfo string, privateInfo []byte)

// Selector types for the clGet*Info entry points.
type (
	PlatformInfo     uint32
	DeviceInfo       uint32
	ContextInfo      uint32
	CommandQueueInfo uint32
	MemInfo          uint32
)

// Sizes of the fixed-width OpenCL scalar types.
const (
	SizeofBool     = 4
	SizeofUint     = 4
	SizeofUlong    = 8
	SizeofBitfield = 8
	SizeofSize     = unsafe.Sizeof(uintptr(0))
	SizeofHandle   = unsafe.Sizeof(uintptr(0))
)

// cl_bool values.
const (
	False uint32 = 0
	True  uint32 = 1
)

// cl_platform_info
const (
	PlatformProfile    PlatformInfo = 0x0900
	PlatformVersion    PlatformInfo = 0x0901
	PlatformName       PlatformInfo = 0x0902
	PlatformVendor     PlatformInfo = 0x0903
	PlatformExtensions PlatformInfo = 0x0904
)

// cl_device_type bits.
const (
	DeviceTypeDefault     uint64 = 1 << 0
	DeviceTypeCPU         uint64 = 1 << 1
	DeviceTypeGPU         uint64 = 1 << 2
	DeviceTypeAccelerator uint64 = 1 << 3
	DeviceTypeCustom      uint64 = 1 << 4
	DeviceTypeAll         uint64 = 0xFFFFFFFF
)

// cl_device_info
const (
	DeviceType                       DeviceInfo = 0x1000
	DeviceVendorID                   DeviceInfo = 0x1001
	DeviceMaxComputeUnits            DeviceInfo = 0x1002
	DeviceMaxWorkItemDimensions      DeviceInfo = 0x1003
	DeviceMaxWorkGroupSize           DeviceInfo = 0x1004
	DeviceMaxWorkItemSizes           DeviceInfo = 0x1005
	DevicePreferredVectorWidthChar   DeviceInfo = 0x1006
	DevicePreferredVectorWidthShort  DeviceInfo = 0x1007
	DevicePreferredVectorWidthInt    DeviceInfo = 0x1008
	DevicePreferredVectorWidthLong   DeviceInfo = 0x1009
	DevicePreferredVectorWidthFloat  DeviceInfo = 0x100A
	DevicePreferredVectorWidthDouble DeviceInfo = 0x100B
	DeviceMaxClockFrequency          DeviceInfo = 0x100C
	DeviceAddressBits                DeviceInfo = 0x100D
	DeviceMaxReadImageArgs           DeviceInfo = 0x100E
	DeviceMaxWriteImageArgs          DeviceInfo = 0x100F
	DeviceMaxMemAllocSize            DeviceInfo = 0x1010
	DeviceImageSupport               DeviceInfo = 0x1016
	DeviceMaxParameterSize           DeviceInfo = 0x1017
	DeviceMaxSamplers                DeviceInfo = 0x1018
	DeviceMemBaseAddrAlign           DeviceInfo = 0x1019
	DeviceMinDataTypeAlignSize       DeviceInfo = 0x101A
	DeviceSingleFPConfig             DeviceInfo = 0x101B
	DeviceGlobalMemCacheType         DeviceInfo = 0x101C
	DeviceGlobalMemCachelineSize     DeviceInfo = 0x101D
	DeviceGlobalMemCacheSize         DeviceInfo = 0x101E
	DeviceGlobalMemSize              DeviceInfo = 0x101F
	DeviceMaxConstantBufferSize      DeviceInfo = 0x1020
	DeviceMaxConstantArgs            DeviceInfo = 0x1021
	DeviceLocalMemType               DeviceInfo = 0x1022
	DeviceLocalMemSize               DeviceInfo = 0x1023
	DeviceErrorCorrectionSupport     DeviceInfo = 0x1024
	DeviceProfilingTimerResolution   DeviceInfo = 0x1025
	DeviceEndianLittle               DeviceInfo = 0x1026
	DeviceAvailable                  DeviceInfo = 0x1027
	DeviceCompilerAvailable          DeviceInfo = 0x1028
	DeviceExecutionCapabilities      DeviceInfo = 0x1029
	DeviceQueueProperties            DeviceInfo = 0x102A
	DeviceName                       DeviceInfo = 0x102B
	DeviceVendor                     DeviceInfo = 0x102C
	DriverVersion                    DeviceInfo = 0x102D
	DeviceProfile                    DeviceInfo = 0x102E
	DeviceVersion                    DeviceInfo = 0x102F
	DeviceExtensions                 DeviceInfo = 0x1030
	DevicePlatform                   DeviceInfo = 0x1031
	DeviceDoubleFPConfig             DeviceInfo = 0x1032
	DeviceHostUnifiedMemory          DeviceInfo = 0x1035
	DeviceOpenCLCVersion             DeviceInfo = 0x103D
	DeviceLinkerAvailable            DeviceInfo = 0x103E
)

// cl_device_fp_config bits.
const (
	FPDenorm                     uint64 = 1 << 0
	FPInfNaN                     uint64 = 1 << 1
	FPRoundToNearest             uint64 = 1 << 2
	FPRoundToZero                uint64 = 1 << 3
	FPRoundToInf                 uint64 = 1 << 4
	FPFMA                        uint64 = 1 << 5
	FPSoftFloat                  uint64 = 1 << 6
	FPCorrectlyRoundedDivideSqrt uint64 = 1 << 7
)

// cl_device_exec_capabilities bits.
const (
	ExecKernel       uint64 = 1 << 0
	ExecNativeKernel uint64 = 1 << 1
)

// cl_command_queue_properties bits.
const (
	QueueOutOfOrderExecModeEnable uint64 = 1 << 0
	QueueProfilingEnable          uint64 = 1 << 1
	QueueOnDevice                 uint64 = 1 << 2
	QueueOnDeviceDefault          uint64 = 1 << 3
)

// cl_mem_flags bits.
const (
	MemReadWrite          uint64 = 1 << 0
	MemWriteOnly          uint64 = 1 << 1
	MemReadOnly           uint64 = 1 << 2
	MemUseHostPtr         uint64 = 1 << 3
	MemAllocHostPtr       uint64 = 1 << 4
	MemCopyHostPtr        uint64 = 1 << 5
	MemHostWriteOnly      uint64 = 1 << 7
	MemHostReadOnly       uint64 = 1 << 8
	MemHostNoAccess       uint64 = 1 << 9
	MemKernelReadAndWrite uint64 = 1 << 12
)

// cl_context_info and cl_context_properties
const (
	ContextReferenceCount ContextInfo = 0x1080
	ContextDevices        ContextInfo = 0x1081
	ContextProperties     ContextInfo = 0x1082
	ContextNumDevices     ContextInfo = 0x1083

	ContextPlatform ContextProperty = 0x1084
)

// cl_command_queue_info
const (
	QueueContext        CommandQueueInfo = 0x1090
	QueueDevice         CommandQueueInfo = 0x1091
	QueueReferenceCount CommandQueueInfo = 0x1092
	QueueProperties     CommandQueueInfo = 0x1093
)

// cl_mem_info and cl_mem_object_type
const (
	MemType           MemInfo = 0x1100
	MemFlags          MemInfo = 0x1101
	MemSize           MemInfo = 0x1102
	MemHostPtr        MemInfo = 0x1103
	MemMapCount       MemInfo = 0x1104
	MemReferenceCount MemInfo = 0x1105
	MemContext        MemInfo = 0x1106

	MemObjectBuffer uint32 = 0x10F0
)
