package ll

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/cl/native"
)

// DeviceInfo describes a device property whose decoded value has type T.
// The package variables below are the only values of this type.
type DeviceInfo[T any] struct {
	param native.DeviceInfo
	read  shape[T]
}

func (i DeviceInfo[T]) String() string {
	return fmt.Sprintf("CL_DEVICE_INFO(%#x)", uint32(i.param))
}

// Device property descriptors.
var (
	DeviceName           = DeviceInfo[string]{native.DeviceName, readString}
	DeviceVendor         = DeviceInfo[string]{native.DeviceVendor, readString}
	DeviceProfile        = DeviceInfo[string]{native.DeviceProfile, readString}
	DeviceVersion        = DeviceInfo[string]{native.DeviceVersion, readString}
	DriverVersion        = DeviceInfo[string]{native.DriverVersion, readString}
	DeviceExtensions     = DeviceInfo[string]{native.DeviceExtensions, readString}
	DeviceOpenCLCVersion = DeviceInfo[string]{native.DeviceOpenCLCVersion, readString}

	DeviceAvailable              = DeviceInfo[bool]{native.DeviceAvailable, readBool}
	DeviceCompilerAvailable      = DeviceInfo[bool]{native.DeviceCompilerAvailable, readBool}
	DeviceLinkerAvailable        = DeviceInfo[bool]{native.DeviceLinkerAvailable, readBool}
	DeviceImageSupport           = DeviceInfo[bool]{native.DeviceImageSupport, readBool}
	DeviceErrorCorrectionSupport = DeviceInfo[bool]{native.DeviceErrorCorrectionSupport, readBool}
	DeviceEndianLittle           = DeviceInfo[bool]{native.DeviceEndianLittle, readBool}
	DeviceHostUnifiedMemory      = DeviceInfo[bool]{native.DeviceHostUnifiedMemory, readBool}

	DeviceVendorID                   = DeviceInfo[uint32]{native.DeviceVendorID, readUint}
	DeviceMaxComputeUnits            = DeviceInfo[uint32]{native.DeviceMaxComputeUnits, readUint}
	DeviceMaxWorkItemDimensions      = DeviceInfo[uint32]{native.DeviceMaxWorkItemDimensions, readUint}
	DeviceMaxClockFrequency          = DeviceInfo[uint32]{native.DeviceMaxClockFrequency, readUint}
	DeviceAddressBits                = DeviceInfo[uint32]{native.DeviceAddressBits, readUint}
	DeviceMaxSamplers                = DeviceInfo[uint32]{native.DeviceMaxSamplers, readUint}
	DeviceMemBaseAddrAlign           = DeviceInfo[uint32]{native.DeviceMemBaseAddrAlign, readUint}
	DeviceGlobalMemCachelineSize     = DeviceInfo[uint32]{native.DeviceGlobalMemCachelineSize, readUint}
	DeviceMaxConstantArgs            = DeviceInfo[uint32]{native.DeviceMaxConstantArgs, readUint}
	DevicePreferredVectorWidthChar   = DeviceInfo[uint32]{native.DevicePreferredVectorWidthChar, readUint}
	DevicePreferredVectorWidthShort  = DeviceInfo[uint32]{native.DevicePreferredVectorWidthShort, readUint}
	DevicePreferredVectorWidthInt    = DeviceInfo[uint32]{native.DevicePreferredVectorWidthInt, readUint}
	DevicePreferredVectorWidthLong   = DeviceInfo[uint32]{native.DevicePreferredVectorWidthLong, readUint}
	DevicePreferredVectorWidthFloat  = DeviceInfo[uint32]{native.DevicePreferredVectorWidthFloat, readUint}
	DevicePreferredVectorWidthDouble = DeviceInfo[uint32]{native.DevicePreferredVectorWidthDouble, readUint}

	DeviceGlobalMemSize         = DeviceInfo[uint64]{native.DeviceGlobalMemSize, readUlong}
	DeviceGlobalMemCacheSize    = DeviceInfo[uint64]{native.DeviceGlobalMemCacheSize, readUlong}
	DeviceMaxMemAllocSize       = DeviceInfo[uint64]{native.DeviceMaxMemAllocSize, readUlong}
	DeviceMaxConstantBufferSize = DeviceInfo[uint64]{native.DeviceMaxConstantBufferSize, readUlong}
	DeviceLocalMemSize          = DeviceInfo[uint64]{native.DeviceLocalMemSize, readUlong}

	DeviceMaxWorkGroupSize         = DeviceInfo[uint64]{native.DeviceMaxWorkGroupSize, readSize}
	DeviceMaxParameterSize         = DeviceInfo[uint64]{native.DeviceMaxParameterSize, readSize}
	DeviceProfilingTimerResolution = DeviceInfo[uint64]{native.DeviceProfilingTimerResolution, readSize}

	// DeviceTypeInfo reads CL_DEVICE_TYPE.
	DeviceTypeInfo              = DeviceInfo[DeviceType]{native.DeviceType, readBits("device type", knownDeviceTypes)}
	DeviceQueueProperties       = DeviceInfo[CommandQueueProperties]{native.DeviceQueueProperties, readBits("queue properties", knownQueueProperties)}
	DeviceSingleFPConfig        = DeviceInfo[FPConfig]{native.DeviceSingleFPConfig, readBits("single fp config", knownFPConfig)}
	DeviceDoubleFPConfig        = DeviceInfo[FPConfig]{native.DeviceDoubleFPConfig, readBits("double fp config", knownFPConfig)}
	DeviceExecutionCapabilities = DeviceInfo[ExecCapabilities]{native.DeviceExecutionCapabilities, readBits("execution capabilities", knownExecCapabilities)}

	DevicePlatform = DeviceInfo[PlatformID]{native.DevicePlatform, readPlatform}
)

// GetDeviceInfo reads one property of device.
func GetDeviceInfo[T any](rt *Runtime, device DeviceID, info DeviceInfo[T]) (T, error) {
	return query(rt, info.String(), info.read, func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
		return rt.api.GetDeviceInfo(device.raw, info.param, size, value, sizeRet)
	})
}
