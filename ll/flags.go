package ll

import (
	"fmt"
	"strings"

	"github.com/gogpu/cl/native"
)

type bitName struct {
	bit  uint64
	name string
}

func formatBits(v uint64, names []bitName) string {
	if v == 0 {
		return "0"
	}
	var parts []string
	for _, n := range names {
		if v&n.bit != 0 {
			parts = append(parts, n.name)
			v &^= n.bit
		}
	}
	if v != 0 {
		parts = append(parts, fmt.Sprintf("%#x", v))
	}
	return strings.Join(parts, "|")
}

// DeviceType is a cl_device_type bit set.
type DeviceType uint64

const (
	DeviceTypeDefault     = DeviceType(native.DeviceTypeDefault)
	DeviceTypeCPU         = DeviceType(native.DeviceTypeCPU)
	DeviceTypeGPU         = DeviceType(native.DeviceTypeGPU)
	DeviceTypeAccelerator = DeviceType(native.DeviceTypeAccelerator)
	DeviceTypeCustom      = DeviceType(native.DeviceTypeCustom)

	// DeviceTypeAll selects every device in Runtime.DeviceIDs. It is a
	// filter value only; no device reports it as its type.
	DeviceTypeAll = DeviceType(native.DeviceTypeAll)
)

const knownDeviceTypes = DeviceTypeDefault | DeviceTypeCPU | DeviceTypeGPU |
	DeviceTypeAccelerator | DeviceTypeCustom

var deviceTypeNames = []bitName{
	{uint64(DeviceTypeDefault), "DEFAULT"},
	{uint64(DeviceTypeCPU), "CPU"},
	{uint64(DeviceTypeGPU), "GPU"},
	{uint64(DeviceTypeAccelerator), "ACCELERATOR"},
	{uint64(DeviceTypeCustom), "CUSTOM"},
}

// Contains reports whether every bit of x is set in t.
func (t DeviceType) Contains(x DeviceType) bool { return t&x == x }

func (t DeviceType) String() string {
	if t == DeviceTypeAll {
		return "ALL"
	}
	return formatBits(uint64(t), deviceTypeNames)
}

// CommandQueueProperties is a cl_command_queue_properties bit set.
type CommandQueueProperties uint64

const (
	QueueOutOfOrderExecMode = CommandQueueProperties(native.QueueOutOfOrderExecModeEnable)
	QueueProfiling          = CommandQueueProperties(native.QueueProfilingEnable)
	QueueOnDevice           = CommandQueueProperties(native.QueueOnDevice)
	QueueOnDeviceDefault    = CommandQueueProperties(native.QueueOnDeviceDefault)
)

const knownQueueProperties = QueueOutOfOrderExecMode | QueueProfiling | QueueOnDevice | QueueOnDeviceDefault

var queuePropertyNames = []bitName{
	{uint64(QueueOutOfOrderExecMode), "OUT_OF_ORDER_EXEC_MODE"},
	{uint64(QueueProfiling), "PROFILING"},
	{uint64(QueueOnDevice), "ON_DEVICE"},
	{uint64(QueueOnDeviceDefault), "ON_DEVICE_DEFAULT"},
}

// Contains reports whether every bit of x is set in p.
func (p CommandQueueProperties) Contains(x CommandQueueProperties) bool { return p&x == x }

func (p CommandQueueProperties) String() string {
	return formatBits(uint64(p), queuePropertyNames)
}

// FPConfig is a cl_device_fp_config bit set.
type FPConfig uint64

const (
	FPDenorm                     = FPConfig(native.FPDenorm)
	FPInfNaN                     = FPConfig(native.FPInfNaN)
	FPRoundToNearest             = FPConfig(native.FPRoundToNearest)
	FPRoundToZero                = FPConfig(native.FPRoundToZero)
	FPRoundToInf                 = FPConfig(native.FPRoundToInf)
	FPFMA                        = FPConfig(native.FPFMA)
	FPSoftFloat                  = FPConfig(native.FPSoftFloat)
	FPCorrectlyRoundedDivideSqrt = FPConfig(native.FPCorrectlyRoundedDivideSqrt)
)

const knownFPConfig = FPDenorm | FPInfNaN | FPRoundToNearest | FPRoundToZero |
	FPRoundToInf | FPFMA | FPSoftFloat | FPCorrectlyRoundedDivideSqrt

var fpConfigNames = []bitName{
	{uint64(FPDenorm), "DENORM"},
	{uint64(FPInfNaN), "INF_NAN"},
	{uint64(FPRoundToNearest), "ROUND_TO_NEAREST"},
	{uint64(FPRoundToZero), "ROUND_TO_ZERO"},
	{uint64(FPRoundToInf), "ROUND_TO_INF"},
	{uint64(FPFMA), "FMA"},
	{uint64(FPSoftFloat), "SOFT_FLOAT"},
	{uint64(FPCorrectlyRoundedDivideSqrt), "CORRECTLY_ROUNDED_DIVIDE_SQRT"},
}

// Contains reports whether every bit of x is set in c.
func (c FPConfig) Contains(x FPConfig) bool { return c&x == x }

func (c FPConfig) String() string { return formatBits(uint64(c), fpConfigNames) }

// ExecCapabilities is a cl_device_exec_capabilities bit set.
type ExecCapabilities uint64

const (
	ExecKernel       = ExecCapabilities(native.ExecKernel)
	ExecNativeKernel = ExecCapabilities(native.ExecNativeKernel)
)

const knownExecCapabilities = ExecKernel | ExecNativeKernel

var execNames = []bitName{
	{uint64(ExecKernel), "KERNEL"},
	{uint64(ExecNativeKernel), "NATIVE_KERNEL"},
}

// Contains reports whether every bit of x is set in c.
func (c ExecCapabilities) Contains(x ExecCapabilities) bool { return c&x == x }

func (c ExecCapabilities) String() string { return formatBits(uint64(c), execNames) }

// MemFlags is a cl_mem_flags bit set. Buffers created by this package
// only ever carry one of the access bits, but flags read back from a
// runtime may include the host pointer bits.
type MemFlags uint64

const (
	MemReadWrite          = MemFlags(native.MemReadWrite)
	MemWriteOnly          = MemFlags(native.MemWriteOnly)
	MemReadOnly           = MemFlags(native.MemReadOnly)
	MemUseHostPtr         = MemFlags(native.MemUseHostPtr)
	MemAllocHostPtr       = MemFlags(native.MemAllocHostPtr)
	MemCopyHostPtr        = MemFlags(native.MemCopyHostPtr)
	MemHostWriteOnly      = MemFlags(native.MemHostWriteOnly)
	MemHostReadOnly       = MemFlags(native.MemHostReadOnly)
	MemHostNoAccess       = MemFlags(native.MemHostNoAccess)
	MemKernelReadAndWrite = MemFlags(native.MemKernelReadAndWrite)
)

const knownMemFlags = MemReadWrite | MemWriteOnly | MemReadOnly | MemUseHostPtr |
	MemAllocHostPtr | MemCopyHostPtr | MemHostWriteOnly | MemHostReadOnly |
	MemHostNoAccess | MemKernelReadAndWrite

var memFlagNames = []bitName{
	{uint64(MemReadWrite), "READ_WRITE"},
	{uint64(MemWriteOnly), "WRITE_ONLY"},
	{uint64(MemReadOnly), "READ_ONLY"},
	{uint64(MemUseHostPtr), "USE_HOST_PTR"},
	{uint64(MemAllocHostPtr), "ALLOC_HOST_PTR"},
	{uint64(MemCopyHostPtr), "COPY_HOST_PTR"},
	{uint64(MemHostWriteOnly), "HOST_WRITE_ONLY"},
	{uint64(MemHostReadOnly), "HOST_READ_ONLY"},
	{uint64(MemHostNoAccess), "HOST_NO_ACCESS"},
	{uint64(MemKernelReadAndWrite), "KERNEL_READ_AND_WRITE"},
}

// Contains reports whether every bit of x is set in f.
func (f MemFlags) Contains(x MemFlags) bool { return f&x == x }

func (f MemFlags) String() string { return formatBits(uint64(f), memFlagNames) }

// MemProt is the device access mode of a buffer.
type MemProt int

const (
	ReadWrite MemProt = iota
	ReadOnly
	WriteOnly
)

// Flags returns the cl_mem_flags access bit for p.
func (p MemProt) Flags() MemFlags {
	switch p {
	case ReadOnly:
		return MemReadOnly
	case WriteOnly:
		return MemWriteOnly
	default:
		return MemReadWrite
	}
}

func (p MemProt) String() string {
	switch p {
	case ReadWrite:
		return "ReadWrite"
	case ReadOnly:
		return "ReadOnly"
	case WriteOnly:
		return "WriteOnly"
	default:
		return fmt.Sprintf("MemProt(%d)", int(p))
	}
}

func (p MemProt) valid() bool {
	return p >= ReadWrite && p <= WriteOnly
}
