package ll

import (
	"errors"
	"testing"

	"github.com/gogpu/cl/native"
)

func TestGetDeviceInfoStrings(t *testing.T) {
	f := newFixture(t)
	gpu := DeviceID{raw: f.gpu.ID()}

	tests := []struct {
		info DeviceInfo[string]
		want string
	}{
		{DeviceName, "Test GPU"},
		{DeviceVendor, "nativetest"},
		{DeviceProfile, "FULL_PROFILE"},
		{DeviceVersion, "OpenCL 1.2"},
		{DriverVersion, "1.0"},
		{DeviceExtensions, ""},
		{DeviceOpenCLCVersion, "OpenCL C 1.2"},
	}
	for _, tt := range tests {
		got, err := GetDeviceInfo(f.rt, gpu, tt.info)
		if err != nil {
			t.Fatalf("GetDeviceInfo(%v) error = %v", tt.info, err)
		}
		if got != tt.want {
			t.Errorf("GetDeviceInfo(%v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestGetDeviceInfoScalars(t *testing.T) {
	f := newFixture(t)
	gpu := DeviceID{raw: f.gpu.ID()}

	units, err := GetDeviceInfo(f.rt, gpu, DeviceMaxComputeUnits)
	if err != nil || units != 8 {
		t.Errorf("DeviceMaxComputeUnits = %d, %v; want 8, nil", units, err)
	}
	mem, err := GetDeviceInfo(f.rt, gpu, DeviceGlobalMemSize)
	if err != nil || mem != 1<<30 {
		t.Errorf("DeviceGlobalMemSize = %d, %v; want %d, nil", mem, err, 1<<30)
	}
	alloc, err := GetDeviceInfo(f.rt, gpu, DeviceMaxMemAllocSize)
	if err != nil || alloc != 1<<28 {
		t.Errorf("DeviceMaxMemAllocSize = %d, %v; want %d, nil", alloc, err, 1<<28)
	}
	wg, err := GetDeviceInfo(f.rt, gpu, DeviceMaxWorkGroupSize)
	if err != nil || wg != 256 {
		t.Errorf("DeviceMaxWorkGroupSize = %d, %v; want 256, nil", wg, err)
	}
	avail, err := GetDeviceInfo(f.rt, gpu, DeviceAvailable)
	if err != nil || !avail {
		t.Errorf("DeviceAvailable = %v, %v; want true, nil", avail, err)
	}
	images, err := GetDeviceInfo(f.rt, gpu, DeviceImageSupport)
	if err != nil || images {
		t.Errorf("DeviceImageSupport = %v, %v; want false, nil", images, err)
	}
	platform, err := GetDeviceInfo(f.rt, gpu, DevicePlatform)
	if err != nil || platform != f.platform {
		t.Errorf("DevicePlatform = %v, %v; want %v, nil", platform, err, f.platform)
	}

	// Fixed-size properties take a single call.
	before := f.fake.Calls(native.SymGetDeviceInfo)
	if _, err := GetDeviceInfo(f.rt, gpu, DevicePreferredVectorWidthFloat); err != nil {
		t.Fatalf("DevicePreferredVectorWidthFloat error = %v", err)
	}
	if n := f.fake.Calls(native.SymGetDeviceInfo) - before; n != 1 {
		t.Errorf("clGetDeviceInfo calls = %d, want 1", n)
	}
}

func TestGetDeviceInfoBits(t *testing.T) {
	f := newFixture(t)

	typ, err := GetDeviceInfo(f.rt, DeviceID{raw: f.gpu.ID()}, DeviceTypeInfo)
	if err != nil {
		t.Fatalf("DeviceTypeInfo error = %v", err)
	}
	if !typ.Contains(DeviceTypeGPU) || typ.Contains(DeviceTypeCPU) {
		t.Errorf("device type = %v, want GPU only", typ)
	}

	props, err := GetDeviceInfo(f.rt, DeviceID{raw: f.cpu.ID()}, DeviceQueueProperties)
	if err != nil {
		t.Fatalf("DeviceQueueProperties error = %v", err)
	}
	if !props.Contains(QueueProfiling | QueueOutOfOrderExecMode) {
		t.Errorf("queue properties = %v, want PROFILING|OUT_OF_ORDER_EXEC_MODE", props)
	}

	fp, err := GetDeviceInfo(f.rt, DeviceID{raw: f.gpu.ID()}, DeviceSingleFPConfig)
	if err != nil || !fp.Contains(FPFMA|FPRoundToNearest) {
		t.Errorf("DeviceSingleFPConfig = %v, %v", fp, err)
	}

	exec, err := GetDeviceInfo(f.rt, DeviceID{raw: f.gpu.ID()}, DeviceExecutionCapabilities)
	if err != nil || exec != ExecKernel {
		t.Errorf("DeviceExecutionCapabilities = %v, %v; want KERNEL", exec, err)
	}
}

func TestGetDeviceInfoUnknownBits(t *testing.T) {
	f := newFixture(t)
	gpu := DeviceID{raw: f.gpu.ID()}

	f.gpu.SetRawInfo(native.DeviceType, u64(native.DeviceTypeGPU|1<<40))
	expectViolation(t, KindUnknownBits, func() {
		_, _ = GetDeviceInfo(f.rt, gpu, DeviceTypeInfo)
	})

	f.gpu.SetRawInfo(native.DeviceQueueProperties, u64(native.QueueProfilingEnable|1<<20))
	expectViolation(t, KindUnknownBits, func() {
		_, _ = GetDeviceInfo(f.rt, gpu, DeviceQueueProperties)
	})
}

func TestGetDeviceInfoMalformedString(t *testing.T) {
	f := newFixture(t)
	f.gpu.SetRawInfo(native.DeviceName, []byte("no terminator"))

	expectViolation(t, KindMalformedString, func() {
		_, _ = GetDeviceInfo(f.rt, DeviceID{raw: f.gpu.ID()}, DeviceName)
	})
}

func TestGetDeviceInfoUnsupported(t *testing.T) {
	f := newFixture(t)

	_, err := GetDeviceInfo(f.rt, DeviceID{raw: f.gpu.ID()}, DeviceDoubleFPConfig)
	if !errors.Is(err, native.InvalidValue) {
		t.Errorf("DeviceDoubleFPConfig error = %v, want %v", err, native.InvalidValue)
	}
	_, err = GetDeviceInfo(f.rt, DeviceID{raw: 3}, DeviceName)
	if !errors.Is(err, native.InvalidDevice) {
		t.Errorf("unknown device error = %v, want %v", err, native.InvalidDevice)
	}
}

func TestBitSetString(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{DeviceTypeGPU.String(), "GPU"},
		{(DeviceTypeCPU | DeviceTypeGPU).String(), "CPU|GPU"},
		{DeviceTypeAll.String(), "ALL"},
		{DeviceType(0).String(), "0"},
		{(QueueProfiling | QueueOutOfOrderExecMode).String(), "OUT_OF_ORDER_EXEC_MODE|PROFILING"},
		{(MemReadOnly | MemHostNoAccess).String(), "READ_ONLY|HOST_NO_ACCESS"},
		{MemFlags(1 << 30).String(), "0x40000000"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}
