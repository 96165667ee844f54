package ll

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/gogpu/cl/native"
	"github.com/gogpu/cl/native/nativetest"
)

type fixture struct {
	fake     *nativetest.Runtime
	rt       *Runtime
	platform PlatformID
	gpu      *nativetest.Device
	cpu      *nativetest.Device
}

// newFixture builds one platform with a GPU and a CPU device.
func newFixture(t *testing.T) *fixture {
	t.Helper()

	fake := nativetest.New()
	p := fake.AddPlatform("Test Platform")
	gpu := p.AddDevice(nativetest.DeviceConfig{Name: "Test GPU", Type: native.DeviceTypeGPU})
	cpu := p.AddDevice(nativetest.DeviceConfig{
		Name:            "Test CPU",
		Type:            native.DeviceTypeCPU,
		QueueProperties: native.QueueProfilingEnable | native.QueueOutOfOrderExecModeEnable,
	})

	return &fixture{
		fake:     fake,
		rt:       NewRuntime(fake),
		platform: PlatformID{raw: p.ID()},
		gpu:      gpu,
		cpu:      cpu,
	}
}

func (f *fixture) devices() []DeviceID {
	return []DeviceID{{raw: f.gpu.ID()}, {raw: f.cpu.ID()}}
}

func (f *fixture) context(t *testing.T) *Context {
	t.Helper()
	c, err := f.rt.CreateContext(f.platform, f.devices())
	if err != nil {
		t.Fatalf("CreateContext() error = %v", err)
	}
	return c
}

// expectViolation runs fn and fails unless it panics with a *Violation of
// the given kind.
func expectViolation(t *testing.T, kind Kind, fn func()) *Violation {
	t.Helper()

	var got any
	func() {
		defer func() { got = recover() }()
		fn()
	}()

	if got == nil {
		t.Fatalf("expected %s violation, got no panic", kind)
	}
	v, ok := got.(*Violation)
	if !ok {
		t.Fatalf("panic value = %#v, want *Violation", got)
	}
	if !errors.Is(v, &Violation{Kind: kind}) {
		t.Fatalf("violation kind = %s, want %s", v.Kind, kind)
	}
	return v
}

// swapAbort replaces the abort hook for the duration of the test.
func swapAbort(t *testing.T, fn func(*Violation)) {
	t.Helper()
	prev := abortHook.Swap(&fn)
	t.Cleanup(func() { abortHook.Store(prev) })
}

func u64(v uint64) []byte {
	return binary.NativeEndian.AppendUint64(nil, v)
}
