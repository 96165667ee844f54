package ll

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/cl/native"
	"github.com/gogpu/cl/native/nativetest"
)

func TestPlatformIDsEmpty(t *testing.T) {
	for _, status := range []native.Status{native.PlatformNotFoundKHR, native.Success} {
		t.Run(status.String(), func(t *testing.T) {
			fake := nativetest.New()
			fake.EmptyPlatformStatus = status

			ids, err := NewRuntime(fake).PlatformIDs()
			if err != nil {
				t.Fatalf("PlatformIDs() error = %v", err)
			}
			if ids == nil || len(ids) != 0 {
				t.Errorf("PlatformIDs() = %v, want empty non-nil slice", ids)
			}
		})
	}
}

func TestPlatformIDsOrder(t *testing.T) {
	fake := nativetest.New()
	a := fake.AddPlatform("A")
	b := fake.AddPlatform("B")

	ids, err := NewRuntime(fake).PlatformIDs()
	if err != nil {
		t.Fatalf("PlatformIDs() error = %v", err)
	}
	want := []PlatformID{{raw: a.ID()}, {raw: b.ID()}}
	if !slices.Equal(ids, want) {
		t.Errorf("PlatformIDs() = %v, want %v", ids, want)
	}
	if ids[0].Compare(ids[1]) >= 0 || ids[1].Compare(ids[0]) <= 0 || ids[0].Compare(ids[0]) != 0 {
		t.Error("Compare is not a consistent order")
	}
}

func TestPlatformIDsError(t *testing.T) {
	f := newFixture(t)
	f.fake.FailNext(native.SymGetPlatformIDs, native.OutOfHostMemory)

	if _, err := f.rt.PlatformIDs(); !errors.Is(err, native.OutOfHostMemory) {
		t.Errorf("PlatformIDs() error = %v, want %v", err, native.OutOfHostMemory)
	}
}

func TestDeviceIDs(t *testing.T) {
	f := newFixture(t)
	gpu := DeviceID{raw: f.gpu.ID()}
	cpu := DeviceID{raw: f.cpu.ID()}

	tests := []struct {
		filter DeviceType
		want   []DeviceID
	}{
		{DeviceTypeAll, []DeviceID{gpu, cpu}},
		{DeviceTypeGPU, []DeviceID{gpu}},
		{DeviceTypeCPU, []DeviceID{cpu}},
		{DeviceTypeGPU | DeviceTypeCPU, []DeviceID{gpu, cpu}},
		{DeviceTypeAccelerator, []DeviceID{}},
	}
	for _, tt := range tests {
		t.Run(tt.filter.String(), func(t *testing.T) {
			got, err := f.rt.DeviceIDs(f.platform, tt.filter)
			if err != nil {
				t.Fatalf("DeviceIDs(%v) error = %v", tt.filter, err)
			}
			if got == nil || !slices.Equal(got, tt.want) {
				t.Errorf("DeviceIDs(%v) = %v, want %v", tt.filter, got, tt.want)
			}
		})
	}
}

func TestDeviceIDsInvalidPlatform(t *testing.T) {
	f := newFixture(t)

	_, err := f.rt.DeviceIDs(PlatformID{raw: 1}, DeviceTypeAll)
	if !errors.Is(err, native.InvalidPlatform) {
		t.Errorf("DeviceIDs() error = %v, want %v", err, native.InvalidPlatform)
	}
}

func TestDeviceIDsInvalidType(t *testing.T) {
	f := newFixture(t)

	_, err := f.rt.DeviceIDs(f.platform, 0)
	if !errors.Is(err, native.InvalidDeviceType) {
		t.Errorf("DeviceIDs(0) error = %v, want %v", err, native.InvalidDeviceType)
	}
}
