package native

import (
	"errors"
	"fmt"
	"testing"
)

func TestStatusString(t *testing.T) {
	tests := []struct {
		s    Status
		want string
	}{
		{Success, "CL_SUCCESS"},
		{DeviceNotFound, "CL_DEVICE_NOT_FOUND"},
		{InvalidValue, "CL_INVALID_VALUE"},
		{MaxSizeRestrictionExceeded, "CL_MAX_SIZE_RESTRICTION_EXCEEDED"},
		{PlatformNotFoundKHR, "CL_PLATFORM_NOT_FOUND_KHR"},
		{-20, "CL_STATUS(-20)"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Status(%d).String() = %q, want %q", int32(tt.s), got, tt.want)
		}
	}
}

func TestStatusKnown(t *testing.T) {
	for s := Status(-72); s <= 0; s++ {
		want := s > -20 || s < -29
		if got := s.Known(); got != want {
			t.Errorf("Status(%d).Known() = %v, want %v", int32(s), got, want)
		}
	}
	if !PlatformNotFoundKHR.Known() {
		t.Error("PlatformNotFoundKHR.Known() = false")
	}
	if Status(-73).Known() || Status(1).Known() {
		t.Error("codes outside the headers reported as known")
	}
}

func TestStatusIsError(t *testing.T) {
	err := fmt.Errorf("create buffer: %w", InvalidBufferSize)
	if !errors.Is(err, InvalidBufferSize) {
		t.Error("errors.Is(wrapped, InvalidBufferSize) = false")
	}
	if errors.Is(err, InvalidValue) {
		t.Error("errors.Is matched a different status")
	}
	if got := InvalidBufferSize.Error(); got != "opencl: CL_INVALID_BUFFER_SIZE" {
		t.Errorf("Error() = %q", got)
	}
}
