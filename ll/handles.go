package ll

import (
	"cmp"
	"fmt"

	"github.com/gogpu/cl/native"
)

// PlatformID identifies one OpenCL platform. It is produced only by
// Runtime.PlatformIDs, owns nothing and is never retained or released.
type PlatformID struct {
	raw native.PlatformID
}

// Compare orders platform identifiers by their native value.
func (p PlatformID) Compare(other PlatformID) int {
	return cmp.Compare(p.raw, other.raw)
}

// IsZero reports whether p is the zero identifier.
func (p PlatformID) IsZero() bool {
	return p.raw == 0
}

func (p PlatformID) String() string {
	return fmt.Sprintf("platform(%#x)", uintptr(p.raw))
}

// DeviceID identifies one OpenCL device. Like PlatformID it is never
// reference counted.
type DeviceID struct {
	raw native.DeviceID
}

// Compare orders device identifiers by their native value.
func (d DeviceID) Compare(other DeviceID) int {
	return cmp.Compare(d.raw, other.raw)
}

// IsZero reports whether d is the zero identifier.
func (d DeviceID) IsZero() bool {
	return d.raw == 0
}

func (d DeviceID) String() string {
	return fmt.Sprintf("device(%#x)", uintptr(d.raw))
}

// Handle kinds for objects the binding does not create yet. They exist so
// that every native object kind has its own type.
type (
	ProgramID struct{ raw native.Program }
	KernelID  struct{ raw native.Kernel }
	EventID   struct{ raw native.Event }
	SamplerID struct{ raw native.Sampler }
)

func (p ProgramID) String() string { return fmt.Sprintf("program(%#x)", uintptr(p.raw)) }
func (k KernelID) String() string  { return fmt.Sprintf("kernel(%#x)", uintptr(k.raw)) }
func (e EventID) String() string   { return fmt.Sprintf("event(%#x)", uintptr(e.raw)) }
func (s SamplerID) String() string { return fmt.Sprintf("sampler(%#x)", uintptr(s.raw)) }

func rawDevices(ids []DeviceID) []native.DeviceID {
	raw := make([]native.DeviceID, len(ids))
	for i, id := range ids {
		raw[i] = id.raw
	}
	return raw
}
