package cl

import (
	"slices"
	"strings"

	"github.com/gogpu/cl/ll"
)

// Platform is one OpenCL platform. It is a plain value: copy it freely.
type Platform struct {
	rt *ll.Runtime
	id ll.PlatformID
}

// Platforms returns the platforms of the active runtime. A machine without
// OpenCL platforms yields an empty slice.
func Platforms() []Platform {
	rt := MustRuntime()
	ids := must(rt.PlatformIDs())("platforms")
	return platformsOf(rt, ids)
}

func platformsOf(rt *ll.Runtime, ids []ll.PlatformID) []Platform {
	out := make([]Platform, len(ids))
	for i, id := range ids {
		out[i] = Platform{rt: rt, id: id}
	}
	return out
}

// ID returns the platform identifier.
func (p Platform) ID() ll.PlatformID { return p.id }

// Runtime returns the runtime the platform belongs to.
func (p Platform) Runtime() *ll.Runtime { return p.rt }

func (p Platform) info(param ll.PlatformInfo) string {
	return must(p.rt.PlatformInfo(p.id, param))(param.String())
}

// Name returns CL_PLATFORM_NAME.
func (p Platform) Name() string { return p.info(ll.PlatformName) }

// Version returns CL_PLATFORM_VERSION.
func (p Platform) Version() string { return p.info(ll.PlatformVersion) }

// Vendor returns CL_PLATFORM_VENDOR.
func (p Platform) Vendor() string { return p.info(ll.PlatformVendor) }

// Profile returns CL_PLATFORM_PROFILE.
func (p Platform) Profile() string { return p.info(ll.PlatformProfile) }

// Extensions returns CL_PLATFORM_EXTENSIONS as reported.
func (p Platform) Extensions() string { return p.info(ll.PlatformExtensions) }

// ExtensionList returns the extensions split on whitespace.
func (p Platform) ExtensionList() []string {
	return strings.Fields(p.Extensions())
}

// HasExtension reports whether the platform lists ext.
func (p Platform) HasExtension(ext string) bool {
	return slices.Contains(p.ExtensionList(), ext)
}

// Devices returns every device of the platform.
func (p Platform) Devices() []Device {
	return p.DevicesOfType(ll.DeviceTypeAll)
}

// DevicesOfType returns the devices whose type intersects filter.
func (p Platform) DevicesOfType(filter ll.DeviceType) []Device {
	ids := must(p.rt.DeviceIDs(p.id, filter))("devices of " + filter.String())
	out := make([]Device, len(ids))
	for i, id := range ids {
		out[i] = Device{rt: p.rt, id: id}
	}
	return out
}

// CreateContext creates a context over devices, which must all belong
// to p. At least one device is required.
func (p Platform) CreateContext(devices ...Device) (*Context, error) {
	ids := make([]ll.DeviceID, len(devices))
	for i, d := range devices {
		ids[i] = d.id
	}
	c, err := p.rt.CreateContext(p.id, ids)
	if err != nil {
		return nil, err
	}
	return &Context{ctx: c, platform: p, devices: append([]Device(nil), devices...)}, nil
}

func (p Platform) String() string {
	return p.id.String()
}
