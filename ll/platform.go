package ll

import (
	"unsafe"

	"github.com/gogpu/cl/native"
)

// PlatformInfo selects a string property of a platform.
type PlatformInfo native.PlatformInfo

const (
	PlatformProfile    = PlatformInfo(native.PlatformProfile)
	PlatformVersion    = PlatformInfo(native.PlatformVersion)
	PlatformName       = PlatformInfo(native.PlatformName)
	PlatformVendor     = PlatformInfo(native.PlatformVendor)
	PlatformExtensions = PlatformInfo(native.PlatformExtensions)
)

func (i PlatformInfo) String() string {
	switch i {
	case PlatformProfile:
		return "CL_PLATFORM_PROFILE"
	case PlatformVersion:
		return "CL_PLATFORM_VERSION"
	case PlatformName:
		return "CL_PLATFORM_NAME"
	case PlatformVendor:
		return "CL_PLATFORM_VENDOR"
	case PlatformExtensions:
		return "CL_PLATFORM_EXTENSIONS"
	default:
		return "CL_PLATFORM_INFO(unknown)"
	}
}

// PlatformIDs lists the available platforms in the order the runtime
// reports them. No platforms is an empty slice, not an error, including
// when the ICD loader reports CL_PLATFORM_NOT_FOUND_KHR.
func (rt *Runtime) PlatformIDs() ([]PlatformID, error) {
	var n uint32
	status := rt.api.GetPlatformIDs(0, nil, &n)
	if status == native.PlatformNotFoundKHR {
		return []PlatformID{}, nil
	}
	if err := CheckStatus(status); err != nil {
		return nil, err
	}
	if n == 0 {
		return []PlatformID{}, nil
	}

	raw := make([]native.PlatformID, n)
	if err := CheckStatus(rt.api.GetPlatformIDs(n, &raw[0], &n)); err != nil {
		return nil, err
	}
	raw = raw[:min(int(n), len(raw))]

	ids := make([]PlatformID, len(raw))
	for i, h := range raw {
		ids[i] = PlatformID{raw: h}
	}
	rt.Logger().Debug("opencl: platforms enumerated", "count", len(ids))
	return ids, nil
}

// PlatformInfo reads a string property of platform.
func (rt *Runtime) PlatformInfo(platform PlatformID, param PlatformInfo) (string, error) {
	return query(rt, param.String(), readString, func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
		return rt.api.GetPlatformInfo(platform.raw, native.PlatformInfo(param), size, value, sizeRet)
	})
}

// DeviceIDs lists the devices of platform matching filter. A platform
// without matching devices yields an empty slice, not an error.
func (rt *Runtime) DeviceIDs(platform PlatformID, filter DeviceType) ([]DeviceID, error) {
	var n uint32
	status := rt.api.GetDeviceIDs(platform.raw, uint64(filter), 0, nil, &n)
	if status == native.DeviceNotFound {
		return []DeviceID{}, nil
	}
	if err := CheckStatus(status); err != nil {
		return nil, err
	}
	if n == 0 {
		return []DeviceID{}, nil
	}

	raw := make([]native.DeviceID, n)
	if err := CheckStatus(rt.api.GetDeviceIDs(platform.raw, uint64(filter), n, &raw[0], &n)); err != nil {
		return nil, err
	}
	raw = raw[:min(int(n), len(raw))]

	ids := make([]DeviceID, len(raw))
	for i, h := range raw {
		ids[i] = DeviceID{raw: h}
	}
	rt.Logger().Debug("opencl: devices enumerated", "platform", platform, "filter", filter, "count", len(ids))
	return ids, nil
}
