package nativetest

import (
	"encoding/binary"
	"unsafe"

	"github.com/gogpu/cl/native"
)

// Platform is a fake platform. Its info values are stored as the raw
// bytes clGetPlatformInfo hands out.
type Platform struct {
	rt      *Runtime
	id      native.PlatformID
	info    map[native.PlatformInfo][]byte
	devices []*Device
}

// AddPlatform adds a platform with the given name. Profile, version,
// vendor and extensions get plausible defaults that SetInfo can replace.
func (r *Runtime) AddPlatform(name string) *Platform {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := &Platform{
		rt: r,
		id: native.PlatformID(r.handle()),
		info: map[native.PlatformInfo][]byte{
			native.PlatformProfile:    cstring("FULL_PROFILE"),
			native.PlatformVersion:    cstring("OpenCL 1.2 nativetest"),
			native.PlatformName:       cstring(name),
			native.PlatformVendor:     cstring("nativetest"),
			native.PlatformExtensions: cstring("cl_khr_icd cl_khr_fp64"),
		},
	}
	r.platforms = append(r.platforms, p)
	r.byID[p.id] = p
	return p
}

// ID returns the raw platform handle.
func (p *Platform) ID() native.PlatformID { return p.id }

// SetInfo replaces a string property.
func (p *Platform) SetInfo(param native.PlatformInfo, value string) {
	p.SetRawInfo(param, cstring(value))
}

// SetRawInfo replaces a property with exactly raw, which need not be a
// valid C string.
func (p *Platform) SetRawInfo(param native.PlatformInfo, raw []byte) {
	p.rt.mu.Lock()
	defer p.rt.mu.Unlock()
	p.info[param] = append([]byte(nil), raw...)
}

// GetPlatformIDs implements native.API.
func (r *Runtime) GetPlatformIDs(numEntries uint32, platforms *native.PlatformID, numPlatforms *uint32) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(native.SymGetPlatformIDs); failed {
		return status
	}
	if len(r.platforms) == 0 && r.EmptyPlatformStatus != native.Success {
		if numPlatforms != nil {
			*numPlatforms = 0
		}
		return r.EmptyPlatformStatus
	}
	ids := make([]native.PlatformID, len(r.platforms))
	for i, p := range r.platforms {
		ids[i] = p.id
	}
	return writeList(ids, numEntries, platforms, numPlatforms)
}

// GetPlatformInfo implements native.API.
func (r *Runtime) GetPlatformInfo(platform native.PlatformID, param native.PlatformInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	if status, failed := r.enter(native.SymGetPlatformInfo); failed {
		return status
	}
	p, ok := r.byID[platform]
	if !ok {
		return native.InvalidPlatform
	}
	raw, ok := p.info[param]
	if !ok {
		return native.InvalidValue
	}
	return writeInfo(raw, size, value, sizeRet)
}

func cstring(s string) []byte {
	return append([]byte(s), 0)
}

func encodeUint32(v uint32) []byte {
	return binary.NativeEndian.AppendUint32(nil, v)
}

func encodeUint64(v uint64) []byte {
	return binary.NativeEndian.AppendUint64(nil, v)
}

func encodeBool(v bool) []byte {
	if v {
		return encodeUint32(native.True)
	}
	return encodeUint32(native.False)
}

func encodeSize(v uintptr) []byte {
	if native.SizeofSize == 4 {
		return encodeUint32(uint32(v))
	}
	return encodeUint64(uint64(v))
}

func encodeHandles[T ~uintptr](hs []T) []byte {
	out := make([]byte, 0, len(hs)*int(native.SizeofHandle))
	for _, h := range hs {
		out = append(out, encodeSize(uintptr(h))...)
	}
	return out
}
