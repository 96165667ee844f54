package ll

import (
	"encoding/binary"
	"unicode/utf8"
	"unsafe"

	"github.com/gogpu/cl/native"
)

// shape describes how one property is read and decoded. A zero size
// selects the two-call idiom: the runtime is first asked for the length,
// then a buffer of exactly that length is filled.
type shape[T any] struct {
	size   uintptr
	decode func(raw []byte) T
}

// infoFunc is one clGet*Info call bound to a handle and selector.
type infoFunc func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status

func query[T any](rt *Runtime, what string, s shape[T], get infoFunc) (T, error) {
	var zero T

	size := s.size
	if size == 0 {
		if err := CheckStatus(get(0, nil, &size)); err != nil {
			return zero, err
		}
		if size == 0 {
			rt.Logger().Debug("opencl: empty property", "query", what)
			return s.decode(nil), nil
		}
	}

	buf := make([]byte, size)
	if err := CheckStatus(get(size, unsafe.Pointer(&buf[0]), nil)); err != nil {
		return zero, err
	}
	rt.Logger().Debug("opencl: property read", "query", what, "size", size)
	return s.decode(buf), nil
}

// DecodeString decodes a NUL-terminated property value. The terminator
// is stripped and the rest must be valid UTF-8. Anything else panics
// with a *Violation of kind KindMalformedString.
func DecodeString(raw []byte) string {
	if len(raw) == 0 {
		violate(KindMalformedString, nil, "empty buffer")
	}
	if raw[len(raw)-1] != 0 {
		violate(KindMalformedString, nil, "missing NUL terminator in %q", raw)
	}
	body := raw[:len(raw)-1]
	if !utf8.Valid(body) {
		violate(KindMalformedString, nil, "invalid UTF-8 in %q", body)
	}
	return string(body)
}

func decodeUint32(raw []byte) uint32 { return binary.NativeEndian.Uint32(raw) }
func decodeUint64(raw []byte) uint64 { return binary.NativeEndian.Uint64(raw) }

func decodeSize(raw []byte) uint64 {
	if native.SizeofSize == 4 {
		return uint64(decodeUint32(raw))
	}
	return decodeUint64(raw)
}

func decodeHandles(raw []byte) []uintptr {
	n := len(raw) / int(native.SizeofHandle)
	out := make([]uintptr, n)
	for i := range out {
		out[i] = uintptr(decodeSize(raw[i*int(native.SizeofHandle):]))
	}
	return out
}

var (
	readString = shape[string]{decode: DecodeString}
	readBool   = shape[bool]{
		size:   native.SizeofBool,
		decode: func(raw []byte) bool { return decodeUint32(raw) != native.False },
	}
	readUint  = shape[uint32]{size: native.SizeofUint, decode: decodeUint32}
	readUlong = shape[uint64]{size: native.SizeofUlong, decode: decodeUint64}
	readSize  = shape[uint64]{size: native.SizeofSize, decode: decodeSize}

	readPlatform = shape[PlatformID]{
		size: native.SizeofHandle,
		decode: func(raw []byte) PlatformID {
			return PlatformID{raw: native.PlatformID(decodeSize(raw))}
		},
	}
	readDevice = shape[DeviceID]{
		size: native.SizeofHandle,
		decode: func(raw []byte) DeviceID {
			return DeviceID{raw: native.DeviceID(decodeSize(raw))}
		},
	}
	readDevices = shape[[]DeviceID]{
		decode: func(raw []byte) []DeviceID {
			hs := decodeHandles(raw)
			ids := make([]DeviceID, len(hs))
			for i, h := range hs {
				ids[i] = DeviceID{raw: native.DeviceID(h)}
			}
			return ids
		},
	}
)

// readBits decodes a cl_bitfield. Bits outside known mean the runtime is
// newer than this binding and the value cannot be interpreted, so they
// panic with a *Violation of kind KindUnknownBits.
func readBits[T ~uint64](what string, known T) shape[T] {
	return shape[T]{
		size: native.SizeofBitfield,
		decode: func(raw []byte) T {
			return DecodeBits(what, known, decodeUint64(raw))
		},
	}
}

// DecodeBits converts v to the bit set T, panicking if v has bits outside
// known.
func DecodeBits[T ~uint64](what string, known T, v uint64) T {
	if unknown := v &^ uint64(known); unknown != 0 {
		violate(KindUnknownBits, nil, "%s: unknown bits %#x in %#x", what, unknown, v)
	}
	return T(v)
}
