package ll

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/cl/native"
)

// Mem owns one reference to an OpenCL memory object. Like CommandQueue it
// keeps its context alive on the runtime side.
type Mem struct {
	owner[native.Mem]
}

func newMem(rt *Runtime, h native.Mem) *Mem {
	m := &Mem{owner: owner[native.Mem]{rt: rt, handle: h, ops: memOps}}
	track(m, &m.owner)
	return m
}

// TryClone returns a new owner of the same buffer, adding one native
// reference.
// It must not be called concurrently with Release on the same owner:
// the retain could then reach a handle that was just freed.
func (m *Mem) TryClone() (*Mem, error) {
	if err := m.retain(); err != nil {
		return nil, err
	}
	return newMem(m.rt, m.handle), nil
}

// Clone is TryClone for callers that cannot handle failure. A failed
// retain panics with a *Violation of kind KindRetainFailed.
func (m *Mem) Clone() *Mem {
	m.mustRetain()
	return newMem(m.rt, m.handle)
}

// Release gives back this owner's reference. Later calls do nothing.
func (m *Mem) Release() {
	m.release()
}

// MemInfo describes a memory object property whose decoded value has
// type T.
type MemInfo[T any] struct {
	param native.MemInfo
	read  shape[T]
}

func (i MemInfo[T]) String() string {
	return fmt.Sprintf("CL_MEM_INFO(%#x)", uint32(i.param))
}

// Memory object property descriptors.
var (
	MemObjectFlags          = MemInfo[MemFlags]{native.MemFlags, readBits("mem flags", knownMemFlags)}
	MemObjectSize           = MemInfo[uint64]{native.MemSize, readSize}
	MemObjectMapCount       = MemInfo[uint32]{native.MemMapCount, readUint}
	MemObjectReferenceCount = MemInfo[uint32]{native.MemReferenceCount, readUint}
)

// GetMemInfo reads one property of m.
func GetMemInfo[T any](m *Mem, info MemInfo[T]) (T, error) {
	if err := m.live(); err != nil {
		var zero T
		return zero, err
	}
	return query(m.rt, info.String(), info.read, func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
		return m.rt.api.GetMemObjectInfo(m.handle, info.param, size, value, sizeRet)
	})
}
