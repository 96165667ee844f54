package cl

import (
	"github.com/gogpu/cl/ll"
)

// Buffer owns one reference to a device buffer.
type Buffer struct {
	mem  *ll.Mem
	prot ll.MemProt
	size int
}

// Size returns the buffer size in bytes.
func (b *Buffer) Size() int { return b.size }

// Prot returns the access mode the buffer was created with.
func (b *Buffer) Prot() ll.MemProt { return b.prot }

// Flags reads the buffer's cl_mem_flags back from the runtime.
func (b *Buffer) Flags() (ll.MemFlags, error) {
	return ll.GetMemInfo(b.mem, ll.MemObjectFlags)
}

// LL returns the low-level owner. It stays owned by b.
func (b *Buffer) LL() *ll.Mem { return b.mem }

// TryClone returns an independent owner of the same buffer.
// Like Clone, it must not race Release on the same owner.
func (b *Buffer) TryClone() (*Buffer, error) {
	dup, err := b.mem.TryClone()
	if err != nil {
		return nil, err
	}
	return &Buffer{mem: dup, prot: b.prot, size: b.size}, nil
}

// Clone is TryClone for callers that cannot handle failure. A failed
// retain panics with an *ll.Violation.
func (b *Buffer) Clone() *Buffer {
	dup := b.mem.Clone()
	return &Buffer{mem: dup, prot: b.prot, size: b.size}
}

// Release gives back this owner's reference. Later calls do nothing.
func (b *Buffer) Release() {
	b.mem.Release()
}
