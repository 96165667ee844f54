package cl

import (
	"github.com/gogpu/cl/ll"
)

// Context owns one reference to an OpenCL context together with the
// platform and devices it was created for.
type Context struct {
	ctx      *ll.Context
	platform Platform
	devices  []Device
}

// Platform returns the platform the context was created on.
func (c *Context) Platform() Platform { return c.platform }

// Devices returns the devices the context was created with.
func (c *Context) Devices() []Device {
	return append([]Device(nil), c.devices...)
}

// LL returns the low-level owner. It stays owned by c.
func (c *Context) LL() *ll.Context { return c.ctx }

// TryClone returns an independent owner of the same context.
// Like Clone, it must not race Release on the same owner.
func (c *Context) TryClone() (*Context, error) {
	dup, err := c.ctx.TryClone()
	if err != nil {
		return nil, err
	}
	return &Context{ctx: dup, platform: c.platform, devices: c.devices}, nil
}

// Clone is TryClone for callers that cannot handle failure. A failed
// retain panics with an *ll.Violation.
func (c *Context) Clone() *Context {
	dup := c.ctx.Clone()
	return &Context{ctx: dup, platform: c.platform, devices: c.devices}
}

// Release gives back this owner's reference. Later calls do nothing.
func (c *Context) Release() {
	c.ctx.Release()
}

// ReferenceCount returns the runtime's reference count for the context.
// It is meant for diagnostics; the value may be stale once returned.
func (c *Context) ReferenceCount() (uint32, error) {
	return ll.GetContextInfo(c.ctx, ll.ContextReferenceCount)
}

// CreateBuffer allocates a device buffer of size bytes.
func (c *Context) CreateBuffer(prot ll.MemProt, size int) (*Buffer, error) {
	m, err := c.ctx.CreateBuffer(prot, size)
	if err != nil {
		return nil, err
	}
	return &Buffer{mem: m, prot: prot, size: size}, nil
}

// CreateQueue creates a command queue on device, which must be one of
// the context's devices.
func (c *Context) CreateQueue(device Device, props ll.CommandQueueProperties) (*Queue, error) {
	q, err := c.ctx.CreateCommandQueue(device.id, props)
	if err != nil {
		return nil, err
	}
	return &Queue{q: q, device: device, props: props}, nil
}
