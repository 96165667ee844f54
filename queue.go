package cl

import (
	"github.com/gogpu/cl/ll"
)

// Queue owns one reference to a command queue on one device.
type Queue struct {
	q      *ll.CommandQueue
	device Device
	props  ll.CommandQueueProperties
}

// Device returns the device the queue submits to.
func (q *Queue) Device() Device { return q.device }

// Properties returns the properties the queue was created with.
func (q *Queue) Properties() ll.CommandQueueProperties { return q.props }

// LL returns the low-level owner. It stays owned by q.
func (q *Queue) LL() *ll.CommandQueue { return q.q }

// TryClone returns an independent owner of the same queue.
// Like Clone, it must not race Release on the same owner.
func (q *Queue) TryClone() (*Queue, error) {
	dup, err := q.q.TryClone()
	if err != nil {
		return nil, err
	}
	return &Queue{q: dup, device: q.device, props: q.props}, nil
}

// Clone is TryClone for callers that cannot handle failure. A failed
// retain panics with an *ll.Violation.
func (q *Queue) Clone() *Queue {
	dup := q.q.Clone()
	return &Queue{q: dup, device: q.device, props: q.props}
}

// Release gives back this owner's reference. Later calls do nothing.
func (q *Queue) Release() {
	q.q.Release()
}
