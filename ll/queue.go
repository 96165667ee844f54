package ll

import (
	"fmt"
	"unsafe"

	"github.com/gogpu/cl/native"
)

// CommandQueue owns one reference to an OpenCL command queue. The queue
// holds its own reference on its context, so releasing the Context that
// created it does not invalidate it.
type CommandQueue struct {
	owner[native.CommandQueue]
}

func newCommandQueue(rt *Runtime, h native.CommandQueue) *CommandQueue {
	q := &CommandQueue{owner: owner[native.CommandQueue]{rt: rt, handle: h, ops: queueOps}}
	track(q, &q.owner)
	return q
}

// TryClone returns a new owner of the same queue, adding one native
// reference.
// It must not be called concurrently with Release on the same owner:
// the retain could then reach a handle that was just freed.
func (q *CommandQueue) TryClone() (*CommandQueue, error) {
	if err := q.retain(); err != nil {
		return nil, err
	}
	return newCommandQueue(q.rt, q.handle), nil
}

// Clone is TryClone for callers that cannot handle failure. A failed
// retain panics with a *Violation of kind KindRetainFailed.
func (q *CommandQueue) Clone() *CommandQueue {
	q.mustRetain()
	return newCommandQueue(q.rt, q.handle)
}

// Release gives back this owner's reference. Later calls do nothing.
func (q *CommandQueue) Release() {
	q.release()
}

// CommandQueueInfo describes a command queue property whose decoded value
// has type T.
type CommandQueueInfo[T any] struct {
	param native.CommandQueueInfo
	read  shape[T]
}

func (i CommandQueueInfo[T]) String() string {
	return fmt.Sprintf("CL_QUEUE_INFO(%#x)", uint32(i.param))
}

// Command queue property descriptors.
var (
	QueueReferenceCount = CommandQueueInfo[uint32]{native.QueueReferenceCount, readUint}
	QueueDevice         = CommandQueueInfo[DeviceID]{native.QueueDevice, readDevice}
	QueueProperties     = CommandQueueInfo[CommandQueueProperties]{native.QueueProperties, readBits("queue properties", knownQueueProperties)}
)

// GetCommandQueueInfo reads one property of q.
func GetCommandQueueInfo[T any](q *CommandQueue, info CommandQueueInfo[T]) (T, error) {
	if err := q.live(); err != nil {
		var zero T
		return zero, err
	}
	return query(q.rt, info.String(), info.read, func(size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
		return q.rt.api.GetCommandQueueInfo(q.handle, info.param, size, value, sizeRet)
	})
}
