package ll

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"

	"github.com/gogpu/cl/native"
)

var (
	// ErrReleased is returned when cloning or using an owner after its
	// Release.
	ErrReleased = errors.New("ll: object already released")

	// ErrNoDevices is returned by CreateContext for an empty device list.
	ErrNoDevices = errors.New("ll: context needs at least one device")
)

// abortHook ends the process from places that cannot unwind: native
// callbacks and cleanup functions. Tests replace it.
var abortHook atomic.Pointer[func(*Violation)]

func init() {
	exit := func(v *Violation) {
		fmt.Fprintln(os.Stderr, v)
		os.Exit(2)
	}
	abortHook.Store(&exit)
}

func abort(v *Violation) {
	(*abortHook.Load())(v)
}

// refOps binds the retain and release entry points of one object kind.
type refOps[H ~uintptr] struct {
	kind    string
	retain  func(native.API, H) native.Status
	release func(native.API, H) native.Status
}

var (
	contextOps = &refOps[native.Context]{
		kind:    "context",
		retain:  native.API.RetainContext,
		release: native.API.ReleaseContext,
	}
	queueOps = &refOps[native.CommandQueue]{
		kind:    "command queue",
		retain:  native.API.RetainCommandQueue,
		release: native.API.ReleaseCommandQueue,
	}
	memOps = &refOps[native.Mem]{
		kind:    "mem object",
		retain:  native.API.RetainMemObject,
		release: native.API.ReleaseMemObject,
	}
)

// owner holds exactly one native reference. Release gives it back once;
// if the owner becomes unreachable first, a cleanup gives it back and
// logs the leak.
type owner[H ~uintptr] struct {
	rt       *Runtime
	handle   H
	ops      *refOps[H]
	released atomic.Bool
	cleanup  runtime.Cleanup
}

// leaked is the cleanup argument. It must not point back at the owner.
type leaked[H ~uintptr] struct {
	rt     *Runtime
	handle H
	ops    *refOps[H]
}

// track arms the leak cleanup for ptr, the value embedding o.
func track[T any, H ~uintptr](ptr *T, o *owner[H]) {
	o.cleanup = runtime.AddCleanup(ptr, releaseLeaked[H], leaked[H]{rt: o.rt, handle: o.handle, ops: o.ops})
}

func releaseLeaked[H ~uintptr](l leaked[H]) {
	log := l.rt.Logger()
	log.Warn("opencl: object leaked without Release", "kind", l.ops.kind, "handle", fmt.Sprintf("%#x", uintptr(l.handle)))

	status := l.ops.release(l.rt.api, l.handle)
	if status == native.Success {
		return
	}
	v := &Violation{Kind: KindReleaseFailed, Detail: fmt.Sprintf("release of leaked %s %#x", l.ops.kind, uintptr(l.handle))}
	if status.Known() {
		v.Cause = status
	}
	log.Error("opencl: release failed", "error", v)
	abort(v)
}

// retain adds a native reference for a new owner. The released check
// and the native retain are not atomic with release.
func (o *owner[H]) retain() error {
	if o.released.Load() {
		return ErrReleased
	}
	if err := CheckStatus(o.ops.retain(o.rt.api, o.handle)); err != nil {
		return fmt.Errorf("ll: retain %s: %w", o.ops.kind, err)
	}
	o.rt.Logger().Debug("opencl: retained", "kind", o.ops.kind, "handle", fmt.Sprintf("%#x", uintptr(o.handle)))
	return nil
}

// mustRetain is retain for Clone. A failed retain is fatal.
func (o *owner[H]) mustRetain() {
	if err := o.retain(); err != nil {
		violate(KindRetainFailed, err, "clone %s %#x", o.ops.kind, uintptr(o.handle))
	}
}

func (o *owner[H]) release() {
	if !o.released.CompareAndSwap(false, true) {
		return
	}
	o.cleanup.Stop()

	if err := CheckStatus(o.ops.release(o.rt.api, o.handle)); err != nil {
		violate(KindReleaseFailed, err, "release %s %#x", o.ops.kind, uintptr(o.handle))
	}
	o.rt.Logger().Debug("opencl: released", "kind", o.ops.kind, "handle", fmt.Sprintf("%#x", uintptr(o.handle)))
}

func (o *owner[H]) live() error {
	if o.released.Load() {
		return ErrReleased
	}
	return nil
}

// Released reports whether Release was called on this owner.
func (o *owner[H]) Released() bool {
	return o.released.Load()
}
