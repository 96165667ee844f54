package ll

import (
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/cl/native"
	"github.com/gogpu/cl/native/nativetest"
)

func TestCreateContextEmptyDevices(t *testing.T) {
	f := newFixture(t)

	for _, devices := range [][]DeviceID{nil, {}} {
		c, err := f.rt.CreateContext(f.platform, devices)
		if !errors.Is(err, ErrNoDevices) {
			t.Errorf("CreateContext(%v) error = %v, want ErrNoDevices", devices, err)
		}
		if c != nil {
			t.Error("CreateContext() returned a context for no devices")
		}
	}
	if n := f.fake.Calls(native.SymCreateContext); n != 0 {
		t.Errorf("clCreateContext calls = %d, want 0", n)
	}
}

func TestCreateContextError(t *testing.T) {
	f := newFixture(t)
	other := f.fake.AddPlatform("Other")

	_, err := f.rt.CreateContext(PlatformID{raw: other.ID()}, f.devices())
	if !errors.Is(err, native.InvalidDevice) {
		t.Errorf("CreateContext(other platform) error = %v, want %v", err, native.InvalidDevice)
	}
	if n := f.fake.Live(nativetest.KindContext); n != 0 {
		t.Errorf("live contexts = %d, want 0", n)
	}
}

func TestContextInfo(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	defer c.Release()

	n, err := GetContextInfo(c, ContextNumDevices)
	if err != nil || n != 2 {
		t.Errorf("ContextNumDevices = %d, %v; want 2, nil", n, err)
	}
	devices, err := GetContextInfo(c, ContextDevices)
	if err != nil {
		t.Fatalf("ContextDevices error = %v", err)
	}
	if len(devices) != 2 || devices[0] != f.devices()[0] || devices[1] != f.devices()[1] {
		t.Errorf("ContextDevices = %v, want %v", devices, f.devices())
	}
	refs, err := GetContextInfo(c, ContextReferenceCount)
	if err != nil || refs != 1 {
		t.Errorf("ContextReferenceCount = %d, %v; want 1, nil", refs, err)
	}
}

func TestContextCloneRelease(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	h := uintptr(c.handle)

	clones := []*Context{c}
	for range 3 {
		d, err := clones[len(clones)-1].TryClone()
		if err != nil {
			t.Fatalf("TryClone() error = %v", err)
		}
		clones = append(clones, d)
	}
	clones = append(clones, c.Clone())

	if n := f.fake.Calls(native.SymRetainContext); n != 4 {
		t.Errorf("clRetainContext calls = %d, want 4", n)
	}
	if refs := f.fake.RefCount(h); refs != 5 {
		t.Errorf("refcount = %d, want 5", refs)
	}

	for _, o := range clones {
		o.Release()
		o.Release()
	}
	if n := f.fake.Calls(native.SymReleaseContext); n != 5 {
		t.Errorf("clReleaseContext calls = %d, want 5", n)
	}
	if n := f.fake.Live(nativetest.KindContext); n != 0 {
		t.Errorf("live contexts = %d, want 0", n)
	}
}

func TestTryCloneReleased(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	c.Release()

	if _, err := c.TryClone(); !errors.Is(err, ErrReleased) {
		t.Errorf("TryClone() after Release error = %v, want ErrReleased", err)
	}
	if _, err := c.CreateBuffer(ReadWrite, 64); !errors.Is(err, ErrReleased) {
		t.Errorf("CreateBuffer() after Release error = %v, want ErrReleased", err)
	}
	if _, err := GetContextInfo(c, ContextReferenceCount); !errors.Is(err, ErrReleased) {
		t.Errorf("GetContextInfo() after Release error = %v, want ErrReleased", err)
	}
	if n := f.fake.Calls(native.SymRetainContext); n != 0 {
		t.Errorf("clRetainContext calls = %d, want 0", n)
	}
	if !c.Released() {
		t.Error("Released() = false, want true")
	}
}

func TestTryCloneFailure(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	defer c.Release()

	f.fake.FailNext(native.SymRetainContext, native.OutOfResources)
	d, err := c.TryClone()
	if !errors.Is(err, native.OutOfResources) {
		t.Errorf("TryClone() error = %v, want %v", err, native.OutOfResources)
	}
	if d != nil {
		t.Error("TryClone() returned an owner on failure")
	}
	if refs := f.fake.RefCount(uintptr(c.handle)); refs != 1 {
		t.Errorf("refcount = %d, want 1", refs)
	}
}

func TestCloneFailurePanics(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	defer c.Release()

	f.fake.FailNext(native.SymRetainContext, native.OutOfHostMemory)
	v := expectViolation(t, KindRetainFailed, func() { c.Clone() })
	if !errors.Is(v, native.OutOfHostMemory) {
		t.Errorf("violation cause = %v, want %v", v.Cause, native.OutOfHostMemory)
	}
}

func TestReleaseFailurePanics(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)

	f.fake.FailNext(native.SymReleaseContext, native.InvalidContext)
	expectViolation(t, KindReleaseFailed, func() { c.Release() })

	// The owner gave up its reference even though the runtime refused it.
	c.Release()
	if n := f.fake.Calls(native.SymReleaseContext); n != 1 {
		t.Errorf("clReleaseContext calls = %d, want 1", n)
	}
}

func TestMemCloneOutlivesOriginal(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	defer c.Release()

	m, err := c.CreateBuffer(ReadOnly, 4096)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	dup, err := m.TryClone()
	if err != nil {
		t.Fatalf("TryClone() error = %v", err)
	}
	m.Release()

	size, err := GetMemInfo(dup, MemObjectSize)
	if err != nil || size != 4096 {
		t.Errorf("MemObjectSize = %d, %v; want 4096, nil", size, err)
	}
	flags, err := GetMemInfo(dup, MemObjectFlags)
	if err != nil || flags != MemReadOnly {
		t.Errorf("MemObjectFlags = %v, %v; want READ_ONLY, nil", flags, err)
	}
	refs, err := GetMemInfo(dup, MemObjectReferenceCount)
	if err != nil || refs != 1 {
		t.Errorf("MemObjectReferenceCount = %d, %v; want 1, nil", refs, err)
	}

	dup.Release()
	if n := f.fake.Live(nativetest.KindMem); n != 0 {
		t.Errorf("live buffers = %d, want 0", n)
	}
}

func TestCreateBuffer(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	defer c.Release()

	for _, prot := range []MemProt{ReadWrite, ReadOnly, WriteOnly} {
		m, err := c.CreateBuffer(prot, 16)
		if err != nil {
			t.Fatalf("CreateBuffer(%v) error = %v", prot, err)
		}
		flags, err := GetMemInfo(m, MemObjectFlags)
		if err != nil || flags != prot.Flags() {
			t.Errorf("CreateBuffer(%v) flags = %v, %v; want %v", prot, flags, err, prot.Flags())
		}
		m.Release()
	}

	tests := []struct {
		prot MemProt
		size int
		want error
	}{
		{ReadWrite, 0, native.InvalidBufferSize},
		{ReadWrite, -1, native.InvalidBufferSize},
		{ReadWrite, 1 << 29, native.InvalidBufferSize},
		{MemProt(7), 16, native.InvalidValue},
	}
	for _, tt := range tests {
		if _, err := c.CreateBuffer(tt.prot, tt.size); !errors.Is(err, tt.want) {
			t.Errorf("CreateBuffer(%v, %d) error = %v, want %v", tt.prot, tt.size, err, tt.want)
		}
	}
}

func TestContextKeptAliveByChildren(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)

	q, err := c.CreateCommandQueue(DeviceID{raw: f.gpu.ID()}, QueueProfiling)
	if err != nil {
		t.Fatalf("CreateCommandQueue() error = %v", err)
	}
	m, err := c.CreateBuffer(ReadWrite, 64)
	if err != nil {
		t.Fatalf("CreateBuffer() error = %v", err)
	}
	c.Release()

	if n := f.fake.Live(nativetest.KindContext); n != 1 {
		t.Errorf("live contexts after Release = %d, want 1", n)
	}
	q.Release()
	m.Release()
	if n := f.fake.Live(nativetest.KindContext); n != 0 {
		t.Errorf("live contexts = %d, want 0", n)
	}
}

func TestCommandQueue(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)
	defer c.Release()
	cpu := DeviceID{raw: f.cpu.ID()}

	q, err := c.CreateCommandQueue(cpu, QueueProfiling|QueueOutOfOrderExecMode)
	if err != nil {
		t.Fatalf("CreateCommandQueue() error = %v", err)
	}
	defer q.Release()

	dev, err := GetCommandQueueInfo(q, QueueDevice)
	if err != nil || dev != cpu {
		t.Errorf("QueueDevice = %v, %v; want %v", dev, err, cpu)
	}
	props, err := GetCommandQueueInfo(q, QueueProperties)
	if err != nil || props != QueueProfiling|QueueOutOfOrderExecMode {
		t.Errorf("QueueProperties = %v, %v", props, err)
	}

	dup := q.Clone()
	refs, err := GetCommandQueueInfo(dup, QueueReferenceCount)
	if err != nil || refs != 2 {
		t.Errorf("QueueReferenceCount = %d, %v; want 2, nil", refs, err)
	}
	dup.Release()

	// The GPU only supports profiling.
	_, err = c.CreateCommandQueue(DeviceID{raw: f.gpu.ID()}, QueueOutOfOrderExecMode)
	if !errors.Is(err, native.InvalidQueueProperties) {
		t.Errorf("CreateCommandQueue(out of order) error = %v, want %v", err, native.InvalidQueueProperties)
	}
}

func TestConcurrentCloneRelease(t *testing.T) {
	f := newFixture(t)
	c := f.context(t)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				d := c.Clone()
				d.Release()
				d.Release()
			}
		}()
	}
	wg.Wait()

	if r, rel := f.fake.Calls(native.SymRetainContext), f.fake.Calls(native.SymReleaseContext); r != 400 || rel != 400 {
		t.Errorf("retain/release calls = %d/%d, want 400/400", r, rel)
	}
	c.Release()
	if n := f.fake.Live(nativetest.KindContext); n != 0 {
		t.Errorf("live contexts = %d, want 0", n)
	}
}

func TestContextNotifyAborts(t *testing.T) {
	f := newFixture(t)

	var got *Violation
	swapAbort(t, func(v *Violation) { got = v })

	c := f.context(t)
	defer c.Release()

	if n := f.fake.Notify("out of memory on device"); n != 1 {
		t.Fatalf("Notify() ran %d callbacks, want 1", n)
	}
	if got == nil || got.Kind != KindContextError || got.Detail != "out of memory on device" {
		t.Errorf("abort got %+v, want context_error violation", got)
	}
}

func TestLeakedOwnerReleased(t *testing.T) {
	f := newFixture(t)

	func() {
		c := f.context(t)
		if _, err := c.CreateBuffer(ReadWrite, 8); err != nil {
			t.Fatalf("CreateBuffer() error = %v", err)
		}
	}()

	deadline := time.Now().Add(5 * time.Second)
	for f.fake.Live(nativetest.KindContext) != 0 {
		if time.Now().After(deadline) {
			t.Fatalf("leaked context not released: %d live", f.fake.Live(nativetest.KindContext))
		}
		runtime.GC()
		time.Sleep(time.Millisecond)
	}
	if n := f.fake.Live(nativetest.KindMem); n != 0 {
		t.Errorf("live buffers = %d, want 0", n)
	}
}
