//go:build (darwin || freebsd || linux) && (amd64 || arm64)

package opencl

import (
	"testing"
	"unsafe"

	"github.com/gogpu/cl/native"
	"github.com/gogpu/cl/native/nativetest"
)

// fakeLoader returns a Runtime whose entry points are served by a
// nativetest runtime with one device.
func fakeLoader(t *testing.T) (*Runtime, *nativetest.Runtime, native.DeviceID) {
	t.Helper()

	fake := nativetest.New()
	d := fake.AddPlatform("P").AddDevice(nativetest.DeviceConfig{})

	r := newRuntime(0, "nativetest", newConfig(nil).logger)
	r.fn = functions{
		createContext: func(properties *native.ContextProperty, numDevices uint32, devices *native.DeviceID, _, _ uintptr, errcode *native.Status) native.Context {
			return fake.CreateContext(properties, numDevices, devices, nil, errcode)
		},
		retainContext:       fake.RetainContext,
		releaseContext:      fake.ReleaseContext,
		getContextInfo:      fake.GetContextInfo,
		createCommandQueue:  fake.CreateCommandQueue,
		retainCommandQueue:  fake.RetainCommandQueue,
		releaseCommandQueue: fake.ReleaseCommandQueue,
		createBuffer:        fake.CreateBuffer,
		retainMemObject:     fake.RetainMemObject,
		releaseMemObject:    fake.ReleaseMemObject,
	}
	return r, fake, d.ID()
}

func notifierCount() int {
	notifiers.mu.Lock()
	defer notifiers.mu.Unlock()
	return len(notifiers.fns)
}

func TestNotifierTable(t *testing.T) {
	var got string
	token := notifiers.add(func(errinfo string, _ []byte) { got = errinfo })

	if notifiers.get(token) == nil {
		t.Fatal("get() = nil after add")
	}
	other := notifiers.add(func(string, []byte) {})
	if other == token {
		t.Fatal("add() reused a token")
	}
	notifiers.remove(other)
	if notifiers.get(other) != nil {
		t.Error("get() != nil after remove")
	}

	msg := []byte("CL_OUT_OF_RESOURCES\x00")
	private := []byte{1, 2, 3}
	contextNotify(
		uintptr(unsafe.Pointer(&msg[0])),
		uintptr(unsafe.Pointer(&private[0])),
		uintptr(len(private)),
		token,
	)
	if got != "CL_OUT_OF_RESOURCES" {
		t.Errorf("callback errinfo = %q, want %q", got, "CL_OUT_OF_RESOURCES")
	}

	notifiers.remove(token)
	got = ""
	contextNotify(uintptr(unsafe.Pointer(&msg[0])), 0, 0, token)
	if got != "" {
		t.Error("callback ran after remove")
	}
}

func TestCallbackDroppedWithLastChild(t *testing.T) {
	r, fake, device := fakeLoader(t)
	before := notifierCount()
	notify := func(string, []byte) {}

	for range 5 {
		devices := []native.DeviceID{device}
		var status native.Status
		ctx := r.CreateContext(nil, 1, &devices[0], notify, &status)
		if status != native.Success {
			t.Fatalf("CreateContext = %v", status)
		}
		mem := r.CreateBuffer(ctx, native.MemReadWrite, 64, nil, &status)
		if status != native.Success {
			t.Fatalf("CreateBuffer = %v", status)
		}
		q := r.CreateCommandQueue(ctx, device, 0, &status)
		if status != native.Success {
			t.Fatalf("CreateCommandQueue = %v", status)
		}
		if s := r.RetainMemObject(mem); s != native.Success {
			t.Fatalf("RetainMemObject = %v", s)
		}

		r.ReleaseContext(ctx)
		r.ReleaseMemObject(mem)
		r.ReleaseCommandQueue(q)
		if got := notifierCount(); got != before+1 {
			t.Fatalf("callbacks = %d while a buffer holds the context, want %d", got, before+1)
		}
		r.ReleaseMemObject(mem)
	}

	if n := fake.Live(nativetest.KindContext); n != 0 {
		t.Errorf("live contexts = %d, want 0", n)
	}
	if got := notifierCount(); got != before {
		t.Errorf("callbacks = %d after every context was destroyed, want %d", got, before)
	}
	if len(r.contexts) != 0 || len(r.children) != 0 {
		t.Errorf("tracked contexts = %d, children = %d; want none", len(r.contexts), len(r.children))
	}
}

func TestCallbackKeptByRetainedContext(t *testing.T) {
	r, _, device := fakeLoader(t)
	before := notifierCount()

	devices := []native.DeviceID{device}
	var status native.Status
	ctx := r.CreateContext(nil, 1, &devices[0], func(string, []byte) {}, &status)
	if status != native.Success {
		t.Fatalf("CreateContext = %v", status)
	}
	r.RetainContext(ctx)

	r.ReleaseContext(ctx)
	if got := notifierCount(); got != before+1 {
		t.Errorf("callbacks = %d with one reference left, want %d", got, before+1)
	}
	r.ReleaseContext(ctx)
	if got := notifierCount(); got != before {
		t.Errorf("callbacks = %d after last release, want %d", got, before)
	}
}

func TestContextWithoutNotifyUntracked(t *testing.T) {
	r, _, device := fakeLoader(t)

	devices := []native.DeviceID{device}
	var status native.Status
	ctx := r.CreateContext(nil, 1, &devices[0], nil, &status)
	if status != native.Success {
		t.Fatalf("CreateContext = %v", status)
	}
	mem := r.CreateBuffer(ctx, native.MemReadWrite, 64, nil, &status)
	if status != native.Success {
		t.Fatalf("CreateBuffer = %v", status)
	}
	if len(r.contexts) != 0 || len(r.children) != 0 {
		t.Errorf("tracked contexts = %d, children = %d; want none", len(r.contexts), len(r.children))
	}
	r.ReleaseMemObject(mem)
	r.ReleaseContext(ctx)
}
