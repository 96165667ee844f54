//go:build (darwin || freebsd || linux) && (amd64 || arm64)

package opencl

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"golang.org/x/sys/unix"

	"github.com/gogpu/cl/native"
)

func init() {
	native.Register(native.RuntimeOpenCL, loadDefault)
}

var (
	defaultOnce sync.Once
	defaultAPI  *Runtime
	defaultErr  error
)

// loadDefault opens the library once per process for the registry.
func loadDefault() (native.API, error) {
	defaultOnce.Do(func() {
		defaultAPI, defaultErr = Open()
	})
	if defaultErr != nil {
		return nil, defaultErr
	}
	return defaultAPI, nil
}

// functions holds the bound entry points. Signatures follow CL/cl.h.
type functions struct {
	getPlatformIDs      func(numEntries uint32, platforms *native.PlatformID, numPlatforms *uint32) native.Status
	getPlatformInfo     func(platform native.PlatformID, param native.PlatformInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status
	getDeviceIDs        func(platform native.PlatformID, deviceType uint64, numEntries uint32, devices *native.DeviceID, numDevices *uint32) native.Status
	getDeviceInfo       func(device native.DeviceID, param native.DeviceInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status
	createContext       func(properties *native.ContextProperty, numDevices uint32, devices *native.DeviceID, notify uintptr, userData uintptr, errcode *native.Status) native.Context
	retainContext       func(context native.Context) native.Status
	releaseContext      func(context native.Context) native.Status
	getContextInfo      func(context native.Context, param native.ContextInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status
	createCommandQueue  func(context native.Context, device native.DeviceID, properties uint64, errcode *native.Status) native.CommandQueue
	retainCommandQueue  func(queue native.CommandQueue) native.Status
	releaseCommandQueue func(queue native.CommandQueue) native.Status
	getCommandQueueInfo func(queue native.CommandQueue, param native.CommandQueueInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status
	createBuffer        func(context native.Context, flags uint64, size uintptr, hostPtr unsafe.Pointer, errcode *native.Status) native.Mem
	retainMemObject     func(mem native.Mem) native.Status
	releaseMemObject    func(mem native.Mem) native.Status
	getMemObjectInfo    func(mem native.Mem, param native.MemInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status
}

// Runtime is the system OpenCL library bound through purego.
//
// A context created with a notify function keeps its callback token
// until the context is destroyed. Destruction is tracked from the calls
// made through r: the context's own references plus every queue and
// buffer created on it. Objects whose references are changed behind
// r's back keep their token alive.
type Runtime struct {
	fn       functions
	lib      uintptr
	path     string
	logger   *slog.Logger
	callback uintptr

	mu       sync.Mutex
	contexts map[native.Context]*contextLife
	children map[childKey]*childLife
}

// contextLife counts what keeps a context alive: its own references and
// its live queues and buffers.
type contextLife struct {
	token uintptr
	refs  int
}

type childKind uint8

const (
	childQueue childKind = iota + 1
	childMem
)

type childKey struct {
	kind   childKind
	handle uintptr
}

type childLife struct {
	context native.Context
	refs    int
}

var _ native.API = (*Runtime)(nil)

// Open loads the OpenCL library and binds every entry point.
func Open(opts ...Option) (*Runtime, error) {
	cfg := newConfig(opts)

	lib, path, err := dlopen(cfg.candidates())
	if err != nil {
		cfg.logger.Debug("opencl: library not loaded", "error", err)
		return nil, err
	}

	r := newRuntime(lib, path, cfg.logger)
	r.callback = notifyCallback()
	if err := r.bind(); err != nil {
		_ = purego.Dlclose(lib)
		return nil, err
	}

	cfg.logger.Info("opencl: runtime loaded", "path", path)
	return r, nil
}

func newRuntime(lib uintptr, path string, logger *slog.Logger) *Runtime {
	return &Runtime{
		lib:      lib,
		path:     path,
		logger:   logger,
		contexts: make(map[native.Context]*contextLife),
		children: make(map[childKey]*childLife),
	}
}

func dlopen(candidates []string) (uintptr, string, error) {
	var errs []error
	for _, name := range candidates {
		lib, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			return lib, name, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", name, err))
	}
	return 0, "", fmt.Errorf("%w: %w", ErrLibraryNotFound, errors.Join(errs...))
}

// bind resolves every symbol before registering any, so a missing entry
// point is reported as an error instead of a panic from RegisterFunc.
func (r *Runtime) bind() error {
	table := []struct {
		name string
		fptr any
	}{
		{native.SymGetPlatformIDs, &r.fn.getPlatformIDs},
		{native.SymGetPlatformInfo, &r.fn.getPlatformInfo},
		{native.SymGetDeviceIDs, &r.fn.getDeviceIDs},
		{native.SymGetDeviceInfo, &r.fn.getDeviceInfo},
		{native.SymCreateContext, &r.fn.createContext},
		{native.SymRetainContext, &r.fn.retainContext},
		{native.SymReleaseContext, &r.fn.releaseContext},
		{native.SymGetContextInfo, &r.fn.getContextInfo},
		{native.SymCreateCommandQueue, &r.fn.createCommandQueue},
		{native.SymRetainCommandQueue, &r.fn.retainCommandQueue},
		{native.SymReleaseCommandQueue, &r.fn.releaseCommandQueue},
		{native.SymGetCommandQueueInfo, &r.fn.getCommandQueueInfo},
		{native.SymCreateBuffer, &r.fn.createBuffer},
		{native.SymRetainMemObject, &r.fn.retainMemObject},
		{native.SymReleaseMemObject, &r.fn.releaseMemObject},
		{native.SymGetMemObjectInfo, &r.fn.getMemObjectInfo},
	}

	addrs := make([]uintptr, len(table))
	var missing []string
	for i, sym := range table {
		addr, err := purego.Dlsym(r.lib, sym.name)
		if err != nil || addr == 0 {
			missing = append(missing, sym.name)
			continue
		}
		addrs[i] = addr
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w in %s: %s", ErrSymbolNotFound, r.path, strings.Join(missing, ", "))
	}

	for i, sym := range table {
		purego.RegisterFunc(sym.fptr, addrs[i])
	}
	return nil
}

// Path returns the file the library was loaded from.
func (r *Runtime) Path() string {
	return r.path
}

// Close unloads the library. Objects created through r must be released
// first.
func (r *Runtime) Close() error {
	return purego.Dlclose(r.lib)
}

// GetPlatformIDs implements native.API.
func (r *Runtime) GetPlatformIDs(numEntries uint32, platforms *native.PlatformID, numPlatforms *uint32) native.Status {
	return r.fn.getPlatformIDs(numEntries, platforms, numPlatforms)
}

// GetPlatformInfo implements native.API.
func (r *Runtime) GetPlatformInfo(platform native.PlatformID, param native.PlatformInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	return r.fn.getPlatformInfo(platform, param, size, value, sizeRet)
}

// GetDeviceIDs implements native.API.
func (r *Runtime) GetDeviceIDs(platform native.PlatformID, deviceType uint64, numEntries uint32, devices *native.DeviceID, numDevices *uint32) native.Status {
	return r.fn.getDeviceIDs(platform, deviceType, numEntries, devices, numDevices)
}

// GetDeviceInfo implements native.API.
func (r *Runtime) GetDeviceInfo(device native.DeviceID, param native.DeviceInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	return r.fn.getDeviceInfo(device, param, size, value, sizeRet)
}

// CreateContext implements native.API. A non-nil notify is reached
// through a single process-wide purego callback keyed by user_data.
func (r *Runtime) CreateContext(properties *native.ContextProperty, numDevices uint32, devices *native.DeviceID, notify native.ContextNotify, errcode *native.Status) native.Context {
	var status native.Status
	if errcode == nil {
		errcode = &status
	}
	if notify == nil {
		return r.fn.createContext(properties, numDevices, devices, 0, 0, errcode)
	}

	token := notifiers.add(notify)
	ctx := r.fn.createContext(properties, numDevices, devices, r.callback, token, errcode)
	if *errcode != native.Success || ctx == 0 {
		notifiers.remove(token)
		return ctx
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if stale, ok := r.contexts[ctx]; ok {
		// The driver reused the address of a context destroyed outside r.
		r.logger.Debug("opencl: dropping callback of reused context", "handle", fmt.Sprintf("%#x", uintptr(ctx)))
		notifiers.remove(stale.token)
	}
	r.contexts[ctx] = &contextLife{token: token, refs: 1}
	return ctx
}

// RetainContext implements native.API.
func (r *Runtime) RetainContext(context native.Context) native.Status {
	status := r.fn.retainContext(context)
	if status == native.Success {
		r.mu.Lock()
		if l, ok := r.contexts[context]; ok {
			l.refs++
		}
		r.mu.Unlock()
	}
	return status
}

// ReleaseContext implements native.API. The context's callback is
// dropped once neither owners nor children hold it.
func (r *Runtime) ReleaseContext(context native.Context) native.Status {
	status := r.fn.releaseContext(context)
	if status == native.Success {
		r.mu.Lock()
		r.unrefContext(context)
		r.mu.Unlock()
	}
	return status
}

// unrefContext drops one reference of a tracked context. Callers hold r.mu.
func (r *Runtime) unrefContext(context native.Context) {
	l, ok := r.contexts[context]
	if !ok {
		return
	}
	l.refs--
	if l.refs > 0 {
		return
	}
	delete(r.contexts, context)
	notifiers.remove(l.token)
}

// addChild records a queue or buffer holding an implicit reference on a
// tracked context.
func (r *Runtime) addChild(key childKey, context native.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.contexts[context]
	if !ok {
		return
	}
	l.refs++
	r.children[key] = &childLife{context: context, refs: 1}
}

func (r *Runtime) retainChild(key childKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c, ok := r.children[key]; ok {
		c.refs++
	}
}

func (r *Runtime) releaseChild(key childKey) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.children[key]
	if !ok {
		return
	}
	c.refs--
	if c.refs > 0 {
		return
	}
	delete(r.children, key)
	r.unrefContext(c.context)
}

// GetContextInfo implements native.API.
func (r *Runtime) GetContextInfo(context native.Context, param native.ContextInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	return r.fn.getContextInfo(context, param, size, value, sizeRet)
}

// CreateCommandQueue implements native.API.
func (r *Runtime) CreateCommandQueue(context native.Context, device native.DeviceID, properties uint64, errcode *native.Status) native.CommandQueue {
	var status native.Status
	if errcode == nil {
		errcode = &status
	}
	q := r.fn.createCommandQueue(context, device, properties, errcode)
	if *errcode == native.Success && q != 0 {
		r.addChild(childKey{childQueue, uintptr(q)}, context)
	}
	return q
}

// RetainCommandQueue implements native.API.
func (r *Runtime) RetainCommandQueue(queue native.CommandQueue) native.Status {
	status := r.fn.retainCommandQueue(queue)
	if status == native.Success {
		r.retainChild(childKey{childQueue, uintptr(queue)})
	}
	return status
}

// ReleaseCommandQueue implements native.API.
func (r *Runtime) ReleaseCommandQueue(queue native.CommandQueue) native.Status {
	status := r.fn.releaseCommandQueue(queue)
	if status == native.Success {
		r.releaseChild(childKey{childQueue, uintptr(queue)})
	}
	return status
}

// GetCommandQueueInfo implements native.API.
func (r *Runtime) GetCommandQueueInfo(queue native.CommandQueue, param native.CommandQueueInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	return r.fn.getCommandQueueInfo(queue, param, size, value, sizeRet)
}

// CreateBuffer implements native.API.
func (r *Runtime) CreateBuffer(context native.Context, flags uint64, size uintptr, hostPtr unsafe.Pointer, errcode *native.Status) native.Mem {
	var status native.Status
	if errcode == nil {
		errcode = &status
	}
	m := r.fn.createBuffer(context, flags, size, hostPtr, errcode)
	if *errcode == native.Success && m != 0 {
		r.addChild(childKey{childMem, uintptr(m)}, context)
	}
	return m
}

// RetainMemObject implements native.API.
func (r *Runtime) RetainMemObject(mem native.Mem) native.Status {
	status := r.fn.retainMemObject(mem)
	if status == native.Success {
		r.retainChild(childKey{childMem, uintptr(mem)})
	}
	return status
}

// ReleaseMemObject implements native.API.
func (r *Runtime) ReleaseMemObject(mem native.Mem) native.Status {
	status := r.fn.releaseMemObject(mem)
	if status == native.Success {
		r.releaseChild(childKey{childMem, uintptr(mem)})
	}
	return status
}

// GetMemObjectInfo implements native.API.
func (r *Runtime) GetMemObjectInfo(mem native.Mem, param native.MemInfo, size uintptr, value unsafe.Pointer, sizeRet *uintptr) native.Status {
	return r.fn.getMemObjectInfo(mem, param, size, value, sizeRet)
}

// notifierTable maps callback tokens to Go notify functions. purego
// callbacks are a limited process-wide resource, so every context shares
// one and is told apart by its user_data token.
type notifierTable struct {
	mu   sync.Mutex
	next uintptr
	fns  map[uintptr]native.ContextNotify
}

var notifiers = &notifierTable{fns: make(map[uintptr]native.ContextNotify)}

func (t *notifierTable) add(fn native.ContextNotify) uintptr {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next++
	t.fns[t.next] = fn
	return t.next
}

func (t *notifierTable) remove(token uintptr) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.fns, token)
}

func (t *notifierTable) get(token uintptr) native.ContextNotify {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fns[token]
}

var (
	callbackOnce sync.Once
	callbackPtr  uintptr
)

func notifyCallback() uintptr {
	callbackOnce.Do(func() {
		callbackPtr = purego.NewCallback(contextNotify)
	})
	return callbackPtr
}

// contextNotify is the C pfn_notify:
// void (*)(const char *errinfo, const void *private_info, size_t cb, void *user_data).
func contextNotify(errinfo, privateInfo, cb, userData uintptr) uintptr {
	fn := notifiers.get(userData)
	if fn == nil {
		return 0
	}

	var msg string
	if errinfo != 0 {
		msg = unix.BytePtrToString((*byte)(unsafe.Pointer(errinfo))) //nolint:govet // valid for the duration of the callback
	}
	var private []byte
	if privateInfo != 0 && cb > 0 {
		private = append([]byte(nil), unsafe.Slice((*byte)(unsafe.Pointer(privateInfo)), cb)...) //nolint:govet // valid for the duration of the callback
	}
	fn(msg, private)
	return 0
}
