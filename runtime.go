package cl

import (
	"sync"

	"github.com/gogpu/cl/ll"
	"github.com/gogpu/cl/native"

	// Registers the system OpenCL loader with the native registry.
	_ "github.com/gogpu/cl/native/opencl"
)

var (
	runtimeMu sync.RWMutex
	active    *ll.Runtime
)

// SetRuntime makes rt the runtime used by Platforms. Pass nil to go back
// to loading the default runtime from the native registry on next use.
// Platform and Device values keep the runtime they were found with.
func SetRuntime(rt *ll.Runtime) {
	runtimeMu.Lock()
	active = rt
	runtimeMu.Unlock()
	if rt != nil {
		propagateLogger(rt, Logger())
	}
}

// Runtime returns the active runtime, loading the highest priority
// registered native runtime on first use.
func Runtime() (*ll.Runtime, error) {
	runtimeMu.RLock()
	rt := active
	runtimeMu.RUnlock()
	if rt != nil {
		return rt, nil
	}

	runtimeMu.Lock()
	defer runtimeMu.Unlock()
	if active != nil {
		return active, nil
	}

	api, err := native.Default()
	if err != nil {
		return nil, err
	}
	active = ll.NewRuntime(api)
	propagateLogger(active, Logger())
	Logger().Info("cl: runtime selected", "runtime", describe(api))
	return active, nil
}

// MustRuntime is Runtime that panics with a *Error on failure.
func MustRuntime() *ll.Runtime {
	rt, err := Runtime()
	if err != nil {
		panic(&Error{Op: "load runtime", Err: err})
	}
	return rt
}

func describe(api native.API) string {
	if p, ok := api.(interface{ Path() string }); ok {
		return p.Path()
	}
	return "custom"
}
