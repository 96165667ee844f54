package native

import (
	"errors"
	"fmt"
	"sync"
)

// RuntimeOpenCL is the registry name of the dynamically loaded system
// OpenCL runtime (package native/opencl).
const RuntimeOpenCL = "opencl"

var (
	// ErrNoRuntime is returned when no registered runtime could be loaded.
	ErrNoRuntime = errors.New("native: no OpenCL runtime available")

	// ErrNotRegistered is returned by Get for an unknown runtime name.
	ErrNotRegistered = errors.New("native: runtime not registered")
)

// Factory loads a runtime. It returns an error when the runtime is not
// usable on this machine (library missing, symbols missing, unsupported
// platform).
type Factory func() (API, error)

// registry holds registered runtimes.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for runtime selection (first loadable wins).
	runtimePriority = []string{RuntimeOpenCL}
)

// Register registers a runtime factory with the given name.
// This is typically called from init() functions in runtime packages.
// If a runtime with the same name is already registered, it will be replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a runtime from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := factories[name]
	return f, ok
}

// Available returns a list of registered runtime names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a runtime with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get loads the runtime registered under name.
func Get(name string) (API, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotRegistered, name)
	}
	return factory()
}

// Default loads the best available runtime based on priority, then any
// other registered runtime. The errors of every failed attempt are joined
// into the returned error.
func Default() (API, error) {
	registryMu.RLock()
	ordered := make([]string, 0, len(factories))
	seen := make(map[string]bool, len(factories))
	for _, name := range runtimePriority {
		if _, ok := factories[name]; ok {
			ordered = append(ordered, name)
			seen[name] = true
		}
	}
	for name := range factories {
		if !seen[name] {
			ordered = append(ordered, name)
		}
	}
	snapshot := make([]Factory, len(ordered))
	for i, name := range ordered {
		snapshot[i] = factories[name]
	}
	registryMu.RUnlock()

	errs := []error{ErrNoRuntime}
	for i, factory := range snapshot {
		api, err := factory()
		if err == nil && api != nil {
			return api, nil
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ordered[i], err))
		}
	}
	return nil, errors.Join(errs...)
}

// MustDefault returns the default runtime or panics.
func MustDefault() API {
	api, err := Default()
	if err != nil {
		panic(err)
	}
	return api
}
