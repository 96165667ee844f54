//go:build !((darwin || freebsd || linux) && (amd64 || arm64))

package opencl

import (
	"fmt"
	"runtime"

	"github.com/gogpu/cl/native"
)

// init registers a factory that always fails, so native.Default reports
// why no runtime is available instead of finding nothing.
func init() {
	native.Register(native.RuntimeOpenCL, func() (native.API, error) {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnsupported, runtime.GOOS, runtime.GOARCH)
	})
}

// Runtime is not available on this platform.
type Runtime struct{}

// Open always fails on this platform.
func Open(opts ...Option) (*Runtime, error) {
	cfg := newConfig(opts)
	cfg.logger.Debug("opencl: loader unsupported", "goos", runtime.GOOS, "goarch", runtime.GOARCH)
	return nil, fmt.Errorf("%w: %s/%s", ErrUnsupported, runtime.GOOS, runtime.GOARCH)
}
