package opencl

import (
	"log/slog"
	"os"
	"runtime"

	"github.com/gogpu/cl/internal/logging"
)

// EnvLibrary names the environment variable that overrides the library
// search.
const EnvLibrary = "GOCL_OPENCL_LIBRARY"

// Option configures Open.
type Option func(*config)

type config struct {
	path   string
	logger *slog.Logger
}

// WithLibraryPath opens exactly path instead of searching.
func WithLibraryPath(path string) Option {
	return func(c *config) {
		c.path = path
	}
}

// WithLogger sets the logger for library loading.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

func newConfig(opts []Option) config {
	c := config{path: os.Getenv(EnvLibrary)}
	for _, opt := range opts {
		opt(&c)
	}
	c.logger = logging.OrNop(c.logger)
	return c
}

// candidates returns the library names to try, in order.
func (c config) candidates() []string {
	if c.path != "" {
		return []string{c.path}
	}
	return libraryNames
}

var libraryNames = func() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/System/Library/Frameworks/OpenCL.framework/OpenCL", "libOpenCL.dylib"}
	default:
		return []string{"libOpenCL.so.1", "libOpenCL.so"}
	}
}()
