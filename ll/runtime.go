package ll

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/cl/internal/logging"
	"github.com/gogpu/cl/native"
)

// Runtime issues typed calls against one native.API.
type Runtime struct {
	api    native.API
	logger atomic.Pointer[slog.Logger]
}

// NewRuntime wraps api. The runtime logs nothing until SetLogger is
// called.
func NewRuntime(api native.API) *Runtime {
	rt := &Runtime{api: api}
	rt.logger.Store(logging.Nop())
	return rt
}

// SetLogger sets the logger for native calls and leaked owners.
// Pass nil to disable logging.
func (rt *Runtime) SetLogger(l *slog.Logger) {
	rt.logger.Store(logging.OrNop(l))
}

// Logger returns the current logger.
func (rt *Runtime) Logger() *slog.Logger {
	return rt.logger.Load()
}
