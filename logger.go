package cl

import (
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/cl/internal/logging"
)

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(logging.Nop())
}

// SetLogger configures the logger for cl and the runtime it uses.
// By default, cl produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by cl:
//   - [slog.LevelDebug]: native calls (property sizes, retains, releases)
//   - [slog.LevelInfo]: runtime loading (library path)
//   - [slog.LevelWarn]: objects leaked without Release
//   - [slog.LevelError]: asynchronous context errors, right before exit
//
// Example:
//
//	cl.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	l = logging.OrNop(l)
	loggerPtr.Store(l)

	runtimeMu.RLock()
	rt := active
	runtimeMu.RUnlock()
	if rt != nil {
		propagateLogger(rt, l)
	}
}

// Logger returns the current logger used by cl.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by runtimes that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger on. Called from both SetLogger and
// SetRuntime so the runtime always has the current logger.
func propagateLogger(rt any, l *slog.Logger) {
	if ls, ok := rt.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}
