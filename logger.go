package composite

import (
	"log/slog"
	"sync/atomic"
)

var (
	silent  = slog.New(slog.DiscardHandler)
	current atomic.Pointer[slog.Logger]
)

func init() { current.Store(silent) }

// SetLogger routes composite's log output to l. Nothing is logged until it
// is called; nil silences the package again. Safe for concurrent use.
//
// Debug records describe each normalized stack and its tile schedule.
// A Warn record is emitted when layers below an image without alpha are
// dropped from a stack.
//
//	composite.SetLogger(slog.New(slog.NewTextHandler(os.Stderr,
//		&slog.HandlerOptions{Level: slog.LevelDebug})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the logger set by SetLogger.
func Logger() *slog.Logger { return current.Load() }
