package vpath

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler discards every record. Enabled reports false so callers skip
// building attributes altogether.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by vpath and its sub-packages.
// By default nothing is logged. Passing nil restores the silent default.
// SetLogger is safe for concurrent use.
//
// Levels used:
//   - [slog.LevelDebug]: flattening diagnostics (recursion limit reached,
//     non-finite control points, per-path point counts)
//   - [slog.LevelWarn]: adapter problems that were skipped rather than
//     reported (missing glyphs in a shaped run)
//
// Example:
//
//	vpath.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages call it so they share
// one configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
