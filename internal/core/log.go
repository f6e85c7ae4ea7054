package core

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the caller-supplied logger, nil when none has been set.
// Named "logger" rather than "log" to avoid shadowing the stdlib package.
var logger atomic.Pointer[slog.Logger]

// defaultLogger caches the slog.Default()-derived fallback so it is not
// rebuilt on every Logger call. SetLogger(nil) clears it, which is how a
// later slog.SetDefault change gets picked up.
var defaultLogger atomic.Pointer[slog.Logger]

// Logger returns the package-level logger: the one set via SetLogger, or
// a cached default derived from slog.Default() with the component
// attribute. Safe for concurrent use.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	if l := defaultLogger.Load(); l != nil {
		return l
	}
	l := newDefaultLogger()
	if defaultLogger.CompareAndSwap(nil, l) {
		return l
	}
	// Lost the race to cache. Use whatever is cached now, or the local
	// logger if a concurrent SetLogger just cleared the cache.
	if l2 := defaultLogger.Load(); l2 != nil {
		return l2
	}
	return l
}

// newDefaultLogger creates the default logger with the dockerenv component attribute.
func newDefaultLogger() *slog.Logger {
	return slog.Default().With("component", "dockerenv")
}

// SetLogger replaces the package-level logger. A nil l resets to the
// default, re-derived from slog.Default() on the next Logger call.
// Safe for concurrent use.
func SetLogger(l *slog.Logger) {
	logger.Store(l)
	defaultLogger.Store(nil)
}
