package dockerenv

import (
	"log/slog"

	"github.com/giantswarm/dockerenv/internal/core"
)

// SetLogger replaces the package-level logger used by dockerenv.
// This allows applications to integrate dockerenv logging with their own
// logging infrastructure. The provided logger should already have any
// desired attributes; dockerenv will not add additional attributes.
//
// If l is nil, the logger resets to the default: slog.Default() with
// "component" attribute, re-derived on the next use and then cached.
// Call SetLogger(nil) after slog.SetDefault() to pick up changes.
//
// SetLogger is safe to call concurrently with other dockerenv operations;
// the logger is stored behind atomic pointers. For a strict happens-before
// guarantee, call SetLogger before starting goroutines that use the
// library (e.g., in TestMain before m.Run).
func SetLogger(l *slog.Logger) {
	core.SetLogger(l)
}
