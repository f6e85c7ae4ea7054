package dockerenv

import "time"

// Default configuration values for NewClient.
// These constants are exported so callers can reference the defaults
// when building custom configurations relative to them (e.g.,
// 2 * DefaultTerminateTimeout).
const (
	// DefaultTerminateTimeout bounds the background container removal
	// performed by the drop safety net and the network sweep at Close.
	// Explicit Terminate calls are bounded by the caller's context instead.
	DefaultTerminateTimeout = time.Minute
)
