package dockerenv

import (
	"fmt"
	"time"
)

// requirePositive panics if v <= 0 with a descriptive message.
func requirePositive(name string, v time.Duration) {
	if v <= 0 {
		panic(fmt.Sprintf("dockerenv: %s must be greater than 0, got %v", name, v))
	}
}

// requireNonEmpty panics if s is empty with a descriptive message.
func requireNonEmpty(name, s string) {
	if s == "" {
		panic(fmt.Sprintf("dockerenv: %s must not be empty", name))
	}
}

// ClientOption configures a Client during construction via NewClient.
// Each With* function returns a ClientOption that sets a specific field.
//
// Several With* functions panic on invalid input (invalid policies, empty
// paths, non-positive durations). These panics are intentional: option
// values are typically compile-time constants or package-level variables,
// so an invalid value indicates a programmer error rather than a runtime
// condition. The pattern mirrors [regexp.MustCompile] — fail fast during
// initialization instead of returning errors that would be universally
// fatal anyway.
type ClientOption func(*clientConfig)

// WithCleanupPolicy overrides the cleanup policy read from the
// DOCKERENV_CLEANUP environment variable.
//
// Default: PolicyFromEnv (PolicyRemove when the variable is unset).
//
// Panics if p is not a recognized policy.
func WithCleanupPolicy(p CleanupPolicy) ClientOption {
	if !p.IsValid() {
		panic(fmt.Sprintf("dockerenv: invalid cleanup policy: %v", p))
	}
	return func(c *clientConfig) {
		c.CleanupPolicy = p
	}
}

// WithTerminateTimeout bounds the background removal performed by the
// drop safety net when a handle is garbage-collected without Terminate,
// and the network sweep at Close.
//
// Default: 1 minute.
//
// Panics if d <= 0.
func WithTerminateTimeout(d time.Duration) ClientOption {
	requirePositive("terminate timeout", d)
	return func(c *clientConfig) {
		c.TerminateTimeout = d
	}
}

// WithPullLockDir sets the directory holding the per-image lock files
// that serialize pulls across processes sharing one engine. All processes
// that should coordinate must use the same directory.
//
// Default: os.TempDir().
//
// Panics if dir is empty.
func WithPullLockDir(dir string) ClientOption {
	requireNonEmpty("pull lock directory", dir)
	return func(c *clientConfig) {
		c.PullLockDir = dir
	}
}
