package dockerenv

import "time"

// ConfigSnapshot holds a copy of clientConfig fields for test assertions.
// Exported only via export_test.go so that the _test package can verify
// option closures actually mutate the config without accessing internals.
type ConfigSnapshot struct {
	CleanupPolicy    CleanupPolicy
	TerminateTimeout time.Duration
	PullLockDir      string
}

// ApplyOptionsForTesting creates a default clientConfig, applies the given
// options, and returns a ConfigSnapshot of the result. This tests the
// option closures directly without connecting to an engine.
func ApplyOptionsForTesting(opts ...ClientOption) ConfigSnapshot {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return ConfigSnapshot{
		CleanupPolicy:    cfg.CleanupPolicy,
		TerminateTimeout: cfg.TerminateTimeout,
		PullLockDir:      cfg.PullLockDir,
	}
}
