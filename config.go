package dockerenv

import (
	"os"

	"github.com/giantswarm/dockerenv/internal/core"
)

// clientConfig holds configuration for a Client. This unexported type
// wraps core.ClientConfig via embedding, keeping internal/core types out
// of the public API signature while avoiding field-by-field duplication.
type clientConfig struct {
	core.ClientConfig
}

// toCoreConfig returns the embedded core.ClientConfig.
func (c clientConfig) toCoreConfig() core.ClientConfig {
	return c.ClientConfig
}

// defaultClientConfig returns a clientConfig populated with all default
// values. Both NewClient and test helpers use this to avoid duplicating
// the default field assignments.
func defaultClientConfig() clientConfig {
	return clientConfig{core.ClientConfig{
		CleanupPolicy:    core.PolicyFromEnv(),
		TerminateTimeout: DefaultTerminateTimeout,
		PullLockDir:      os.TempDir(),
	}}
}
