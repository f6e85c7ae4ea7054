package core

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
)

// CleanupPolicy controls what happens to resources created by a Client
// when their owner is done with them: containers at Container.Terminate
// (or the drop safety net) and networks at Client.Close.
type CleanupPolicy int

const (
	// PolicyRemove tears everything down: containers are force-removed
	// together with their anonymous volumes, and networks created by the
	// client are deleted when it closes. This is the default policy.
	PolicyRemove CleanupPolicy = iota

	// PolicyKeep leaves containers running and networks in place after
	// the test finishes. Useful for post-mortem inspection of a failing
	// test; the resources must then be cleaned up by hand.
	PolicyKeep
)

// CleanupPolicyEnv is the process-wide environment variable consulted for
// the default cleanup policy: "remove" or "keep" (case-insensitive).
const CleanupPolicyEnv = "DOCKERENV_CLEANUP"

// IsValid reports whether p is a recognized CleanupPolicy value.
func (p CleanupPolicy) IsValid() bool {
	switch p {
	case PolicyRemove, PolicyKeep:
		return true
	default:
		return false
	}
}

// String returns the name of the policy.
func (p CleanupPolicy) String() string {
	switch p {
	case PolicyRemove:
		return "PolicyRemove"
	case PolicyKeep:
		return "PolicyKeep"
	default:
		return fmt.Sprintf("CleanupPolicy(%d)", int(p))
	}
}

// PolicyFromEnv reads the cleanup policy from the DOCKERENV_CLEANUP
// environment variable. An empty or unset variable yields PolicyRemove.
// Unrecognized values also yield PolicyRemove, with a warning, so a typo
// in CI configuration degrades to the safe default instead of leaking
// containers silently.
func PolicyFromEnv() CleanupPolicy {
	switch v := strings.ToLower(os.Getenv(CleanupPolicyEnv)); v {
	case "", "remove":
		return PolicyRemove
	case "keep":
		return PolicyKeep
	default:
		Logger().Warn("unrecognized cleanup policy, defaulting to remove",
			"env", CleanupPolicyEnv, "value", v)
		return PolicyRemove
	}
}

// ClientConfig holds configuration for a Client. All fields are immutable
// after construction via NewClient.
type ClientConfig struct {
	// CleanupPolicy gates container teardown and the network sweep at
	// Client.Close. Default: PolicyFromEnv().
	CleanupPolicy CleanupPolicy

	// TerminateTimeout bounds the background removal performed by the
	// teardown safety net when a handle is dropped without an explicit
	// Terminate, and the network sweep at Close. Explicit Terminate calls
	// are bounded by the caller's context instead. Default: 1 minute.
	TerminateTimeout time.Duration

	// PullLockDir is the directory holding the per-image lock files that
	// serialize pulls across processes sharing one engine. Concurrent
	// `go test` invocations pulling the same image would otherwise race
	// the engine's layer download. Default: os.TempDir().
	PullLockDir string
}

// Validate checks all ClientConfig invariants and returns an error
// describing every violation found, joined with errors.Join so callers
// can fix all problems in one pass.
//
// Validate is called by NewClient, which panics on error: invalid
// configuration is a programmer error, caught at construction time.
func (c ClientConfig) Validate() error {
	var errs []error

	if !c.CleanupPolicy.IsValid() {
		errs = append(errs, fmt.Errorf("invalid cleanup policy: %v", c.CleanupPolicy))
	}
	if c.TerminateTimeout <= 0 {
		errs = append(errs, fmt.Errorf("terminate timeout must be greater than 0, got %s", c.TerminateTimeout))
	}
	if c.PullLockDir == "" {
		errs = append(errs, errors.New("pull lock directory must not be empty"))
	}

	return errors.Join(errs...)
}
