package dockerenv

import "github.com/giantswarm/dockerenv/internal/core"

// CleanupPolicy controls what happens to containers and networks when
// their owner releases them. See the individual constant documentation.
//
// CleanupPolicy is a type alias (not a named type) so that the underlying
// [core.CleanupPolicy] methods are part of the public API:
//
//   - IsValid reports whether the value is a recognized policy.
//   - String returns the policy name (implements [fmt.Stringer]).
type CleanupPolicy = core.CleanupPolicy

const (
	// PolicyRemove force-removes a container (with its anonymous volumes)
	// when its handle is released, and removes client-created networks at
	// Close. This is the default policy.
	PolicyRemove = core.PolicyRemove

	// PolicyKeep leaves containers running and networks in place when
	// their owners are released. Useful for inspecting state after a
	// failing test.
	PolicyKeep = core.PolicyKeep
)

// CleanupPolicyEnv is the environment variable consulted for the default
// cleanup policy: "remove" (or unset) selects PolicyRemove, "keep"
// selects PolicyKeep. An unrecognized value logs a warning and falls
// back to PolicyRemove. WithCleanupPolicy overrides the environment.
const CleanupPolicyEnv = core.CleanupPolicyEnv
