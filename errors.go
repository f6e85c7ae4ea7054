package dockerenv

import "github.com/giantswarm/dockerenv/internal/core"

// Sentinel errors for error inspection with errors.Is.
// These are immutable constants safe for use in wrapped error chain comparison.
const (
	// ErrPortNotMapped is returned by MappedPort and MappedPortIPv6 when
	// the requested container port has no host binding for the requested
	// address family.
	ErrPortNotMapped = core.ErrPortNotMapped

	// ErrUnhealthy is returned by the ForHealthcheck strategy when the
	// container's healthcheck reports unhealthy.
	ErrUnhealthy = core.ErrUnhealthy

	// ErrNoHealthcheck is returned by the ForHealthcheck strategy when the
	// container's image defines no HEALTHCHECK.
	ErrNoHealthcheck = core.ErrNoHealthcheck

	// ErrLogStreamClosed is returned by the ForLog strategy when the
	// container's log stream ends before the expected message appears,
	// typically because the container exited.
	ErrLogStreamClosed = core.ErrLogStreamClosed

	// ErrNoNetworkSettings is returned by BridgeIPAddress when the engine
	// reports no usable network settings for the container.
	ErrNoNetworkSettings = core.ErrNoNetworkSettings
)
