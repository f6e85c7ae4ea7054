package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/giantswarm/dockerenv/internal/sentinel"
)

// ErrNoNetworkSettings is returned by BridgeIPAddress when the engine's
// inspect response carries no network settings, no entry for the resolved
// network, or no IP address on that entry.
const ErrNoNetworkSettings = sentinel.Error("container has no usable network settings")

// Container is the handle to a container this library started. It is
// created only after the container has been created, started, and has
// passed all of its image's wait strategies.
//
// A Container is owned by exactly one logical caller; its methods must
// not be called concurrently. Teardown happens exactly once, through
// whichever path fires first: an explicit Terminate, or the garbage
// collection safety net for handles that were dropped without one.
type Container struct {
	id    string
	image RunnableImage
	api   EngineAPI
	log   *slog.Logger

	// release carries everything teardown needs, split out so the
	// safety net registered with runtime.AddCleanup does not keep the
	// Container itself reachable.
	release *releaseState
}

// releaseState is the teardown half of a Container. The released flag is
// the single release-once gate shared by Terminate and the safety net.
type releaseState struct {
	id      string
	api     EngineAPI
	policy  CleanupPolicy
	timeout time.Duration
	log     *slog.Logger

	released atomic.Bool
}

// newContainer constructs the handle. The teardown safety net is armed
// separately, once the container has passed its wait strategies: a
// container that never became ready is deliberately left behind for
// inspection, not swept up by garbage collection.
func newContainer(id string, image RunnableImage, api EngineAPI, cfg ClientConfig) *Container {
	log := Logger().With("container", shortID(id))
	return &Container{
		id:    id,
		image: image,
		api:   api,
		log:   log,
		release: &releaseState{
			id:      id,
			api:     api,
			policy:  cfg.CleanupPolicy,
			timeout: cfg.TerminateTimeout,
			log:     log,
		},
	}
}

// armSafetyNet registers the teardown safety net for forgotten handles:
// when the Container becomes unreachable without Terminate having run,
// the runtime invokes reapForgotten on a background goroutine. Terminate
// is still the supported path; relying on garbage collection makes
// teardown timing nondeterministic.
func (c *Container) armSafetyNet() {
	runtime.AddCleanup(c, reapForgotten, c.release)
}

// shortID trims an engine container id to the usual 12-character display form.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// reapForgotten is the teardown safety net. It runs on the runtime's
// cleanup goroutine, which has no caller context to inherit, so it is
// the one place that bridges into blocking teardown I/O from a
// synchronous release point: a fresh background context bounded by the
// configured terminate timeout. Normal API calls never pay this cost.
func reapForgotten(st *releaseState) {
	if !st.released.CompareAndSwap(false, true) {
		return
	}
	if st.policy == PolicyKeep {
		return
	}

	st.log.Warn("container handle dropped without Terminate; removing via safety net")

	ctx, cancel := context.WithTimeout(context.Background(), st.timeout)
	defer cancel()
	if err := st.api.RemoveContainer(ctx, st.id, true, true); err != nil {
		st.log.Warn("safety-net removal failed", "error", err)
	}
}

// ID returns the engine's container id.
func (c *Container) ID() string { return c.id }

// Image returns the RunnableImage snapshot this container was created from.
func (c *Container) Image() RunnableImage { return c.image }

// Start starts the container. Useful after an explicit Stop; Run has
// already started it once.
func (c *Container) Start(ctx context.Context) error {
	if err := c.api.StartContainer(ctx, c.id); err != nil {
		return fmt.Errorf("start container %s: %w", shortID(c.id), err)
	}
	return nil
}

// Stop stops the container gracefully without releasing the handle.
// The configured cleanup still applies when the handle is terminated or
// dropped later.
func (c *Container) Stop(ctx context.Context) error {
	c.log.Debug("stopping container")
	if err := c.api.StopContainer(ctx, c.id); err != nil {
		return fmt.Errorf("stop container %s: %w", shortID(c.id), err)
	}
	return nil
}

// Inspect returns the engine's current view of the container.
// Implements StrategyTarget.
func (c *Container) Inspect(ctx context.Context) (container.InspectResponse, error) {
	resp, err := c.api.InspectContainer(ctx, c.id)
	if err != nil {
		return container.InspectResponse{}, fmt.Errorf("inspect container %s: %w", shortID(c.id), err)
	}
	return resp, nil
}

// Logs opens a fresh follow-mode log stream from the beginning of the
// container's output. Implements StrategyTarget.
func (c *Container) Logs(ctx context.Context, stderr bool) (io.ReadCloser, error) {
	return c.api.ContainerLogs(ctx, c.id, LogsRequest{
		Follow: true,
		Stderr: stderr,
		Tail:   "all",
	})
}

// MappedPort returns the host port publishing the given container TCP
// port on the host's IPv4 interfaces. It re-inspects the container, so it
// is valid only while the container is running. A port that was never
// exposed or mapped yields ErrPortNotMapped.
func (c *Container) MappedPort(ctx context.Context, internal int) (int, error) {
	return c.mappedPort(ctx, internal, false)
}

// MappedPortIPv6 is MappedPort for the host's IPv6 interfaces.
func (c *Container) MappedPortIPv6(ctx context.Context, internal int) (int, error) {
	return c.mappedPort(ctx, internal, true)
}

func (c *Container) mappedPort(ctx context.Context, internal int, ipv6 bool) (int, error) {
	resp, err := c.Inspect(ctx)
	if err != nil {
		return 0, err
	}
	port, err := resolveHostPort(resp, internal, ipv6)
	if err != nil {
		return 0, fmt.Errorf("container %s: %w", shortID(c.id), err)
	}
	return port, nil
}

// BridgeIPAddress returns the container's IP address on its effective
// network: the image's explicit network if one was set, otherwise the
// engine-reported default bridge. Missing or malformed network settings
// are fatal.
func (c *Container) BridgeIPAddress(ctx context.Context) (net.IP, error) {
	resp, err := c.Inspect(ctx)
	if err != nil {
		return nil, err
	}
	settings := resp.NetworkSettings
	if settings == nil || len(settings.Networks) == 0 {
		return nil, fmt.Errorf("container %s: %w", shortID(c.id), ErrNoNetworkSettings)
	}

	name := c.image.Network()
	if name == "" {
		name = settings.Bridge
	}
	if name == "" {
		return nil, fmt.Errorf("container %s: no bridge network name: %w", shortID(c.id), ErrNoNetworkSettings)
	}

	endpoint, ok := settings.Networks[name]
	if !ok || endpoint == nil || endpoint.IPAddress == "" {
		return nil, fmt.Errorf("container %s: network %q: %w", shortID(c.id), name, ErrNoNetworkSettings)
	}
	ip := net.ParseIP(endpoint.IPAddress)
	if ip == nil {
		return nil, fmt.Errorf("container %s: network %q has malformed IP %q: %w",
			shortID(c.id), name, endpoint.IPAddress, ErrNoNetworkSettings)
	}
	return ip, nil
}

// Terminate releases the handle exactly once. Under PolicyRemove the
// container is force-removed together with its anonymous volumes; under
// PolicyKeep it is left running. Subsequent calls, and the safety net
// after a successful call, are no-ops returning nil.
//
// Returning an error does not re-arm the release: a failed removal is
// reported once and the handle stays spent, so teardown never runs twice
// against the engine.
func (c *Container) Terminate(ctx context.Context) error {
	if !c.release.released.CompareAndSwap(false, true) {
		return nil
	}
	if c.release.policy == PolicyKeep {
		c.log.Debug("keeping container per cleanup policy")
		return nil
	}

	c.log.Debug("removing container")
	if err := c.api.RemoveContainer(ctx, c.id, true, true); err != nil {
		return fmt.Errorf("remove container %s: %w", shortID(c.id), err)
	}
	return nil
}

// waitUntilReady evaluates the image's wait strategies strictly in
// declared order. The first failure aborts with that strategy's error.
func (c *Container) waitUntilReady(ctx context.Context) error {
	c.log.Debug("waiting for container to be ready")
	for _, strategy := range c.image.WaitStrategies() {
		if err := strategy.WaitUntilReady(ctx, c); err != nil {
			return err
		}
	}
	c.log.Debug("container is ready")
	return nil
}
