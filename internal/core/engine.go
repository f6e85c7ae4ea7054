package core

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
)

// LogsRequest selects which log stream to open and how.
// Exactly one of stdout or stderr is streamed per request: Stderr false
// selects stdout. Follow keeps the stream open while the container runs;
// Tail uses the Docker tail syntax ("all" or a line count).
type LogsRequest struct {
	Follow bool
	Stderr bool
	Tail   string
}

// EngineAPI is the subset of the container engine's control API consumed
// by the Client, the wait strategies, the network registry, and the
// Container handle. The production implementation lives in
// internal/engine and wraps the Docker SDK client; tests substitute fakes.
//
// Implementations must return engine errors unwrapped (or wrapped with %w)
// so that not-found classification via errdefs survives: the orchestrator
// inspects create errors to decide whether to pull the image and retry.
type EngineAPI interface {
	// CreateContainer creates a container and returns its id.
	CreateContainer(ctx context.Context, cfg *container.Config, host *container.HostConfig, netCfg *network.NetworkingConfig, name string) (string, error)

	// StartContainer starts a created container.
	StartContainer(ctx context.Context, id string) error

	// StopContainer stops a running container gracefully.
	StopContainer(ctx context.Context, id string) error

	// RemoveContainer removes a container, optionally forcing removal of a
	// running container and deleting its anonymous volumes.
	RemoveContainer(ctx context.Context, id string, force, removeVolumes bool) error

	// InspectContainer returns the engine's view of a container: state,
	// host config, and network settings.
	InspectContainer(ctx context.Context, id string) (container.InspectResponse, error)

	// PullImage starts pulling the given image reference and returns the
	// raw progress-event stream. The pull completes only once the stream
	// has been consumed to EOF; errors are delivered in-band as progress
	// events.
	PullImage(ctx context.Context, ref string) (io.ReadCloser, error)

	// ContainerLogs opens a log stream for the container. The returned
	// reader carries the engine's multiplexed framing and must be
	// demultiplexed (see logs.go). Each call opens a fresh stream.
	ContainerLogs(ctx context.Context, id string, req LogsRequest) (io.ReadCloser, error)

	// ListNetworks returns summaries of all networks known to the engine.
	ListNetworks(ctx context.Context) ([]network.Summary, error)

	// CreateNetwork creates a network with the given name.
	CreateNetwork(ctx context.Context, name string) error

	// RemoveNetwork removes the named network.
	RemoveNetwork(ctx context.Context, name string) error
}
