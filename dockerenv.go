package dockerenv

import (
	"context"
	"errors"
	"fmt"

	"github.com/giantswarm/dockerenv/internal/core"
	"github.com/giantswarm/dockerenv/internal/engine"
)

// Container is the handle to a running container returned by Run. See
// [core.Container] for the full method set: Terminate, Start, Stop,
// MappedPort, MappedPortIPv6, BridgeIPAddress, Inspect, and Logs.
//
// Container is a type alias (not a named type) so that the underlying
// core methods are part of the public API without redeclaration here.
type Container = core.Container

// Client runs containers against the local Docker engine. Each Client
// owns its own engine connection and its own record of the networks it
// created; Close removes those networks and releases the connection.
//
// A Client is safe for concurrent use by multiple goroutines.
type Client struct {
	core   *core.Client
	engine *engine.Client
}

// NewClient connects to the engine using the standard Docker environment
// variables (DOCKER_HOST and friends) and returns a Client configured by
// the given options.
//
// Panics if any option receives an invalid value. See individual With*
// functions for constraints.
func NewClient(opts ...ClientOption) (*Client, error) {
	cfg := defaultClientConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	eng, err := engine.New()
	if err != nil {
		return nil, fmt.Errorf("connect to container engine: %w", err)
	}
	return &Client{
		core:   core.NewClient(eng, cfg.toCoreConfig()),
		engine: eng,
	}, nil
}

// Run creates and starts a container from the image description, blocks
// until the image's wait strategies report ready, and returns the handle.
//
// When the image is not present locally it is pulled first; concurrent
// pulls of the same image across processes on one machine are serialized
// through a file lock. A wait strategy failure returns an error and
// leaves the container behind for inspection.
func (c *Client) Run(ctx context.Context, img Image) (*Container, error) {
	return c.core.Run(ctx, img)
}

// Close removes the networks this Client created (unless the cleanup
// policy is PolicyKeep) and releases the engine connection. Containers
// are not swept here; each handle owns its own teardown.
func (c *Client) Close() error {
	return errors.Join(c.core.Close(), c.engine.Close())
}
