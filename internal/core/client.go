package core

import (
	"context"
	"fmt"
	"log/slog"

	cerrdefs "github.com/containerd/errdefs"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
)

// Client runs containers against a single engine connection and tracks
// the networks it created so Close can remove them. A Client is safe for
// concurrent use by multiple goroutines.
type Client struct {
	api      EngineAPI
	cfg      ClientConfig
	networks *Registry
	log      *slog.Logger
}

// NewClient creates a Client around the given engine API. It panics when
// cfg does not validate, mirroring how invalid regular expressions panic
// at construction: a bad config is a programming error, not a runtime
// condition the caller should branch on.
func NewClient(api EngineAPI, cfg ClientConfig) *Client {
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("core.NewClient: invalid config: %v", err))
	}
	return &Client{
		api:      api,
		cfg:      cfg,
		networks: NewRegistry(api),
		log:      Logger(),
	}
}

// Config returns the configuration the Client was built with.
func (c *Client) Config() ClientConfig { return c.cfg }

// Run creates and starts a container from the image description and
// blocks until every wait strategy attached to the image reports ready.
//
// When the image references a named network, the network is created on
// first use and recorded for removal at Close. When the engine does not
// know the image, it is pulled once and the create is retried; any other
// create failure is returned as is.
//
// A wait strategy failure returns an error without removing the
// container: the container is left behind for inspection, and the
// cleanup policy only governs containers that produced a handle.
func (c *Client) Run(ctx context.Context, img RunnableImage) (*Container, error) {
	log := c.log.With("image", img.Descriptor())

	cfg, hostCfg, netCfg := buildCreateConfig(img)

	if name := img.Network(); name != "" {
		created, err := c.networks.Ensure(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("ensure network %q: %w", name, err)
		}
		if created {
			log.Debug("created network", "network", name)
		}
	}

	id, err := c.api.CreateContainer(ctx, cfg, hostCfg, netCfg, img.Name())
	if cerrdefs.IsNotFound(err) {
		log.Info("image not present locally, pulling")
		if pullErr := c.pullImage(ctx, img.Descriptor()); pullErr != nil {
			return nil, fmt.Errorf("pull image %q: %w", img.Descriptor(), pullErr)
		}
		id, err = c.api.CreateContainer(ctx, cfg, hostCfg, netCfg, img.Name())
	}
	if err != nil {
		return nil, fmt.Errorf("create container from %q: %w", img.Descriptor(), err)
	}

	if err := c.api.StartContainer(ctx, id); err != nil {
		return nil, fmt.Errorf("start container %s: %w", shortID(id), err)
	}

	ctr := newContainer(id, img, c.api, c.cfg)
	if err := ctr.waitUntilReady(ctx); err != nil {
		return nil, fmt.Errorf("container %s not ready: %w", shortID(id), err)
	}
	ctr.armSafetyNet()

	log.Debug("container running", "container", shortID(id))
	return ctr, nil
}

// Close removes the networks this Client created. Under PolicyKeep the
// networks are left in place, matching what happens to containers. The
// sweep runs under its own deadline so a wedged engine cannot block
// shutdown indefinitely.
func (c *Client) Close() error {
	if c.cfg.CleanupPolicy == PolicyKeep {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.TerminateTimeout)
	defer cancel()
	return c.networks.Cleanup(ctx)
}

// buildCreateConfig translates an image description into the engine's
// create payload.
func buildCreateConfig(img RunnableImage) (*container.Config, *container.HostConfig, *network.NetworkingConfig) {
	exposed, bindings, publishAll := buildPortBindings(img)

	cfg := &container.Config{
		Image:        img.Descriptor(),
		Env:          img.envList(),
		ExposedPorts: exposed,
	}
	if entrypoint := img.Entrypoint(); entrypoint != "" {
		cfg.Entrypoint = []string{entrypoint}
	}
	if args := img.Args(); len(args) > 0 {
		cfg.Cmd = args
	}

	hostCfg := &container.HostConfig{
		Binds:           img.binds(),
		PortBindings:    bindings,
		PublishAllPorts: publishAll,
		ShmSize:         img.ShmSize(),
	}

	var netCfg *network.NetworkingConfig
	if name := img.Network(); name != "" {
		hostCfg.NetworkMode = container.NetworkMode(name)
		netCfg = &network.NetworkingConfig{
			EndpointsConfig: map[string]*network.EndpointSettings{
				name: {},
			},
		}
	}

	return cfg, hostCfg, netCfg
}
