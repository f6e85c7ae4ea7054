package engine

import (
	"context"
	"io"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/image"
	"github.com/docker/docker/api/types/network"
	"github.com/docker/docker/client"

	"github.com/giantswarm/dockerenv/internal/core"
)

// Client implements core.EngineAPI on top of the Docker SDK.
type Client struct {
	docker *client.Client
}

var _ core.EngineAPI = (*Client)(nil)

// New connects to the engine using the standard environment (DOCKER_HOST
// and friends) and negotiates the API version with the daemon.
func New() (*Client, error) {
	docker, err := client.NewClientWithOpts(
		client.FromEnv,
		client.WithAPIVersionNegotiation(),
	)
	if err != nil {
		return nil, err
	}
	return &Client{docker: docker}, nil
}

// Close releases the underlying SDK client's transport.
func (c *Client) Close() error {
	return c.docker.Close()
}

func (c *Client) CreateContainer(ctx context.Context, cfg *container.Config, host *container.HostConfig, netCfg *network.NetworkingConfig, name string) (string, error) {
	resp, err := c.docker.ContainerCreate(ctx, cfg, host, netCfg, nil, name)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (c *Client) StartContainer(ctx context.Context, id string) error {
	return c.docker.ContainerStart(ctx, id, container.StartOptions{})
}

func (c *Client) StopContainer(ctx context.Context, id string) error {
	return c.docker.ContainerStop(ctx, id, container.StopOptions{})
}

func (c *Client) RemoveContainer(ctx context.Context, id string, force, removeVolumes bool) error {
	return c.docker.ContainerRemove(ctx, id, container.RemoveOptions{
		Force:         force,
		RemoveVolumes: removeVolumes,
	})
}

func (c *Client) InspectContainer(ctx context.Context, id string) (container.InspectResponse, error) {
	return c.docker.ContainerInspect(ctx, id)
}

func (c *Client) PullImage(ctx context.Context, ref string) (io.ReadCloser, error) {
	return c.docker.ImagePull(ctx, ref, image.PullOptions{})
}

func (c *Client) ContainerLogs(ctx context.Context, id string, req core.LogsRequest) (io.ReadCloser, error) {
	return c.docker.ContainerLogs(ctx, id, container.LogsOptions{
		ShowStdout: !req.Stderr,
		ShowStderr: req.Stderr,
		Follow:     req.Follow,
		Tail:       req.Tail,
	})
}

func (c *Client) ListNetworks(ctx context.Context) ([]network.Summary, error) {
	return c.docker.NetworkList(ctx, network.ListOptions{})
}

func (c *Client) CreateNetwork(ctx context.Context, name string) error {
	_, err := c.docker.NetworkCreate(ctx, name, network.CreateOptions{})
	return err
}

func (c *Client) RemoveNetwork(ctx context.Context, name string) error {
	return c.docker.NetworkRemove(ctx, name)
}
