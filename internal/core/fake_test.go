package core

import (
	"bytes"
	"context"
	"encoding/binary"
	"io"
	"strings"
	"sync"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/network"
)

// fakeEngine implements EngineAPI in memory, recording every call so
// tests can assert on the exact sequence of engine operations a scenario
// produced. The zero value is usable; all operations succeed and return
// empty results unless an err or hook field is set.
type fakeEngine struct {
	mu sync.Mutex

	createCalls []createCall
	createErrs  []error // popped per CreateContainer call; empty = success
	nextID      string

	started []string
	stopped []string
	removed []removeCall

	startErr error

	inspectFn func(id string) (container.InspectResponse, error)

	pulled     []string
	pullStream func(ref string) (io.ReadCloser, error)

	logsFn func(id string, req LogsRequest) (io.ReadCloser, error)

	networks        []network.Summary
	createdNetworks []string
	removedNetworks []string
	netCreateErr    error
	netRemoveErr    error
}

type createCall struct {
	cfg  *container.Config
	host *container.HostConfig
	net  *network.NetworkingConfig
	name string
}

type removeCall struct {
	id            string
	force         bool
	removeVolumes bool
}

var _ EngineAPI = (*fakeEngine)(nil)

func (f *fakeEngine) CreateContainer(_ context.Context, cfg *container.Config, host *container.HostConfig, netCfg *network.NetworkingConfig, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls = append(f.createCalls, createCall{cfg: cfg, host: host, net: netCfg, name: name})
	if len(f.createErrs) > 0 {
		err := f.createErrs[0]
		f.createErrs = f.createErrs[1:]
		if err != nil {
			return "", err
		}
	}
	id := f.nextID
	if id == "" {
		id = "deadbeefcafe0123456789"
	}
	return id, nil
}

func (f *fakeEngine) StartContainer(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, id)
	return nil
}

func (f *fakeEngine) StopContainer(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = append(f.stopped, id)
	return nil
}

func (f *fakeEngine) RemoveContainer(_ context.Context, id string, force, removeVolumes bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, removeCall{id: id, force: force, removeVolumes: removeVolumes})
	return nil
}

func (f *fakeEngine) InspectContainer(_ context.Context, id string) (container.InspectResponse, error) {
	if f.inspectFn != nil {
		return f.inspectFn(id)
	}
	return container.InspectResponse{}, nil
}

func (f *fakeEngine) PullImage(_ context.Context, ref string) (io.ReadCloser, error) {
	f.mu.Lock()
	f.pulled = append(f.pulled, ref)
	f.mu.Unlock()
	if f.pullStream != nil {
		return f.pullStream(ref)
	}
	return io.NopCloser(strings.NewReader("")), nil
}

func (f *fakeEngine) ContainerLogs(_ context.Context, id string, req LogsRequest) (io.ReadCloser, error) {
	if f.logsFn != nil {
		return f.logsFn(id, req)
	}
	return io.NopCloser(bytes.NewReader(nil)), nil
}

func (f *fakeEngine) ListNetworks(_ context.Context) ([]network.Summary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]network.Summary(nil), f.networks...), nil
}

func (f *fakeEngine) CreateNetwork(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.netCreateErr != nil {
		return f.netCreateErr
	}
	f.createdNetworks = append(f.createdNetworks, name)
	f.networks = append(f.networks, network.Summary{Name: name})
	return nil
}

func (f *fakeEngine) RemoveNetwork(_ context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.netRemoveErr != nil {
		return f.netRemoveErr
	}
	f.removedNetworks = append(f.removedNetworks, name)
	return nil
}

// removedIDs returns the ids of removed containers in removal order.
func (f *fakeEngine) removedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]string, len(f.removed))
	for i, r := range f.removed {
		ids[i] = r.id
	}
	return ids
}

// muxFrames renders lines as the engine's multiplexed log framing, one
// newline-terminated frame per line. Stream type 1 is stdout, 2 stderr.
func muxFrames(stream byte, lines ...string) io.ReadCloser {
	payloads := make([]string, len(lines))
	for i, line := range lines {
		payloads[i] = line + "\n"
	}
	return muxRawFrames(stream, payloads...)
}

// muxRawFrames renders each payload as one frame of the engine's
// multiplexed framing: an 8-byte header (stream type, three zero bytes,
// big-endian payload length) followed by the payload verbatim.
func muxRawFrames(stream byte, payloads ...string) io.ReadCloser {
	var buf bytes.Buffer
	for _, payload := range payloads {
		header := [8]byte{0: stream}
		binary.BigEndian.PutUint32(header[4:], uint32(len(payload)))
		buf.Write(header[:])
		buf.WriteString(payload)
	}
	return io.NopCloser(&buf)
}

// healthResponse builds an inspect response reporting the given health
// status (one of the container.Healthy etc. string constants).
func healthResponse(status string) container.InspectResponse {
	return container.InspectResponse{
		ContainerJSONBase: &container.ContainerJSONBase{
			State: &container.State{
				Health: &container.Health{Status: status},
			},
		},
	}
}
