package core

import (
	"fmt"
	"maps"
	"slices"
)

// PortMapping declares that a container port should be published on a
// specific host port. Host 0 lets the engine pick a free port, resolved
// after start via Container.MappedPort.
type PortMapping struct {
	// Internal is the container-side port.
	Internal int
	// Host is the fixed host-side port, or 0 for engine-assigned.
	Host int
}

// VolumeMount declares a host path (or named volume) to mount into the
// container.
type VolumeMount struct {
	Source string
	Target string
}

// RunnableImage is an immutable description of a container to launch.
// Every With* method returns a modified copy, so a RunnableImage value can
// be shared between tests and re-run without one run's customization
// leaking into another. The zero value is not usable; construct with
// NewImage.
type RunnableImage struct {
	descriptor   string
	env          map[string]string
	mounts       []VolumeMount
	exposedPorts []int
	portMappings []PortMapping
	network      string
	name         string
	shmSize      int64
	entrypoint   string
	args         []string
	waitFor      []WaitStrategy
}

// NewImage creates a RunnableImage for the given image reference
// (e.g. "redis:7-alpine"). The image is considered ready as soon as it is
// started; add wait strategies with WithWaitFor.
func NewImage(descriptor string) RunnableImage {
	return RunnableImage{
		descriptor: descriptor,
		waitFor:    []WaitStrategy{ForNothing()},
	}
}

// WithEnv returns a copy with the environment variable key set to value.
// Keys are unique; setting an existing key overwrites it.
func (i RunnableImage) WithEnv(key, value string) RunnableImage {
	env := maps.Clone(i.env)
	if env == nil {
		env = make(map[string]string, 1)
	}
	env[key] = value
	i.env = env
	return i
}

// WithMount returns a copy with an additional volume mount. Mount order
// is preserved.
func (i RunnableImage) WithMount(source, target string) RunnableImage {
	i.mounts = append(slices.Clone(i.mounts), VolumeMount{Source: source, Target: target})
	return i
}

// WithExposedPort returns a copy that exposes the given container port
// with an engine-assigned host port.
func (i RunnableImage) WithExposedPort(port int) RunnableImage {
	i.exposedPorts = append(slices.Clone(i.exposedPorts), port)
	return i
}

// WithMappedPort returns a copy that publishes container port internal on
// the fixed host port. Pass host 0 to let the engine assign one.
func (i RunnableImage) WithMappedPort(host, internal int) RunnableImage {
	i.portMappings = append(slices.Clone(i.portMappings), PortMapping{Internal: internal, Host: host})
	return i
}

// WithNetwork returns a copy attached to the named network. The network
// is created on first use by the owning client if it does not exist yet.
func (i RunnableImage) WithNetwork(name string) RunnableImage {
	i.network = name
	return i
}

// WithName returns a copy with an explicit container name. Without a
// name, the engine assigns one.
func (i RunnableImage) WithName(name string) RunnableImage {
	i.name = name
	return i
}

// WithShmSize returns a copy with the given /dev/shm size in bytes.
func (i RunnableImage) WithShmSize(bytes int64) RunnableImage {
	i.shmSize = bytes
	return i
}

// WithEntrypoint returns a copy overriding the image's entrypoint.
func (i RunnableImage) WithEntrypoint(entrypoint string) RunnableImage {
	i.entrypoint = entrypoint
	return i
}

// WithArgs returns a copy with the given command arguments.
func (i RunnableImage) WithArgs(args ...string) RunnableImage {
	i.args = slices.Clone(args)
	return i
}

// WithWaitFor returns a copy whose readiness is gated by the given
// strategies, replacing any previously configured ones. Strategies are
// evaluated strictly in the order given; all must succeed.
func (i RunnableImage) WithWaitFor(strategies ...WaitStrategy) RunnableImage {
	i.waitFor = slices.Clone(strategies)
	return i
}

// Descriptor returns the image reference.
func (i RunnableImage) Descriptor() string { return i.descriptor }

// Network returns the configured network name, or "" for the engine default.
func (i RunnableImage) Network() string { return i.network }

// Name returns the configured container name, or "" for engine-assigned.
func (i RunnableImage) Name() string { return i.name }

// ShmSize returns the configured /dev/shm size in bytes, or 0 for the
// engine default.
func (i RunnableImage) ShmSize() int64 { return i.shmSize }

// Entrypoint returns the entrypoint override, or "" to use the image's.
func (i RunnableImage) Entrypoint() string { return i.entrypoint }

// Args returns a copy of the command arguments.
func (i RunnableImage) Args() []string { return slices.Clone(i.args) }

// ExposedPorts returns a copy of the exposed container ports.
func (i RunnableImage) ExposedPorts() []int { return slices.Clone(i.exposedPorts) }

// PortMappings returns a copy of the explicit port mappings.
func (i RunnableImage) PortMappings() []PortMapping { return slices.Clone(i.portMappings) }

// Mounts returns a copy of the volume mounts, in declaration order.
func (i RunnableImage) Mounts() []VolumeMount { return slices.Clone(i.mounts) }

// EnvVars returns a copy of the environment variable mapping.
func (i RunnableImage) EnvVars() map[string]string { return maps.Clone(i.env) }

// WaitStrategies returns a copy of the ordered wait strategies.
func (i RunnableImage) WaitStrategies() []WaitStrategy { return slices.Clone(i.waitFor) }

// envList renders the environment mapping as the engine's "KEY=VALUE"
// list form, sorted by key so the create request is deterministic.
func (i RunnableImage) envList() []string {
	if len(i.env) == 0 {
		return nil
	}
	envs := make([]string, 0, len(i.env))
	for _, k := range slices.Sorted(maps.Keys(i.env)) {
		envs = append(envs, fmt.Sprintf("%s=%s", k, i.env[k]))
	}
	return envs
}

// binds renders the volume mounts as the engine's "source:target" bind
// list, preserving declaration order.
func (i RunnableImage) binds() []string {
	if len(i.mounts) == 0 {
		return nil
	}
	binds := make([]string, 0, len(i.mounts))
	for _, m := range i.mounts {
		binds = append(binds, fmt.Sprintf("%s:%s", m.Source, m.Target))
	}
	return binds
}
