package dockerenv

import "github.com/giantswarm/dockerenv/internal/core"

// Image describes a container to run: the image reference plus
// environment, mounts, ports, network, naming, and wait strategies. An
// Image is an immutable value; every With* method returns a modified
// copy, so a configured Image can be shared and reused across Run calls.
//
// Image is a type alias (not a named type) so that the underlying
// [core.RunnableImage] builder and accessor methods are part of the
// public API without redeclaration here.
type Image = core.RunnableImage

// PortMapping pairs a container port with the host port publishing it.
// A Host of 0 lets the engine choose a free port.
type PortMapping = core.PortMapping

// VolumeMount binds a host path into the container.
type VolumeMount = core.VolumeMount

// NewImage returns an Image for the given reference ("redis:7-alpine",
// "ghcr.io/acme/api@sha256:..."). The default wait strategy is
// ForNothing: Run returns as soon as the container has started.
func NewImage(descriptor string) Image {
	return core.NewImage(descriptor)
}
