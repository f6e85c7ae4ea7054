package core

import (
	"fmt"
	"net"
	"strconv"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/go-connections/nat"

	"github.com/giantswarm/dockerenv/internal/sentinel"
)

// ErrPortNotMapped is returned by MappedPort when the requested container
// port has no host binding for the requested address family. The port was
// never exposed or mapped on the image; a container whose port cannot be
// reached is unlikely to be useful to a test, so this is a usage error.
const ErrPortNotMapped = sentinel.Error("port is not mapped")

// mappedHostIP is the host interface explicit port mappings bind to.
// Exposed-only ports use an empty binding so the engine picks interface
// and port itself.
const mappedHostIP = "127.0.0.1"

// tcpPort renders a container port in the engine's "<port>/tcp" key form.
func tcpPort(port int) nat.Port {
	return nat.Port(fmt.Sprintf("%d/tcp", port))
}

// buildPortBindings translates the image's declared port intents into the
// create request's exposed-port set and host bindings.
//
// With explicit mappings or exposed ports present, each mapping binds to
// 127.0.0.1 with its declared host port (or an engine-assigned one when
// the mapping's host port is 0), and each purely exposed port gets an
// empty auto-assigned binding; publishAll stays false. With neither
// declared, no bindings are emitted and publishAll is true, so the engine
// publishes whatever ports the image itself exposes.
func buildPortBindings(img RunnableImage) (exposed nat.PortSet, bindings nat.PortMap, publishAll bool) {
	exposedPorts := img.ExposedPorts()
	mappings := img.PortMappings()

	exposed = make(nat.PortSet, len(exposedPorts))
	for _, p := range exposedPorts {
		exposed[tcpPort(p)] = struct{}{}
	}

	if len(mappings) == 0 && len(exposedPorts) == 0 {
		return exposed, nil, true
	}

	bindings = make(nat.PortMap, len(mappings)+len(exposedPorts))
	for _, m := range mappings {
		hostPort := ""
		if m.Host != 0 {
			hostPort = strconv.Itoa(m.Host)
		}
		bindings[tcpPort(m.Internal)] = []nat.PortBinding{{
			HostIP:   mappedHostIP,
			HostPort: hostPort,
		}}
	}
	for _, p := range exposedPorts {
		bindings[tcpPort(p)] = []nat.PortBinding{{}}
	}

	return exposed, bindings, false
}

// resolveHostPort reads the live port bindings out of an inspect response
// and returns the host port publishing the given container TCP port on
// the requested address family. Valid only once the container is running:
// before start the engine has not materialized the bindings yet.
func resolveHostPort(resp container.InspectResponse, internal int, ipv6 bool) (int, error) {
	if resp.NetworkSettings == nil || resp.NetworkSettings.Ports == nil {
		return 0, fmt.Errorf("container has no port bindings: %w", ErrPortNotMapped)
	}

	for _, binding := range resp.NetworkSettings.Ports[tcpPort(internal)] {
		if !matchesFamily(binding.HostIP, ipv6) {
			continue
		}
		port, err := strconv.Atoi(binding.HostPort)
		if err != nil {
			return 0, fmt.Errorf("malformed host port %q for %d/tcp: %w", binding.HostPort, internal, err)
		}
		return port, nil
	}

	return 0, fmt.Errorf("port %d/tcp (ipv6=%t): %w", internal, ipv6, ErrPortNotMapped)
}

// matchesFamily reports whether a binding's host IP belongs to the
// requested address family. The engine reports "0.0.0.0" (or sometimes an
// empty string) for IPv4 wildcard bindings and "::" for IPv6.
func matchesFamily(hostIP string, ipv6 bool) bool {
	if hostIP == "" {
		return !ipv6
	}
	ip := net.ParseIP(hostIP)
	if ip == nil {
		return false
	}
	if ipv6 {
		return ip.To4() == nil
	}
	return ip.To4() != nil
}
