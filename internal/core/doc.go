// Package core provides the internal implementation of the dockerenv
// library. It contains the Client (container run orchestration with
// on-demand image pull and retry), the wait strategies that gate
// readiness, the port binding builder and resolver, the per-client
// network registry, and the Container handle with its release-once
// teardown protocol.
package core
