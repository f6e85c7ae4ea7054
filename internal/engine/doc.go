// Package engine adapts the Docker SDK client to the narrow engine
// interface the core package consumes. It is a thin pass-through layer:
// SDK errors are returned unwrapped or wrapped with %w so callers can
// still classify them, and no retry or policy logic lives here.
package engine
