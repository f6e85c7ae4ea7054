package dockerenv

import (
	"time"

	"github.com/giantswarm/dockerenv/internal/core"
)

// WaitStrategy decides when a started container counts as ready. Run
// evaluates an image's strategies in the order they were attached with
// [Image.WithWaitFor]; the first failure aborts the run.
//
// None of the built-in strategies impose their own deadline. Bound them
// through the context passed to Run.
type WaitStrategy = core.WaitStrategy

// LogStrategy waits for a substring to appear in the container's log
// output. The zero value is not useful; construct it with ForLog.
type LogStrategy = core.LogStrategy

// ForLog returns a strategy that blocks until a log line on stdout
// contains message. Use [LogStrategy.OnStderr] to match stderr instead.
// The stream is followed from the beginning of the container's output,
// so lines emitted before the wait began still match.
func ForLog(message string) LogStrategy {
	return core.ForLog(message)
}

// ForDuration returns a strategy that waits a fixed interval. Useful as
// a crude settle delay for images that expose no better readiness signal.
func ForDuration(d time.Duration) WaitStrategy {
	return core.ForDuration(d)
}

// ForHealthcheck returns a strategy that polls the container's
// HEALTHCHECK status until it reports healthy. An unhealthy report fails
// with ErrUnhealthy; an image without a healthcheck fails with
// ErrNoHealthcheck.
func ForHealthcheck() WaitStrategy {
	return core.ForHealthcheck()
}

// ForNothing returns the no-op strategy: the container is ready as soon
// as it has started. This is the default for images built with NewImage.
func ForNothing() WaitStrategy {
	return core.ForNothing()
}
