package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/docker/docker/api/types/container"

	"github.com/giantswarm/dockerenv/internal/sentinel"
)

// ErrUnhealthy is returned by the healthcheck wait strategy when the
// engine reports the container's health as unhealthy. This is fatal: a
// container that declared itself unhealthy will not recover into the
// state the test expects.
const ErrUnhealthy = sentinel.Error("container is unhealthy")

// ErrNoHealthcheck is returned by the healthcheck wait strategy when the
// image has no HEALTHCHECK configured (or the engine reports no health
// state at all). Waiting on a healthcheck that does not exist would block
// forever, so this is reported immediately.
const ErrNoHealthcheck = sentinel.Error("container has no healthcheck configured")

// healthPollInterval is the fixed interval between health status polls
// while the engine still reports "starting".
const healthPollInterval = 100 * time.Millisecond

// StrategyTarget is the view of a running container that wait strategies
// evaluate against. Container implements it; tests substitute fakes.
type StrategyTarget interface {
	// Logs opens a fresh follow-mode log stream for the container's
	// stdout (stderr false) or stderr (stderr true), starting from the
	// beginning of the log.
	Logs(ctx context.Context, stderr bool) (io.ReadCloser, error)

	// Inspect returns the engine's current view of the container.
	Inspect(ctx context.Context) (container.InspectResponse, error)
}

// WaitStrategy is a readiness condition a container must satisfy before
// Run returns its handle. Strategies for one image are evaluated strictly
// in declared order; the first failure aborts the run.
//
// The built-in strategies (ForLog, ForDuration, ForHealthcheck,
// ForNothing) form a closed set. None of them applies a timeout of its
// own: bound the wait through the context passed to Run.
type WaitStrategy interface {
	WaitUntilReady(ctx context.Context, target StrategyTarget) error
}

// LogStrategy waits until a line containing a target substring appears on
// one of the container's output streams. Construct with ForLog.
type LogStrategy struct {
	message string
	stderr  bool
}

// ForLog returns a strategy that waits for a stdout log line containing
// message. Matching is plain substring containment; surrounding content
// and exact line framing are irrelevant.
func ForLog(message string) LogStrategy {
	return LogStrategy{message: message}
}

// OnStderr returns a copy of the strategy that watches stderr instead of
// stdout.
func (s LogStrategy) OnStderr() LogStrategy {
	s.stderr = true
	return s
}

// WaitUntilReady streams the selected stream line by line until the
// message appears. It blocks until matched, the stream ends (an error:
// the container stopped logging without ever becoming ready), or the
// context is canceled.
func (s LogStrategy) WaitUntilReady(ctx context.Context, target StrategyTarget) error {
	rc, err := target.Logs(ctx, s.stderr)
	if err != nil {
		return fmt.Errorf("open log stream: %w", err)
	}
	if err := waitForLogLine(ctx, rc, s.message); err != nil {
		return fmt.Errorf("wait for log message %q: %w", s.message, err)
	}
	return nil
}

// DurationStrategy pauses for a fixed length of time and then succeeds.
// Construct with ForDuration.
type DurationStrategy struct {
	length time.Duration
}

// ForDuration returns a strategy that simply sleeps for d.
func ForDuration(d time.Duration) DurationStrategy {
	return DurationStrategy{length: d}
}

// WaitUntilReady sleeps for the configured length, or returns early with
// the context's error if it is canceled first.
func (s DurationStrategy) WaitUntilReady(ctx context.Context, _ StrategyTarget) error {
	timer := time.NewTimer(s.length)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HealthStrategy waits for the container's engine-side healthcheck to
// report healthy. Construct with ForHealthcheck.
type HealthStrategy struct{}

// ForHealthcheck returns a strategy that polls the container's health
// status: healthy succeeds, unhealthy fails with ErrUnhealthy, a missing
// healthcheck fails with ErrNoHealthcheck, and "starting" retries after a
// fixed 100ms backoff.
func ForHealthcheck() HealthStrategy {
	return HealthStrategy{}
}

// WaitUntilReady polls Inspect until the health status resolves.
func (s HealthStrategy) WaitUntilReady(ctx context.Context, target StrategyTarget) error {
	for {
		resp, err := target.Inspect(ctx)
		if err != nil {
			return fmt.Errorf("inspect container: %w", err)
		}
		if resp.State == nil || resp.State.Health == nil {
			return ErrNoHealthcheck
		}

		switch resp.State.Health.Status {
		case container.Healthy:
			return nil
		case container.Unhealthy:
			return ErrUnhealthy
		case container.Starting:
			timer := time.NewTimer(healthPollInterval)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			}
		default:
			// Covers container.NoHealthcheck ("none") and the empty
			// status the engine reports before health state exists.
			return ErrNoHealthcheck
		}
	}
}

// NothingStrategy succeeds immediately. It is the default for images
// constructed with NewImage. Construct with ForNothing.
type NothingStrategy struct{}

// ForNothing returns a strategy that considers the container ready as
// soon as it has started.
func ForNothing() NothingStrategy {
	return NothingStrategy{}
}

// WaitUntilReady returns nil immediately.
func (s NothingStrategy) WaitUntilReady(_ context.Context, _ StrategyTarget) error {
	return nil
}
