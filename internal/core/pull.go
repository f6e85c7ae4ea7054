package core

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/docker/docker/pkg/jsonmessage"
	"github.com/gofrs/flock"
)

// pullLockRetryInterval is the interval between attempts to acquire the
// per-image pull lock. 50ms keeps the wait after the holder finishes
// short without busy-polling the filesystem.
const pullLockRetryInterval = 50 * time.Millisecond

// pullImage pulls the image and consumes the engine's progress-event
// stream to completion. The pull has not actually finished until the
// stream reaches EOF; errors (missing tag, registry refusal, network
// drop mid-layer) are delivered in-band as progress events and any one
// of them aborts the pull.
//
// A per-image file lock serializes pulls across processes sharing one
// engine, so parallel `go test` invocations needing the same image wait
// for one download instead of racing the layer store.
func (c *Client) pullImage(ctx context.Context, ref string) error {
	sum := sha256.Sum256([]byte(ref))
	lockPath := filepath.Join(c.cfg.PullLockDir, fmt.Sprintf("dockerenv-pull-%x.lock", sum[:8]))
	fl, err := acquireFileLock(ctx, lockPath)
	if err != nil {
		return err
	}
	defer releaseFileLock(c.log, fl)

	c.log.Info("pulling image", "ref", ref)

	rc, err := c.api.PullImage(ctx, ref)
	if err != nil {
		return fmt.Errorf("start pull: %w", err)
	}
	defer rc.Close()

	dec := json.NewDecoder(rc)
	for {
		var msg jsonmessage.JSONMessage
		if err := dec.Decode(&msg); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("read pull progress: %w", err)
		}
		if msg.Error != nil {
			return fmt.Errorf("pull failed: %w", msg.Error)
		}
	}

	c.log.Info("image pulled", "ref", ref)
	return nil
}

// acquireFileLock acquires an exclusive lock on the given path, retrying
// at pullLockRetryInterval until it succeeds or the context is canceled.
func acquireFileLock(ctx context.Context, lockPath string) (*flock.Flock, error) {
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, pullLockRetryInterval)
	if err != nil {
		return nil, fmt.Errorf("acquire pull lock %s: %w", lockPath, err)
	}
	if !locked {
		// TryLockContext should return an error when it fails; handle a
		// (false, nil) result anyway.
		if ctx.Err() != nil {
			return nil, fmt.Errorf("acquire pull lock %s: %w", lockPath, ctx.Err())
		}
		return nil, fmt.Errorf("acquire pull lock %s: lock not acquired", lockPath)
	}

	return fl, nil
}

// releaseFileLock releases the lock and closes its file descriptor. The
// lock file stays on disk: removing it would race a lock concurrently
// taken by another process on the same path. Best-effort, errors only
// logged.
func releaseFileLock(logger *slog.Logger, fl *flock.Flock) {
	if fl == nil {
		return
	}
	if err := fl.Close(); err != nil {
		logger.Debug("failed to release pull lock", "path", fl.Path(), "error", err)
	}
}
