package core

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Registry tracks the networks a single client instance has created, so
// that one client requesting the same network for several containers
// creates it exactly once, and so that Client.Close can sweep everything
// the client owns.
//
// Ownership is deliberately narrow: a network that already existed when
// Ensure was called is never recorded, because removing it at Close would
// destroy a resource some other party created. The check-then-create in
// Ensure is not transactional across processes — two clients racing to
// create the same network name can still collide at the engine; the
// second create fails and Ensure reports that error.
type Registry struct {
	api EngineAPI
	log *slog.Logger

	// mu guards owned. The cleanup sweep snapshots the set under the
	// lock but performs the removal calls outside it, so a slow engine
	// does not block concurrent Ensure calls.
	mu    sync.Mutex
	owned []string
}

// NewRegistry creates a Registry issuing calls through the given engine.
func NewRegistry(api EngineAPI) *Registry {
	return &Registry{
		api: api,
		log: Logger(),
	}
}

// Ensure makes the named network exist, creating it if necessary.
// It returns true if this call created the network (the registry now owns
// it and will remove it during Cleanup) and false if the network already
// existed (the registry must not assume ownership).
func (r *Registry) Ensure(ctx context.Context, name string) (created bool, err error) {
	networks, err := r.api.ListNetworks(ctx)
	if err != nil {
		return false, fmt.Errorf("list networks: %w", err)
	}
	for _, n := range networks {
		if n.Name == name {
			return false, nil
		}
	}

	if err := r.api.CreateNetwork(ctx, name); err != nil {
		return false, fmt.Errorf("create network %q: %w", name, err)
	}

	r.mu.Lock()
	r.owned = append(r.owned, name)
	r.mu.Unlock()

	r.log.Debug("created network", "name", name)
	return true, nil
}

// owns reports whether the registry currently owns the named network.
func (r *Registry) owns(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.owned, name)
}

// Cleanup removes every network this registry created and empties the
// owned set. Removals run in parallel: each network is independent and
// removal is I/O-bound. Every removal is attempted even when one fails;
// failures are logged per network and the first one is returned, so a
// stubborn network does not stop the rest of the sweep.
//
// The owned set is drained under the lock before any removal call, so a
// concurrent Ensure during the sweep records into a fresh set rather
// than racing the iteration.
func (r *Registry) Cleanup(ctx context.Context) error {
	r.mu.Lock()
	names := r.owned
	r.owned = nil
	r.mu.Unlock()

	var g errgroup.Group
	for _, name := range names {
		g.Go(func() error {
			if err := r.api.RemoveNetwork(ctx, name); err != nil {
				r.log.Warn("failed to remove network", "name", name, "error", err)
				return fmt.Errorf("remove network %q: %w", name, err)
			}
			r.log.Debug("removed network", "name", name)
			return nil
		})
	}
	return g.Wait()
}
