// Package registry keeps per-shopper stores in memory, loading each on first
// use and dropping the ones that have gone idle. A dropped store is reloaded
// from its persisted snapshot the next time the shopper shows up.
package registry

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// DefaultIdle is how long an unused store stays resident.
const DefaultIdle = 30 * time.Minute

// LoadFunc rehydrates the store for one shopper.
type LoadFunc[S any] func(ctx context.Context, shopperID string) (S, error)

type entry[S any] struct {
	store    S
	lastUsed time.Time
}

type Registry[S any] struct {
	load LoadFunc[S]
	idle time.Duration
	now  func() time.Time

	mu        sync.Mutex
	entries   map[string]*entry[S]
	lastSweep time.Time
}

// New builds a registry; idle <= 0 uses DefaultIdle.
func New[S any](load LoadFunc[S], idle time.Duration) *Registry[S] {
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Registry[S]{
		load:    load,
		idle:    idle,
		now:     time.Now,
		entries: make(map[string]*entry[S]),
	}
}

// Get returns the shopper's store, loading it when absent. Failed loads are
// not cached.
func (r *Registry[S]) Get(ctx context.Context, shopperID string) (S, error) {
	var zero S
	if strings.TrimSpace(shopperID) == "" {
		return zero, errors.New("shopper id required")
	}

	r.mu.Lock()
	now := r.now()
	r.sweepLocked(now)
	if e, ok := r.entries[shopperID]; ok {
		e.lastUsed = now
		st := e.store
		r.mu.Unlock()
		return st, nil
	}
	r.mu.Unlock()

	loaded, err := r.load(ctx, shopperID)
	if err != nil {
		return zero, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[shopperID]; ok {
		e.lastUsed = r.now()
		return e.store, nil
	}
	r.entries[shopperID] = &entry[S]{store: loaded, lastUsed: r.now()}
	return loaded, nil
}

// Len reports how many stores are resident.
func (r *Registry[S]) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// sweepLocked drops idle entries, scanning at most twice per idle period.
func (r *Registry[S]) sweepLocked(now time.Time) {
	if now.Sub(r.lastSweep) < r.idle/2 {
		return
	}
	r.lastSweep = now
	for id, e := range r.entries {
		if now.Sub(e.lastUsed) > r.idle {
			delete(r.entries, id)
		}
	}
}
