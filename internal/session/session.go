// Package session keeps short-lived per-visitor state, such as open planner
// wizards and checklists, in memory.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

type entry[T any] struct {
	mu       sync.Mutex
	value    T
	lastSeen time.Time
}

// Registry maps session ids to values. Each value is only ever accessed under
// its own lock, so callers need no further synchronisation.
type Registry[T any] struct {
	mu      sync.RWMutex
	entries map[string]*entry[T]
	now     func() time.Time
}

func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		entries: make(map[string]*entry[T]),
		now:     time.Now,
	}
}

// WithClock replaces the clock used for idle tracking.
func (r *Registry[T]) WithClock(now func() time.Time) *Registry[T] {
	r.now = now
	return r
}

// Create stores v under a new random id.
func (r *Registry[T]) Create(v T) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.entries[id] = &entry[T]{value: v, lastSeen: r.now()}
	r.mu.Unlock()
	return id
}

// Do runs fn with exclusive access to the session and marks it as seen.
func (r *Registry[T]) Do(id string, fn func(T) error) error {
	r.mu.RLock()
	e, ok := r.entries[id]
	r.mu.RUnlock()
	if !ok {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.lastSeen = r.now()
	return fn(e.value)
}

func (r *Registry[T]) Delete(id string) {
	r.mu.Lock()
	delete(r.entries, id)
	r.mu.Unlock()
}

func (r *Registry[T]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Sweep drops sessions idle for longer than ttl and returns how many were
// removed.
func (r *Registry[T]) Sweep(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.entries {
		e.mu.Lock()
		stale := e.lastSeen.Before(cutoff)
		e.mu.Unlock()
		if stale {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry[T]) Run(ctx context.Context, interval, ttl time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep(ttl)
		}
	}
}
