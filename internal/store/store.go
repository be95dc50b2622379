// Package store provides the key/value backends visitor preferences are kept
// in: libSQL, Redis, or process memory.
package store

import (
	"context"
	"sync"

	"github.com/atlasborder/site/internal/metrics"
)

// KV is implemented by every backend.
type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Check(ctx context.Context) error
}

func observeGet(backend string, ok bool, err error) {
	switch {
	case err != nil:
		metrics.ObserveStore(backend, "get", "error")
	case ok:
		metrics.ObserveStore(backend, "get", "hit")
	default:
		metrics.ObserveStore(backend, "get", "miss")
	}
}

func observeSet(backend string, err error) {
	if err != nil {
		metrics.ObserveStore(backend, "set", "error")
		return
	}
	metrics.ObserveStore(backend, "set", "ok")
}

// MemStore keeps values in a map. Contents are lost on restart.
type MemStore struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]string)}
}

func (m *MemStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	observeGet("memory", ok, nil)
	return v, ok, nil
}

func (m *MemStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	observeSet("memory", nil)
	return nil
}

func (m *MemStore) Check(context.Context) error { return nil }
