// apps/go-solver/internal/store/memory.go
//
// In-memory implementation of OpenerCache.
// Used when no cache database is configured, and in tests.
//
// Characteristics:
//   - Stores Opener values keyed by fingerprint in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process exits.

package store

import (
	"context"
	"sync"
)

// memory is an in-memory map-based OpenerCache implementation.
type memory struct {
	mu      sync.RWMutex      // guards openers map
	openers map[string]Opener // keyed by Fingerprint
}

// NewMemoryCache constructs a new in-memory OpenerCache.
func NewMemoryCache() OpenerCache {
	return &memory{openers: make(map[string]Opener)}
}

// Put adds or updates the opener in the map.
func (m *memory) Put(ctx context.Context, key string, o Opener) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.openers[key] = o
	return nil
}

// Get looks up an opener by key.
func (m *memory) Get(ctx context.Context, key string) (Opener, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.openers[key]
	return o, ok, nil
}
