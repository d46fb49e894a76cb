// Package cache defines the optional key-value collaborator used to memoize
// the transformed catalog for a bounded time window. The pipeline must
// behave identically with or without it: every failure here is absorbed by
// the caller and treated like a miss.
package cache

import (
	"context"
	"sync"
	"time"
)

// Cache is an opaque TTL key-value store. Implementations may lose writes;
// a Get after a Put may observe the value or not, and callers must tolerate
// either outcome exactly like a cold start.
type Cache interface {
	// Get returns the value for key, a presence flag, and any store error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Put stores value under key for at most ttl.
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

type entry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process Cache with per-entry TTLs. Expired entries are
// dropped lazily on read.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory returns an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if m.now().After(e.expiresAt) {
		delete(m.entries, key)
		return nil, false, nil
	}
	out := make([]byte, len(e.value))
	copy(out, e.value)
	return out, true, nil
}

func (m *Memory) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v := make([]byte, len(value))
	copy(v, value)
	m.entries[key] = entry{value: v, expiresAt: m.now().Add(ttl)}
	return nil
}
