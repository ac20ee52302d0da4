package cache

import (
	"context"
	"sync"
	"time"
)

// ReportCache caches rendered analytics payloads so the dashboard does not
// recompute profit figures on every poll
type ReportCache interface {
	// Get returns the cached payload for key, or ok=false on a miss
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a payload under key for the given TTL
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error

	// Invalidate drops any cached payloads whose key starts with prefix
	Invalidate(ctx context.Context, prefix string) error

	// Close releases any underlying resources
	Close() error
}

// InMemoryReportCache is a process-local ReportCache, used when Redis is
// not configured. Entries are evicted lazily on read.
type InMemoryReportCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
}

type inMemoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryReportCache creates a new in-memory report cache
func NewInMemoryReportCache() *InMemoryReportCache {
	return &InMemoryReportCache{
		entries: make(map[string]inMemoryEntry),
	}
}

// Get returns the cached payload for key, or ok=false on a miss
func (c *InMemoryReportCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

// Set stores a payload under key for the given TTL
func (c *InMemoryReportCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = inMemoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	c.mu.Unlock()
	return nil
}

// Invalidate drops any cached payloads whose key starts with prefix
func (c *InMemoryReportCache) Invalidate(_ context.Context, prefix string) error {
	c.mu.Lock()
	for key := range c.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
	return nil
}

// Close releases any underlying resources
func (c *InMemoryReportCache) Close() error {
	return nil
}
