package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is an in-process QuoteCache. Expired entries are dropped
// lazily on read.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if time.Now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, nil
	}

	payload := make([]byte, len(entry.payload))
	copy(payload, entry.payload)
	return payload, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, payload []byte, ttl time.Duration) error {
	stored := make([]byte, len(payload))
	copy(stored, payload)

	c.mu.Lock()
	c.entries[key] = memoryEntry{payload: stored, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
	return nil
}
