package cache

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryEntries is the default LRU capacity for the in-process cache.
const DefaultMemoryEntries = 1024

// MemoryCache is an in-process LRU cache with per-entry expiration. It backs
// the HTTP server, where artifacts are small and re-rendering is cheap
// enough that eviction is acceptable.
type MemoryCache struct {
	lru *lru.LRU[string, []byte]
}

// NewMemoryCache creates an LRU cache holding at most maxEntries values.
// A non-positive maxEntries uses [DefaultMemoryEntries]. The ttl applies to
// every entry; a zero ttl disables expiration.
func NewMemoryCache(maxEntries int, ttl time.Duration) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryEntries
	}
	return &MemoryCache{lru: lru.NewLRU[string, []byte](maxEntries, nil, ttl)}
}

// Get retrieves a value.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok := c.lru.Get(key)
	return data, ok, nil
}

// Set stores a value. The per-entry ttl argument is ignored: the expirable
// LRU applies the cache-wide TTL chosen at construction time.
func (c *MemoryCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.lru.Add(key, data)
	return nil
}

// Delete removes a value if present.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.lru.Remove(key)
	return nil
}

// Close does nothing for the memory backend.
func (c *MemoryCache) Close() error { return nil }

// Len returns the number of live entries.
func (c *MemoryCache) Len() int { return c.lru.Len() }

var _ Cache = (*MemoryCache)(nil)
