// Package cache holds computed API responses between state changes.
// It wraps patrickmn/go-cache with typed access.
package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// Cache is a TTL cache of values of type V.
type Cache[V any] struct {
	store *gocache.Cache

	// mu orders Flush against the store step of GetOrLoad. gen counts
	// flushes so a load that straddles one is not cached.
	mu  sync.Mutex
	gen uint64
}

// New creates a cache whose entries expire after ttl. Expired entries are
// purged every 2*ttl.
func New[V any](ttl time.Duration) *Cache[V] {
	return &Cache[V]{store: gocache.New(ttl, 2*ttl)}
}

// Get returns the value cached under key.
func (c *Cache[V]) Get(key string) (V, bool) {
	if v, ok := c.store.Get(key); ok {
		if typed, ok := v.(V); ok {
			return typed, true
		}
	}
	var zero V
	return zero, false
}

// Set caches value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.store.SetDefault(key, value)
}

// GetOrLoad returns the cached value for key, calling load and caching
// its result on a miss. Errors are not cached, and neither is a result
// whose load overlapped a Flush.
func (c *Cache[V]) GetOrLoad(key string, load func() (V, error)) (V, bool, error) {
	if v, ok := c.Get(key); ok {
		return v, true, nil
	}

	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()

	v, err := load()
	if err != nil {
		return v, false, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.store.SetDefault(key, v)
	}
	c.mu.Unlock()
	return v, false, nil
}

// Flush drops every entry. Loads still in flight when it runs are
// returned to their callers but not cached.
func (c *Cache[V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.store.Flush()
}

// Len returns the number of entries, including expired ones not yet purged.
func (c *Cache[V]) Len() int {
	return c.store.ItemCount()
}
