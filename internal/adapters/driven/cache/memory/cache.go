// Package memory provides a bounded in-memory response cache.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/OneFellSwoop1/lobbying-disclosure-app/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.ResponseCache = (*Cache)(nil)

const (
	// DefaultCapacity bounds the number of cached responses.
	DefaultCapacity = 256

	// DefaultTTL is how long an entry stays valid.
	DefaultTTL = time.Hour
)

type entry struct {
	body    []byte
	expires time.Time
}

// Cache is an in-memory TTL cache with a capacity bound. Eviction is
// oldest-insertion-first; expired entries are dropped lazily on read.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	order    []string
	capacity int
	ttl      time.Duration

	// now is overridable in tests.
	now func() time.Time
}

// NewCache creates a cache with the given capacity and TTL. Zero or
// negative values fall back to the defaults.
func NewCache(capacity int, ttl time.Duration) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		entries:  make(map[string]entry, capacity),
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the cached body for key, or false when absent or expired.
func (c *Cache) Get(_ context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().After(e.expires) {
		delete(c.entries, key)
		return nil, false
	}
	return e.body, true
}

// Set stores body under key, evicting the oldest entry when full.
func (c *Cache) Set(_ context.Context, key string, body []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists {
		for len(c.entries) >= c.capacity && len(c.order) > 0 {
			oldest := c.order[0]
			c.order = c.order[1:]
			delete(c.entries, oldest)
		}
		c.order = append(c.order, key)
	}

	c.entries[key] = entry{
		body:    body,
		expires: c.now().Add(c.ttl),
	}
}

// Close releases resources. A no-op for the in-memory cache.
func (c *Cache) Close() error {
	return nil
}

// Len returns the current entry count. Used by tests.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
