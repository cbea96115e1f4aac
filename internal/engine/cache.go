package engine

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// DefaultCacheSize is the number of results kept when no size is configured.
const DefaultCacheSize = 256

// resultCache is a bounded FIFO of computed results keyed by input hash.
// Stored results are never handed out; callers receive clones.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string]*Results
	order    []string // insertion order, oldest first

	group singleflight.Group
}

func newResultCache(capacity int) *resultCache {
	if capacity < 0 {
		capacity = 0
	}
	return &resultCache{
		capacity: capacity,
		entries:  make(map[string]*Results, capacity),
	}
}

func (c *resultCache) get(key string) (*Results, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	r, ok := c.entries[key]
	return r, ok
}

// put stores r under key, evicting the oldest entry when full.
// A zero capacity disables storage.
func (c *resultCache) put(key string, r *Results) {
	if c.capacity == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = r
		return
	}
	for len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = r
	c.order = append(c.order, key)
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// purge drops every entry.
func (c *resultCache) purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Results, c.capacity)
	c.order = nil
}
