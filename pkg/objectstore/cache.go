package objectstore

import "sync"

// handleCache is the gateway's keyed bucket-handle cache: many concurrent
// readers, serialized writers, and a clear-and-reinsert policy once it
// reaches its ceiling, per spec.md §4.5 step 5 and §5.
type handleCache struct {
	mu      sync.RWMutex
	ceiling int
	entries map[string]*Handle
}

func newHandleCache(ceiling int) *handleCache {
	return &handleCache{ceiling: ceiling, entries: map[string]*Handle{}}
}

func (c *handleCache) get(key string) (*Handle, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	h, ok := c.entries[key]
	return h, ok
}

// put inserts handle under key. When key is new and the cache has already
// reached the ceiling, the entire cache is cleared first; overwriting an
// existing key never clears.
func (c *handleCache) put(key string, handle *Handle) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.ceiling {
		c.entries = map[string]*Handle{}
	}
	c.entries[key] = handle
}

func (c *handleCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
