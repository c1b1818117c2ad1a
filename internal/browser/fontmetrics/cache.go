// internal/browser/fontmetrics/cache.go
package fontmetrics

import (
	"sync"
	"sync/atomic"

	"github.com/golang/groupcache/lru"

	"github.com/xkilldash9x/layoutcore/internal/browser/style"
)

// DefaultCacheSize bounds a Cache created with a non-positive size.
const DefaultCacheSize = 4096

type cacheKey struct {
	text string
	face Face
}

// Cache memoizes another provider, keyed by text and font identity. It is
// safe for concurrent use. Errors are not cached.
type Cache struct {
	next Provider

	mu      sync.Mutex
	entries *lru.Cache

	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewCache(next Provider, maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = DefaultCacheSize
	}
	return &Cache{next: next, entries: lru.New(maxEntries)}
}

func (c *Cache) Measure(text string, cs style.Computed) (Metrics, error) {
	key := cacheKey{text: text, face: FaceOf(cs)}

	c.mu.Lock()
	if v, ok := c.entries.Get(key); ok {
		c.mu.Unlock()
		c.hits.Add(1)
		return v.(Metrics), nil
	}
	c.mu.Unlock()

	c.misses.Add(1)
	m, err := c.next.Measure(text, cs)
	if err != nil {
		return Metrics{}, err
	}

	c.mu.Lock()
	c.entries.Add(key, m)
	c.mu.Unlock()
	return m, nil
}

// Stats reports cache hits and misses so far.
func (c *Cache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached measurements.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
