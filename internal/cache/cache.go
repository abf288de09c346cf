// Package cache holds the most recent chart artifacts keyed by selection
// fingerprint, so revisiting a prior selection does not re-invoke the
// fetcher subprocess.
package cache

import (
	"container/list"
	"sync"

	"github.com/studiowebux/stockterm/internal/market"
)

// DefaultCapacity bounds the cache when no explicit capacity is configured.
const DefaultCapacity = 32

type entry struct {
	fingerprint market.Fingerprint
	artifact    *market.Artifact
}

// Cache is a bounded least-recently-used artifact cache. A coarse mutex
// guards the whole structure; request rates are interactive, not hot-path.
type Cache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	items    map[market.Fingerprint]*list.Element
}

// New returns a cache bounded to capacity entries. Non-positive capacities
// fall back to DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[market.Fingerprint]*list.Element),
	}
}

// Get returns the cached artifact for a fingerprint and refreshes its
// recency.
func (c *Cache) Get(fp market.Fingerprint) (*market.Artifact, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[fp]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*entry).artifact, true
}

// Put inserts or replaces the artifact for a fingerprint. A replacement
// always wins over the previous artifact and refreshes recency; the
// least-recently-used entry is evicted once capacity is exceeded.
func (c *Cache) Put(fp market.Fingerprint, art *market.Artifact) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[fp]; ok {
		el.Value.(*entry).artifact = art
		c.order.MoveToFront(el)
		return
	}
	el := c.order.PushFront(&entry{fingerprint: fp, artifact: art})
	c.items[fp] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).fingerprint)
		}
	}
}

// Len reports the number of cached artifacts.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
