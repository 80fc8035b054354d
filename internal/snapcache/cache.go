// Package snapcache holds rendered snapshot images in a bounded
// least-recently-used store so a preview rendered once is reused by every
// later consumer of the same asset instead of burning another render slot.
package snapcache

import (
	"container/list"
	"sync"
)

// DefaultCapacity bounds resident snapshots when no capacity is configured.
// Sized for roughly one storefront page worth of product cards.
const DefaultCapacity = 50

type entry struct {
	key   string
	image []byte
}

// Cache is a capacity-bounded key→image store with LRU eviction. All
// operations take the one internal mutex, so a recency touch and an eviction
// never interleave.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List // front = most recently used
	items    map[string]*list.Element

	hits      uint64
	misses    uint64
	evictions uint64
}

// New returns an empty cache holding at most capacity snapshots.
// Non-positive capacity selects DefaultCapacity.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ll:       list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the snapshot for key and marks it most recently used.
func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.items[key]
	if !ok {
		c.misses++
		cacheMisses.Inc()
		return nil, false
	}
	c.ll.MoveToFront(el)
	c.hits++
	cacheHits.Inc()
	return el.Value.(*entry).image, true
}

// Set stores a snapshot under key. An existing key is replaced and refreshed;
// a new key at capacity evicts the single least-recently-used entry first.
func (c *Cache) Set(key string, image []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.items[key]; ok {
		el.Value.(*entry).image = image
		c.ll.MoveToFront(el)
		return
	}
	if c.ll.Len() >= c.capacity {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.items, oldest.Value.(*entry).key)
			c.evictions++
			cacheEvictions.Inc()
		}
	}
	c.items[key] = c.ll.PushFront(&entry{key: key, image: image})
	cacheEntries.Set(float64(c.ll.Len()))
}

// Has reports whether key is resident without touching its recency.
func (c *Cache) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.items[key]
	return ok
}

// Len returns the number of resident snapshots.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}

// Capacity returns the configured bound.
func (c *Cache) Capacity() int { return c.capacity }

// Counters returns lifetime hit/miss/eviction totals for status reporting.
func (c *Cache) Counters() (hits, misses, evictions uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.evictions
}
