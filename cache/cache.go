// Package cache provides a small generic LRU cache used for derived
// values such as memoized view transforms.
//
// The cache uses a soft limit: when an insert pushes the entry count
// past the limit, the least recently used quarter of the entries is
// evicted in one pass. Hit/miss counters are atomic so Stats can be
// read without distorting what it measures.
//
// Cache is safe for concurrent use and must not be copied after
// creation (it contains a mutex).
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultCapacity is the soft limit used when New is given a
// non-positive capacity.
const DefaultCapacity = 64

// Cache is a generic thread-safe LRU cache with a soft limit.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
	limit   int
	tick    int64 // monotonic access counter

	hits   atomic.Uint64
	misses atomic.Uint64
}

// entry holds a cached value with its last access tick.
type entry[V any] struct {
	value V
	atime int64
}

// New creates a cache with the given soft limit.
// A capacity <= 0 means DefaultCapacity.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Cache[K, V]{
		entries: make(map[K]*entry[V]),
		limit:   capacity,
	}
}

// Get retrieves a value from the cache.
// Returns (value, true) if found, (zero, false) otherwise.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}

	c.tick++
	e.atime = c.tick
	c.hits.Add(1)
	return e.value, true
}

// Set stores a value in the cache, evicting the least recently used
// entries if the soft limit is exceeded.
func (c *Cache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}

	if len(c.entries) > c.limit {
		c.evictOldest()
	}
}

// GetOrCreate returns the cached value for key, calling create to
// produce it on a miss. create runs under the cache lock, so keep it
// fast.
func (c *Cache[K, V]) GetOrCreate(key K, create func() V) V {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		c.tick++
		e.atime = c.tick
		c.hits.Add(1)
		return e.value
	}

	c.misses.Add(1)
	value := create()

	c.tick++
	c.entries[key] = &entry[V]{value: value, atime: c.tick}
	if len(c.entries) > c.limit {
		c.evictOldest()
	}
	return value
}

// Delete removes an entry from the cache.
// Returns true if the entry was found and removed.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		delete(c.entries, key)
		return true
	}
	return false
}

// Clear removes all entries. Statistics counters are kept; use
// ResetStats to zero them.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*entry[V])
	c.tick = 0
}

// Len returns the number of entries in the cache.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Capacity returns the soft limit of the cache.
func (c *Cache[K, V]) Capacity() int {
	return c.limit
}

// evictOldest removes the least recently used quarter of the entries.
// Caller must hold c.mu.
func (c *Cache[K, V]) evictOldest() {
	target := c.limit * 3 / 4
	if target < 1 {
		target = 1
	}
	toEvict := len(c.entries) - target
	if toEvict <= 0 {
		return
	}

	type aged[K2 comparable] struct {
		key   K2
		atime int64
	}
	all := make([]aged[K], 0, len(c.entries))
	for key, e := range c.entries {
		all = append(all, aged[K]{key: key, atime: e.atime})
	}

	// Selection of the oldest entries; eviction batches are small so a
	// partial selection sort beats a full sort.
	for i := 0; i < toEvict && i < len(all); i++ {
		minIdx := i
		for j := i + 1; j < len(all); j++ {
			if all[j].atime < all[minIdx].atime {
				minIdx = j
			}
		}
		if minIdx != i {
			all[i], all[minIdx] = all[minIdx], all[i]
		}
		delete(c.entries, all[i].key)
	}
}

// Stats contains cache statistics.
type Stats struct {
	// Len is the current number of entries.
	Len int
	// Capacity is the soft limit.
	Capacity int
	// Hits is the number of cache hits.
	Hits uint64
	// Misses is the number of cache misses.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), or 0 when there were no lookups.
	HitRate float64
}

// Stats returns a snapshot of the cache statistics.
func (c *Cache[K, V]) Stats() Stats {
	hits := c.hits.Load()
	misses := c.misses.Load()

	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}

	return Stats{
		Len:      c.Len(),
		Capacity: c.limit,
		Hits:     hits,
		Misses:   misses,
		HitRate:  rate,
	}
}

// ResetStats zeroes the hit/miss counters.
func (c *Cache[K, V]) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}
