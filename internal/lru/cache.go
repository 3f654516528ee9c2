// Package lru is a sharded, size-bounded LRU cache used to memoize glyph
// paths across goroutines.
package lru

import (
	"hash/maphash"
	"sync"
	"sync/atomic"
)

const (
	// shardCount must be a power of two.
	shardCount = 8
	shardMask  = shardCount - 1

	// DefaultCapacity is the per-shard capacity used when New is given a
	// non-positive value.
	DefaultCapacity = 128
)

// Stats is a snapshot of cache counters.
type Stats struct {
	Len       int
	Hits      uint64
	Misses    uint64
	Evictions uint64
}

// HitRate returns Hits/(Hits+Misses), or 0 before the first lookup.
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

type entry[K comparable, V any] struct {
	value V
	elem  *node[K]
}

type shard[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[K, V]
	order   list[K]
}

// Cache maps keys to values with per-shard LRU eviction. It is safe for
// concurrent use and must not be copied.
type Cache[K comparable, V any] struct {
	seed     maphash.Seed
	capacity int
	shards   [shardCount]shard[K, V]

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

// New returns a cache holding up to capacity entries per shard.
func New[K comparable, V any](capacity int) *Cache[K, V] {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	c := &Cache[K, V]{
		seed:     maphash.MakeSeed(),
		capacity: capacity,
	}
	for i := range c.shards {
		c.shards[i].entries = make(map[K]*entry[K, V])
	}
	return c
}

func (c *Cache[K, V]) shardFor(key K) *shard[K, V] {
	return &c.shards[maphash.Comparable(c.seed, key)&shardMask]
}

// Get returns the value cached for key and marks it recently used.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	s := c.shardFor(key)
	s.mu.Lock()
	e, ok := s.entries[key]
	if ok {
		s.order.touch(e.elem)
	}
	s.mu.Unlock()

	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	c.hits.Add(1)
	return e.value, true
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// create runs with the shard locked, so concurrent callers for the same
// key wait for one result. A non-nil error from create is returned and
// nothing is cached.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, error)) (V, error) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		s.order.touch(e.elem)
		c.hits.Add(1)
		return e.value, nil
	}
	c.misses.Add(1)

	v, err := create()
	if err != nil {
		return v, err
	}
	c.insertLocked(s, key, v)
	return v, nil
}

// Set stores value under key, evicting the least recently used entries of
// the shard when it is full.
func (c *Cache[K, V]) Set(key K, value V) {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.value = value
		s.order.touch(e.elem)
		return
	}
	c.insertLocked(s, key, value)
}

func (c *Cache[K, V]) insertLocked(s *shard[K, V], key K, value V) {
	for s.order.len() >= c.capacity {
		old, ok := s.order.popBack()
		if !ok {
			break
		}
		delete(s.entries, old)
		c.evictions.Add(1)
	}
	s.entries[key] = &entry[K, V]{value: value, elem: s.order.pushFront(key)}
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	s := c.shardFor(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return false
	}
	s.order.remove(e.elem)
	delete(s.entries, key)
	return true
}

// Clear drops every entry. Counters are kept.
func (c *Cache[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		clear(s.entries)
		s.order.reset()
		s.mu.Unlock()
	}
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Capacity returns the total number of entries the cache can hold.
func (c *Cache[K, V]) Capacity() int {
	return c.capacity * shardCount
}

// Stats returns the current counters.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{
		Len:       c.Len(),
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Evictions: c.evictions.Load(),
	}
}
