// Package ttlcache provides a small mutex-guarded key/value store whose
// entries expire lazily: an expired entry is evicted by the read that finds
// it, so the map never grows beyond live keys under repeated access. There
// is no background sweeping.
package ttlcache

import (
	"sync"
	"time"
)

type entry[V any] struct {
	value    V
	expireAt time.Time
}

// Cache maps keys to values with a per-entry time-to-live.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]entry[V]
	now     func() time.Time
}

// New returns a cache backed by the system clock.
func New[K comparable, V any]() *Cache[K, V] {
	return NewWithClock[K, V](time.Now)
}

// NewWithClock returns a cache that reads the current time from now.
// Tests inject a fake clock here.
func NewWithClock[K comparable, V any](now func() time.Time) *Cache[K, V] {
	return &Cache[K, V]{entries: make(map[K]entry[V]), now: now}
}

// Get returns the live value for key. A found-but-expired entry is evicted
// and reported as absent.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().After(e.expireAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set inserts or overwrites key unconditionally with the given TTL.
func (c *Cache[K, V]) Set(key K, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry[V]{value: value, expireAt: c.now().Add(ttl)}
}

// Delete removes key. Deleting an absent key is a no-op.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
