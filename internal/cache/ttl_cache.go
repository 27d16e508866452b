// Package cache holds a small in-memory TTL cache used on hot read paths,
// currently channel preference lookups during dispatch.
package cache

import (
	"sync"
	"time"
)

// Cache is the read-through interface the notification service depends on.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Delete(key K)
}

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// TTLCache stores values with per-entry expiry. Expired entries are dropped
// on read and opportunistically on write.
type TTLCache[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]entry[V]
}

func NewTTLCache[K comparable, V any]() *TTLCache[K, V] {
	return &TTLCache[K, V]{items: make(map[K]entry[V])}
}

func (c *TTLCache[K, V]) Get(key K) (V, bool) {
	var zero V
	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if item.expired(time.Now()) {
		c.Delete(key)
		return zero, false
	}
	return item.value, true
}

func (c *TTLCache[K, V]) Set(key K, value V, ttl time.Duration) {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}
	now := time.Now()
	c.mu.Lock()
	for k, item := range c.items {
		if item.expired(now) {
			delete(c.items, k)
		}
	}
	c.items[key] = entry[V]{value: value, expiresAt: expiresAt}
	c.mu.Unlock()
}

func (c *TTLCache[K, V]) Delete(key K) {
	c.mu.Lock()
	delete(c.items, key)
	c.mu.Unlock()
}

func (e entry[V]) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// Disabled never caches; used when the preference cache TTL is zero.
type Disabled[K comparable, V any] struct{}

func (Disabled[K, V]) Get(key K) (V, bool) {
	var zero V
	return zero, false
}

func (Disabled[K, V]) Set(key K, value V, ttl time.Duration) {}

func (Disabled[K, V]) Delete(key K) {}
