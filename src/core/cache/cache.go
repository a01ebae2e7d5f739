/*
 * TgSaver - YouTube & JioSaavn Downloader Bot
 *
 *  Licensed under GNU GPL v3
 */

package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value     T
	expiresAt time.Time
}

// Cache is a small in-memory TTL cache. Expired entries are dropped lazily on
// read and swept by a background janitor.
type Cache[T any] struct {
	mu         sync.RWMutex
	entries    map[string]entry[T]
	defaultTTL time.Duration
}

// NewCache creates a cache whose entries live for defaultTTL unless set with
// an explicit TTL.
func NewCache[T any](defaultTTL time.Duration) *Cache[T] {
	c := &Cache[T]{
		entries:    make(map[string]entry[T]),
		defaultTTL: defaultTTL,
	}
	go c.janitor()
	return c
}

// Get returns the value for key if present and not expired.
func (c *Cache[T]) Get(key string) (T, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		var zero T
		return zero, false
	}

	if time.Now().After(e.expiresAt) {
		c.Delete(key)
		var zero T
		return zero, false
	}

	return e.value, true
}

// Set stores value under key with the default TTL.
func (c *Cache[T]) Set(key string, value T) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache[T]) SetWithTTL(key string, value T, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = entry[T]{value: value, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Delete removes key from the cache.
func (c *Cache[T]) Delete(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Clear removes all entries.
func (c *Cache[T]) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]entry[T])
	c.mu.Unlock()
}

// Len reports the number of stored entries, expired ones included.
func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) janitor() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		c.mu.Lock()
		for key, e := range c.entries {
			if now.After(e.expiresAt) {
				delete(c.entries, key)
			}
		}
		c.mu.Unlock()
	}
}
