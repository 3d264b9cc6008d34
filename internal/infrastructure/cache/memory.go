package cache

import (
	"context"
	"sync"
	"time"

	"github.com/acebot/backend/internal/domain"
)

// cacheItem represents a single item in the cache with expiration
type cacheItem struct {
	value      []domain.SiteResult
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory cache with TTL support and a
// capacity bound. Values are stored as-is: they are derived deterministically
// from the key, so repeat hits return bit-identical results.
type MemoryCache struct {
	data       map[string]cacheItem
	maxEntries int
	mutex      sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache. maxEntries <= 0 disables the
// capacity bound.
func NewMemoryCache(maxEntries int) *MemoryCache {
	c := &MemoryCache{
		data:       make(map[string]cacheItem),
		maxEntries: maxEntries,
	}

	// Cleanup goroutine removes expired entries every 10 minutes
	go c.cleanupExpired()

	return c
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]domain.SiteResult, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	return item.value, nil
}

// Set stores a value in the cache with TTL. Writes for the same key are
// last-writer-wins. At capacity, the entry closest to expiry is evicted.
func (c *MemoryCache) Set(ctx context.Context, key string, value []domain.SiteResult, ttl time.Duration) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if _, exists := c.data[key]; !exists && c.maxEntries > 0 && len(c.data) >= c.maxEntries {
		c.evictOneLocked()
	}

	c.data[key] = cacheItem{
		value:      value,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// evictOneLocked drops the entry with the nearest expiration, which is the
// expired or oldest one under a uniform TTL. Caller holds the write lock.
func (c *MemoryCache) evictOneLocked() {
	var victim string
	var victimExp time.Time
	for key, item := range c.data {
		if victim == "" || item.expiration.Before(victimExp) {
			victim = key
			victimExp = item.expiration
		}
	}
	if victim != "" {
		delete(c.data, victim)
	}
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of items in the cache (for debugging/monitoring)
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
