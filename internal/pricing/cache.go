package pricing

import (
	"context"
	"sync"
	"time"
)

// Cache is a thread-safe TTL cache for resolved prices, keyed by
// ticker. Expired entries are rejected on read and reaped by a
// background sweep so short-lived entries cannot pin memory.
type Cache struct {
	sweepInterval time.Duration
	mu            sync.RWMutex
	entries       map[string]cacheEntry
}

type cacheEntry struct {
	price     float64
	expiresAt time.Time
}

// NewCache creates an empty Cache that sweeps at the given interval
// once started.
func NewCache(sweepInterval time.Duration) *Cache {
	return &Cache{
		sweepInterval: sweepInterval,
		entries:       make(map[string]cacheEntry),
	}
}

// Get returns the cached price for a key. The boolean is false on a
// miss or when the entry has expired.
func (c *Cache) Get(key string) (float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !e.expiresAt.After(time.Now()) {
		return 0, false
	}
	return e.price, true
}

// SetWithExpiry stores a price under key for the given TTL, replacing
// any existing entry.
func (c *Cache) SetWithExpiry(key string, price float64, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		price:     price,
		expiresAt: time.Now().Add(ttl),
	}
}

// Len returns the number of entries, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Start launches a background goroutine that ticks at the configured
// sweep interval and evicts expired entries. It stops when ctx is
// cancelled.
func (c *Cache) Start(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(c.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case t := <-ticker.C:
				c.sweep(t)
			}
		}
	}()
}

// sweep removes all entries whose expiry has passed.
func (c *Cache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if !e.expiresAt.After(now) {
			delete(c.entries, key)
		}
	}
}
