package cache

import (
	"sync"
	"time"

	"github.com/labstock/inventory/internal/domain"
)

// DefaultTTL applies when the cache is created without a TTL
const DefaultTTL = time.Hour

const cleanupInterval = 10 * time.Minute

// cacheItem represents a single parse result in the cache with expiration
type cacheItem struct {
	Value      domain.ParsedSpec
	Expiration time.Time
}

// MemoryCache is a thread-safe in-memory parse cache with TTL support.
// Values are copied on the way in and out, so callers may mutate them.
type MemoryCache struct {
	data  map[string]cacheItem
	ttl   time.Duration
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
	now   func() time.Time
}

// NewMemoryCache creates a new in-memory cache whose entries live for ttl
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	cache := &MemoryCache{
		data: make(map[string]cacheItem),
		ttl:  ttl,
		done: make(chan struct{}),
		now:  time.Now,
	}

	// Start cleanup goroutine to remove expired entries every 10 minutes
	go cache.cleanupExpired(cleanupInterval)

	return cache
}

// Get retrieves a parse result from the cache
func (c *MemoryCache) Get(key string) (domain.ParsedSpec, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists || c.now().After(item.Expiration) {
		return domain.ParsedSpec{}, false
	}

	return item.Value.Clone(), true
}

// Set stores a parse result for the configured TTL
func (c *MemoryCache) Set(key string, spec domain.ParsedSpec) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		Value:      spec.Clone(),
		Expiration: c.now().Add(c.ttl),
	}
}

// Delete removes a value from the cache
func (c *MemoryCache) Delete(key string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
}

// cleanupExpired removes expired entries periodically until Close is called
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.done:
			return
		}
	}
}

func (c *MemoryCache) removeExpired() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := c.now()
	for key, item := range c.data {
		if now.After(item.Expiration) {
			delete(c.data, key)
		}
	}
}

// Close stops the cleanup goroutine
func (c *MemoryCache) Close() {
	c.once.Do(func() { close(c.done) })
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
