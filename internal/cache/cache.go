package cache

import (
	"sync"
	"time"
)

type item struct {
	value      interface{}
	expiration int64
}

// Cache is a small in-memory TTL cache. The service uses it to memoize
// the category listing between product writes.
type Cache struct {
	items map[string]item
	mu    sync.RWMutex
	ttl   time.Duration
}

var (
	instance *Cache
	once     sync.Once
)

// Init sets up the process-wide cache with a default TTL.
func Init(defaultTTL time.Duration) *Cache {
	once.Do(func() {
		instance = &Cache{
			items: make(map[string]item),
			ttl:   defaultTTL,
		}
		go instance.cleanupExpired()
	})
	return instance
}

// Get returns the process-wide cache instance.
func Get() *Cache {
	if instance == nil {
		return Init(5 * time.Minute)
	}
	return instance
}

// Set stores a value, with an optional TTL overriding the default.
func (c *Cache) Set(key string, value interface{}, ttl ...time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	duration := c.ttl
	if len(ttl) > 0 {
		duration = ttl[0]
	}

	c.items[key] = item{
		value:      value,
		expiration: time.Now().Add(duration).UnixNano(),
	}
}

// GetValue returns a cached value, reporting whether it exists and is
// still fresh.
func (c *Cache) GetValue(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, found := c.items[key]
	if !found || time.Now().UnixNano() > it.expiration {
		return nil, false
	}
	return it.value, true
}

// Delete removes a key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// Clear drops everything.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item)
}

// Size returns the number of cached items.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *Cache) cleanupExpired() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now().UnixNano()
		for key, it := range c.items {
			if now > it.expiration {
				delete(c.items, key)
			}
		}
		c.mu.Unlock()
	}
}
