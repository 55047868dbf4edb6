// internal/cache/memory.go
package cache

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

type memoryEntry struct {
	value     []byte
	weight    int64
	expiresAt time.Time
}

// MemoryCache is an in-process cache with absolute expiration and a total
// weight budget. GetOrCompute is atomic per key: concurrent misses for the
// same key run compute exactly once and share the result.
type MemoryCache struct {
	mtx       sync.RWMutex
	entries   map[string]memoryEntry
	weight    int64
	maxWeight int64
	group     singleflight.Group
	now       func() time.Time
}

func NewMemoryCache(maxWeight int64) *MemoryCache {
	return &MemoryCache{
		entries:   make(map[string]memoryEntry),
		maxWeight: maxWeight,
		now:       time.Now,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mtx.RLock()
	entry, ok := c.entries[key]
	c.mtx.RUnlock()

	if !ok {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mtx.Lock()
		c.removeLocked(key)
		c.mtx.Unlock()
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, weight int64, ttl time.Duration) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.removeLocked(key)
	c.evictLocked(weight)

	c.entries[key] = memoryEntry{
		value:     value,
		weight:    weight,
		expiresAt: c.now().Add(ttl),
	}
	c.weight += weight
	return nil
}

func (c *MemoryCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	if value, ok, _ := c.Get(ctx, key); ok {
		return value, nil
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		// Re-check under the flight: a concurrent caller may have stored
		// the value between our miss and acquiring the flight.
		if value, ok, _ := c.Get(ctx, key); ok {
			return value, nil
		}

		value, weight, err := compute(ctx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(ctx, key, value, weight, ttl); err != nil {
			return nil, err
		}
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]byte), nil
}

func (c *MemoryCache) Close() error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.entries = make(map[string]memoryEntry)
	c.weight = 0
	return nil
}

// removeLocked deletes an entry and releases its weight. Caller holds mtx.
func (c *MemoryCache) removeLocked(key string) {
	if entry, ok := c.entries[key]; ok {
		c.weight -= entry.weight
		delete(c.entries, key)
	}
}

// evictLocked frees room for an incoming entry: expired entries first, then
// arbitrary entries until the budget fits. Caller holds mtx.
func (c *MemoryCache) evictLocked(incoming int64) {
	if c.maxWeight <= 0 {
		return
	}

	now := c.now()
	for key, entry := range c.entries {
		if now.After(entry.expiresAt) {
			c.removeLocked(key)
		}
	}

	for key := range c.entries {
		if c.weight+incoming <= c.maxWeight {
			break
		}
		c.removeLocked(key)
	}
}
