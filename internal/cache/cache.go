// internal/cache/cache.go
package cache

import (
	"context"
	"time"
)

// Cache is the process-wide response cache. Values are opaque byte payloads;
// weight feeds the backend's size-bounded eviction accounting.
//
// GetOrCompute must return the cached value on a hit and otherwise invoke
// compute and store its result. Implementations define how concurrent misses
// on the same key behave: the memory backend computes once per key, the Redis
// backend is last-writer-wins.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, weight int64, ttl time.Duration) error
	GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error)
	Close() error
}

// ComputeFunc produces a value and its weight for a missing key.
type ComputeFunc func(ctx context.Context) (value []byte, weight int64, err error)
