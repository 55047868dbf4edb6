// internal/cache/redis.go
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/gamevault/gamestore-backend/internal/config"
)

// RedisCache backs the response cache with a shared Redis instance so cached
// pages survive restarts and are shared across replicas. Redis manages its own
// memory budget, so the per-entry weight is recorded only for observability.
//
// Concurrent misses on the same key are last-writer-wins: both callers compute
// and both write, wasting work but not corrupting state.
type RedisCache struct {
	rdb *redis.Client
}

func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisCache{rdb: rdb}, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return value, true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, value []byte, weight int64, ttl time.Duration) error {
	pipe := c.rdb.TxPipeline()
	pipe.Set(ctx, key, value, ttl)
	pipe.Set(ctx, key+":weight", weight, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

func (c *RedisCache) GetOrCompute(ctx context.Context, key string, ttl time.Duration, compute ComputeFunc) ([]byte, error) {
	if value, ok, err := c.Get(ctx, key); err != nil {
		return nil, err
	} else if ok {
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
}

func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
