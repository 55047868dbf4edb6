// internal/catalog/cache_step.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gamevault/gamestore-backend/internal/cache"
)

// DefaultCacheTTL is the absolute expiration for cached listings.
const DefaultCacheTTL = 10 * time.Minute

// CachedCommonGames is the cache value: the materialized page plus the
// pre-pagination total it was computed with.
type CachedCommonGames struct {
	Items []CommonGame `json:"items"`
	Total int64        `json:"total"`
}

// CacheStep is the terminal caching step of the listing pipeline. It is a
// side channel: it materializes nothing the caller has not already
// materialized and hands the listing back unchanged. Entry weight is the
// item count, feeding the backend's eviction budget.
type CacheStep struct {
	cache cache.Cache
	ttl   time.Duration
}

func NewCacheStep(c cache.Cache, ttl time.Duration) *CacheStep {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CacheStep{cache: c, ttl: ttl}
}

// GetOrCompute returns the cached listing for the criteria-derived key, or
// runs compute and stores its result. The atomicity of concurrent misses is
// the cache backend's contract.
func (s *CacheStep) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (*CachedCommonGames, error)) (*CachedCommonGames, error) {
	payload, err := s.cache.GetOrCompute(ctx, key, s.ttl, func(ctx context.Context) ([]byte, int64, error) {
		games, err := compute(ctx)
		if err != nil {
			return nil, 0, err
		}
		encoded, err := json.Marshal(games)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to encode cached listing: %w", err)
		}
		return encoded, int64(len(games.Items)), nil
	})
	if err != nil {
		return nil, err
	}

	var games CachedCommonGames
	if err := json.Unmarshal(payload, &games); err != nil {
		return nil, fmt.Errorf("failed to decode cached listing: %w", err)
	}
	return &games, nil
}
