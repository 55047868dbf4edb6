// internal/catalog/cache_step_test.go
package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamevault/gamestore-backend/internal/cache"
)

func TestCacheStepComputesOncePerKey(t *testing.T) {
	step := NewCacheStep(cache.NewMemoryCache(1000), time.Minute)

	computes := 0
	compute := func(ctx context.Context) (*CachedCommonGames, error) {
		computes++
		return &CachedCommonGames{
			Items: []CommonGame{{Key: "chai-quest", Source: SourceLegacy}},
			Total: 42,
		}, nil
	}

	criteria := FilterCriteria{Name: "chai", Page: 1, PageSize: "10"}

	first, err := step.GetOrCompute(context.Background(), criteria.CacheKey(), compute)
	require.NoError(t, err)
	second, err := step.GetOrCompute(context.Background(), criteria.CacheKey(), compute)
	require.NoError(t, err)

	assert.Equal(t, 1, computes)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(42), second.Total)
	assert.Equal(t, "chai-quest", second.Items[0].Key)
}

func TestCacheStepDistinctCriteriaComputeSeparately(t *testing.T) {
	step := NewCacheStep(cache.NewMemoryCache(1000), time.Minute)

	computes := 0
	compute := func(ctx context.Context) (*CachedCommonGames, error) {
		computes++
		return &CachedCommonGames{Items: []CommonGame{}}, nil
	}

	pageOne := FilterCriteria{Page: 1, PageSize: "10"}
	pageTwo := FilterCriteria{Page: 2, PageSize: "10"}

	_, err := step.GetOrCompute(context.Background(), pageOne.CacheKey(), compute)
	require.NoError(t, err)
	_, err = step.GetOrCompute(context.Background(), pageTwo.CacheKey(), compute)
	require.NoError(t, err)

	assert.Equal(t, 2, computes)
}

func TestCacheStepDoesNotCacheFailures(t *testing.T) {
	step := NewCacheStep(cache.NewMemoryCache(1000), time.Minute)

	computes := 0
	failing := func(ctx context.Context) (*CachedCommonGames, error) {
		computes++
		if computes == 1 {
			return nil, errors.New("store unavailable")
		}
		return &CachedCommonGames{Total: 1}, nil
	}

	key := FilterCriteria{Page: 1, PageSize: "10"}.CacheKey()

	_, err := step.GetOrCompute(context.Background(), key, failing)
	assert.Error(t, err)

	result, err := step.GetOrCompute(context.Background(), key, failing)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, 2, computes)
}
