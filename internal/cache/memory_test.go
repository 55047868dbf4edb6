// internal/cache/memory_test.go
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewMemoryCache(100)

	require.NoError(t, c.Set(context.Background(), "key", []byte("value"), 1, time.Minute))

	value, ok, err := c.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("value"), value)

	_, ok, err = c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(100)
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(context.Background(), "key", []byte("value"), 1, 10*time.Minute))

	current = current.Add(9 * time.Minute)
	_, ok, _ := c.Get(context.Background(), "key")
	assert.True(t, ok)

	current = current.Add(2 * time.Minute)
	_, ok, _ = c.Get(context.Background(), "key")
	assert.False(t, ok)

	// Expiry releases the entry's weight.
	assert.Equal(t, int64(0), c.weight)
}

func TestMemoryCacheEvictsExpiredFirst(t *testing.T) {
	c := NewMemoryCache(10)
	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return current }

	require.NoError(t, c.Set(context.Background(), "stale", []byte("a"), 6, time.Minute))
	require.NoError(t, c.Set(context.Background(), "fresh", []byte("b"), 3, time.Hour))

	current = current.Add(2 * time.Minute)
	require.NoError(t, c.Set(context.Background(), "new", []byte("c"), 6, time.Hour))

	_, ok, _ := c.Get(context.Background(), "stale")
	assert.False(t, ok)
	_, ok, _ = c.Get(context.Background(), "fresh")
	assert.True(t, ok, "unexpired entry should survive when evicting expired ones frees enough room")
	_, ok, _ = c.Get(context.Background(), "new")
	assert.True(t, ok)
}

func TestMemoryCacheEvictsWithinBudget(t *testing.T) {
	c := NewMemoryCache(10)

	require.NoError(t, c.Set(context.Background(), "a", []byte("a"), 4, time.Hour))
	require.NoError(t, c.Set(context.Background(), "b", []byte("b"), 4, time.Hour))
	require.NoError(t, c.Set(context.Background(), "c", []byte("c"), 4, time.Hour))

	assert.LessOrEqual(t, c.weight, int64(10))

	_, ok, _ := c.Get(context.Background(), "c")
	assert.True(t, ok, "the incoming entry must survive its own eviction pass")
}

func TestMemoryCacheSetReplacesWeight(t *testing.T) {
	c := NewMemoryCache(100)

	require.NoError(t, c.Set(context.Background(), "key", []byte("old"), 10, time.Hour))
	require.NoError(t, c.Set(context.Background(), "key", []byte("new"), 2, time.Hour))

	assert.Equal(t, int64(2), c.weight)

	value, ok, _ := c.Get(context.Background(), "key")
	assert.True(t, ok)
	assert.Equal(t, []byte("new"), value)
}

func TestMemoryCacheGetOrComputeSharesInFlightResult(t *testing.T) {
	c := NewMemoryCache(1000)

	var computes int64
	compute := func(ctx context.Context) ([]byte, int64, error) {
		atomic.AddInt64(&computes, 1)
		time.Sleep(20 * time.Millisecond)
		return []byte("listing"), 1, nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := c.GetOrCompute(context.Background(), "key", time.Minute, compute)
			assert.NoError(t, err)
			assert.Equal(t, []byte("listing"), value)
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&computes))
}

func TestMemoryCacheGetOrComputeHitSkipsCompute(t *testing.T) {
	c := NewMemoryCache(1000)
	require.NoError(t, c.Set(context.Background(), "key", []byte("cached"), 1, time.Minute))

	value, err := c.GetOrCompute(context.Background(), "key", time.Minute, func(ctx context.Context) ([]byte, int64, error) {
		t.Fatal("compute should not run on a cache hit")
		return nil, 0, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), value)
}

func TestMemoryCacheClose(t *testing.T) {
	c := NewMemoryCache(100)
	require.NoError(t, c.Set(context.Background(), "key", []byte("value"), 1, time.Minute))
	require.NoError(t, c.Close())

	_, ok, _ := c.Get(context.Background(), "key")
	assert.False(t, ok)
}
