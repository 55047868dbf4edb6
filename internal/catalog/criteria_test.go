// internal/catalog/criteria_test.go
package catalog

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }

func TestCacheKeyDeterministic(t *testing.T) {
	criteria := FilterCriteria{
		Name:      "star",
		MinPrice:  floatPtr(9.99),
		Genres:    []string{"a", "b"},
		Platforms: []string{"pc"},
		Sort:      SortPriceAsc,
		Page:      2,
		PageSize:  "20",
	}

	assert.Equal(t, criteria.CacheKey(), criteria.CacheKey())
}

func TestCacheKeyIgnoresIdOrder(t *testing.T) {
	first := FilterCriteria{Genres: []string{"a", "b", "c"}, Page: 1, PageSize: "10"}
	second := FilterCriteria{Genres: []string{"c", "a", "b"}, Page: 1, PageSize: "10"}

	assert.Equal(t, first.CacheKey(), second.CacheKey())
}

func TestCacheKeyIncludesPagination(t *testing.T) {
	base := FilterCriteria{Name: "star", Page: 1, PageSize: "10"}

	nextPage := base
	nextPage.Page = 2
	assert.NotEqual(t, base.CacheKey(), nextPage.CacheKey())

	biggerPage := base
	biggerPage.PageSize = "20"
	assert.NotEqual(t, base.CacheKey(), biggerPage.CacheKey())
}

func TestCacheKeyDistinguishesFilters(t *testing.T) {
	base := FilterCriteria{Page: 1, PageSize: "10"}
	named := base
	named.Name = "star"
	priced := base
	priced.MaxPrice = floatPtr(49.99)

	keys := map[string]bool{
		base.CacheKey():   true,
		named.CacheKey():  true,
		priced.CacheKey(): true,
	}
	assert.Len(t, keys, 3)
}

func TestCacheKeyNormalizesSort(t *testing.T) {
	unknown := FilterCriteria{Sort: "bogus", Page: 1, PageSize: "10"}
	newest := FilterCriteria{Sort: SortNewest, Page: 1, PageSize: "10"}

	assert.Equal(t, newest.CacheKey(), unknown.CacheKey())
}

func TestEffectivePageClampsToFirst(t *testing.T) {
	assert.Equal(t, 1, FilterCriteria{Page: 0}.EffectivePage())
	assert.Equal(t, 1, FilterCriteria{Page: -3}.EffectivePage())
	assert.Equal(t, 7, FilterCriteria{Page: 7}.EffectivePage())
}

func TestPageSizeValue(t *testing.T) {
	for _, size := range []string{"10", "20", "50", "100"} {
		value, ok := FilterCriteria{PageSize: size}.PageSizeValue()
		assert.True(t, ok)
		assert.Greater(t, value, 0)
	}

	for _, size := range []string{PageSizeAll, "", "15", "banana"} {
		_, ok := FilterCriteria{PageSize: size}.PageSizeValue()
		assert.False(t, ok, "page size %q should disable pagination", size)
	}
}

func TestEffectiveSortFallsBackToNewest(t *testing.T) {
	assert.Equal(t, SortNewest, FilterCriteria{}.EffectiveSort())
	assert.Equal(t, SortNewest, FilterCriteria{Sort: "bogus"}.EffectiveSort())
	assert.Equal(t, SortPriceDesc, FilterCriteria{Sort: SortPriceDesc}.EffectiveSort())
}

func TestPages(t *testing.T) {
	criteria := FilterCriteria{PageSize: "10"}

	assert.Equal(t, 1, criteria.Pages(0))
	assert.Equal(t, 1, criteria.Pages(10))
	assert.Equal(t, 2, criteria.Pages(11))
	assert.Equal(t, 5, criteria.Pages(41))

	unpaginated := FilterCriteria{PageSize: PageSizeAll}
	assert.Equal(t, 1, unpaginated.Pages(1234))
}

func TestParseUUIDsDropsUnparsable(t *testing.T) {
	valid := uuid.New()

	parsed := ParseUUIDs([]string{valid.String(), "not-a-uuid", ""})
	assert.Equal(t, []uuid.UUID{valid}, parsed)

	// A non-empty input that parses to nothing stays distinguishable from
	// nil input: the caller still applies a zero-match filter.
	parsed = ParseUUIDs([]string{"junk"})
	assert.NotNil(t, parsed)
	assert.Empty(t, parsed)
}

func TestParseIntsDropsUnparsable(t *testing.T) {
	assert.Equal(t, []int{3, 7}, ParseInts([]string{"3", "x", "7"}))
	assert.Empty(t, ParseInts([]string{"abc"}))
}

func TestPublishedCutoff(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	cutoff, ok := publishedCutoff(PublishedLastWeek, now)
	assert.True(t, ok)
	assert.Equal(t, now.AddDate(0, 0, -7), cutoff)

	cutoff, ok = publishedCutoff(PublishedLastTwoYears, now)
	assert.True(t, ok)
	assert.Equal(t, now.AddDate(-2, 0, 0), cutoff)

	_, ok = publishedCutoff("sometime", now)
	assert.False(t, ok)
}
