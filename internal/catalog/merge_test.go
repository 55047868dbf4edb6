// internal/catalog/merge_test.go
package catalog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func commonGame(key, source string, price float64, addedAt time.Time) CommonGame {
	return CommonGame{Key: key, Name: key, Price: price, AddedAt: addedAt, Source: source}
}

func TestMergeCommonInterleavesBySortKey(t *testing.T) {
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	primary := []CommonGame{
		commonGame("store-cheap", SourceStore, 5, base),
		commonGame("store-mid", SourceStore, 20, base),
	}
	legacy := []CommonGame{
		commonGame("legacy-low", SourceLegacy, 10, base),
		commonGame("legacy-high", SourceLegacy, 50, base),
	}

	merged := MergeCommon(primary, legacy, SortPriceAsc)

	keys := make([]string, 0, len(merged))
	for _, g := range merged {
		keys = append(keys, g.Key)
	}
	assert.Equal(t, []string{"store-cheap", "legacy-low", "store-mid", "legacy-high"}, keys)
}

func TestMergeCommonStableOnTies(t *testing.T) {
	at := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	primary := []CommonGame{commonGame("from-store", SourceStore, 10, at)}
	legacy := []CommonGame{commonGame("from-legacy", SourceLegacy, 10, at)}

	merged := MergeCommon(primary, legacy, SortPriceAsc)

	assert.Equal(t, "from-store", merged[0].Key)
	assert.Equal(t, "from-legacy", merged[1].Key)
}

func TestMergeCommonDefaultsToNewest(t *testing.T) {
	older := commonGame("older", SourceStore, 10, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	newer := commonGame("newer", SourceLegacy, 10, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))

	merged := MergeCommon([]CommonGame{older}, []CommonGame{newer}, "")

	assert.Equal(t, "newer", merged[0].Key)
}

func TestMergeCommonEmptySources(t *testing.T) {
	assert.Empty(t, MergeCommon(nil, nil, SortNewest))

	only := []CommonGame{commonGame("solo", SourceStore, 1, time.Now())}
	merged := MergeCommon(only, nil, SortNewest)
	assert.Len(t, merged, 1)
}

func pageFixture(n int) []CommonGame {
	items := make([]CommonGame, 0, n)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		items = append(items, commonGame(string(rune('a'+i)), SourceStore, float64(i), base))
	}
	return items
}

func TestPageWindow(t *testing.T) {
	items := pageFixture(25)

	first := PageWindow(items, 1, "10")
	assert.Len(t, first, 10)
	assert.Equal(t, items[0].Key, first[0].Key)

	third := PageWindow(items, 3, "10")
	assert.Len(t, third, 5)
	assert.Equal(t, items[20].Key, third[0].Key)
}

func TestPageWindowBeyondEnd(t *testing.T) {
	out := PageWindow(pageFixture(5), 4, "10")
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestPageWindowClampsLowPages(t *testing.T) {
	items := pageFixture(25)
	assert.Equal(t, PageWindow(items, 1, "10"), PageWindow(items, 0, "10"))
	assert.Equal(t, PageWindow(items, 1, "10"), PageWindow(items, -1, "10"))
}

func TestPageWindowAllReturnsEverything(t *testing.T) {
	items := pageFixture(25)
	assert.Len(t, PageWindow(items, 1, PageSizeAll), 25)
	assert.Len(t, PageWindow(items, 1, "unparsable"), 25)
}
