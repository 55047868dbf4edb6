// internal/catalog/merge.go
package catalog

import (
	"sort"
	"time"
)

// CommonGame satisfies Item so the merged view sorts with the same
// comparator the per-source stages use.

func (g CommonGame) ItemKey() string         { return g.Key }
func (g CommonGame) ItemName() string        { return g.Name }
func (g CommonGame) ItemPrice() float64      { return g.Price }
func (g CommonGame) ItemUnitsInStock() int   { return g.UnitsInStock }
func (g CommonGame) ItemViewCount() int64    { return g.ViewCount }
func (g CommonGame) ItemDiscontinued() bool  { return g.Discontinued }
func (g CommonGame) ItemAddedAt() time.Time  { return g.AddedAt }
func (g CommonGame) ItemCommentCount() int64 { return g.CommentCount }

// lessItem is the single ordering definition behind every sort key. Unknown
// keys order newest-first.
func lessItem(a, b Item, key string) bool {
	switch key {
	case SortPriceAsc:
		return a.ItemPrice() < b.ItemPrice()
	case SortPriceDesc:
		return a.ItemPrice() > b.ItemPrice()
	case SortMostPopular:
		return a.ItemViewCount() > b.ItemViewCount()
	case SortMostCommented:
		return a.ItemCommentCount() > b.ItemCommentCount()
	default:
		return a.ItemAddedAt().After(b.ItemAddedAt())
	}
}

// MergeCommon combines per-source results into one ordered listing. Both
// inputs are already filtered and sorted; the merge re-sorts stably so
// equal-keyed items keep primary-store items ahead of legacy ones.
func MergeCommon(primary, legacy []CommonGame, sortKey string) []CommonGame {
	merged := make([]CommonGame, 0, len(primary)+len(legacy))
	merged = append(merged, primary...)
	merged = append(merged, legacy...)

	sort.SliceStable(merged, func(i, j int) bool {
		return lessItem(merged[i], merged[j], sortKey)
	})
	return merged
}

// PageWindow slices the requested offset/limit window out of the merged
// listing. Pages below 1 clamp to the first page; an unparsable or "all"
// page size returns the whole listing.
func PageWindow(items []CommonGame, page int, pageSize string) []CommonGame {
	size, ok := allowedPageSizes[pageSize]
	if !ok {
		return items
	}
	if page < 1 {
		page = 1
	}

	offset := (page - 1) * size
	if offset >= len(items) {
		return []CommonGame{}
	}
	end := offset + size
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}
