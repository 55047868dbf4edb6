// internal/catalog/legacy_stages.go
package catalog

import (
	"sort"
	"strings"
	"time"

	"github.com/gamevault/gamestore-backend/internal/legacy"
)

// Legacy-source stages. The document mirror exposes no composable query
// surface, so these stages narrow an already-fetched product slice with the
// same semantics as their primary-store counterparts.

type legacyNameFilter struct {
	fragment string
}

func LegacyNameFilter(fragment string) Stage[[]legacy.Product] {
	return legacyNameFilter{fragment: fragment}
}

func (s legacyNameFilter) Process(products []legacy.Product) []legacy.Product {
	if s.fragment == "" {
		return products
	}
	fragment := strings.ToLower(s.fragment)
	filtered := products[:0:0]
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.ProductName), fragment) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

type legacyPriceFilter struct {
	min *float64
	max *float64
}

func LegacyPriceFilter(min, max *float64) Stage[[]legacy.Product] {
	return legacyPriceFilter{min: min, max: max}
}

func (s legacyPriceFilter) Process(products []legacy.Product) []legacy.Product {
	if s.min == nil && s.max == nil {
		return products
	}
	filtered := products[:0:0]
	for _, p := range products {
		if s.min != nil && p.UnitPrice < *s.min {
			continue
		}
		if s.max != nil && p.UnitPrice > *s.max {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

type legacyCategoryFilter struct {
	ids []string
}

// LegacyCategoryFilter restricts by the legacy category ids mapped from the
// selected genres. Same silent-drop parsing rule as the primary-store genre
// filter: a non-empty list that parses to nothing matches zero products.
func LegacyCategoryFilter(ids []string) Stage[[]legacy.Product] {
	return legacyCategoryFilter{ids: ids}
}

func (s legacyCategoryFilter) Process(products []legacy.Product) []legacy.Product {
	if len(s.ids) == 0 {
		return products
	}
	wanted := make(map[int]struct{})
	for _, id := range ParseInts(s.ids) {
		wanted[id] = struct{}{}
	}
	filtered := products[:0:0]
	for _, p := range products {
		if _, ok := wanted[p.CategoryID]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

type legacySupplierFilter struct {
	ids []string
}

func LegacySupplierFilter(ids []string) Stage[[]legacy.Product] {
	return legacySupplierFilter{ids: ids}
}

func (s legacySupplierFilter) Process(products []legacy.Product) []legacy.Product {
	if len(s.ids) == 0 {
		return products
	}
	wanted := make(map[int]struct{})
	for _, id := range ParseInts(s.ids) {
		wanted[id] = struct{}{}
	}
	filtered := products[:0:0]
	for _, p := range products {
		if _, ok := wanted[p.SupplierID]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

type legacyPublishedWithinFilter struct {
	bucket string
	now    func() time.Time
}

func LegacyPublishedWithinFilter(bucket string) Stage[[]legacy.Product] {
	return legacyPublishedWithinFilter{bucket: bucket, now: time.Now}
}

func (s legacyPublishedWithinFilter) Process(products []legacy.Product) []legacy.Product {
	cutoff, ok := publishedCutoff(s.bucket, s.now())
	if !ok {
		return products
	}
	filtered := products[:0:0]
	for _, p := range products {
		if !p.AddedAt.Before(cutoff) {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

type legacySortStage struct {
	key string
}

func LegacySortStage(key string) Stage[[]legacy.Product] {
	return legacySortStage{key: key}
}

func (s legacySortStage) Process(products []legacy.Product) []legacy.Product {
	sorted := append([]legacy.Product(nil), products...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return lessItem(&sorted[i], &sorted[j], s.key)
	})
	return sorted
}

// LegacyCountingLimitStage mirrors the primary-store counting stage: it
// records the pre-truncation total, then keeps the first page×pageSize
// products for the merge.
type LegacyCountingLimitStage struct {
	page     int
	pageSize string
	total    int64
}

func NewLegacyCountingLimitStage(page int, pageSize string) *LegacyCountingLimitStage {
	return &LegacyCountingLimitStage{page: page, pageSize: pageSize}
}

func (s *LegacyCountingLimitStage) Process(products []legacy.Product) []legacy.Product {
	s.total = int64(len(products))

	size, ok := allowedPageSizes[s.pageSize]
	if !ok {
		return products
	}
	page := s.page
	if page < 1 {
		page = 1
	}
	if limit := page * size; len(products) > limit {
		return products[:limit]
	}
	return products
}

func (s *LegacyCountingLimitStage) Total() int64 { return s.total }
