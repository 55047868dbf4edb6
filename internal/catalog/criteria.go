// internal/catalog/criteria.go
package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Sort keys. Unknown keys fall back to newest.
const (
	SortNewest        = "newest"
	SortPriceAsc      = "priceAsc"
	SortPriceDesc     = "priceDesc"
	SortMostCommented = "mostCommented"
	SortMostPopular   = "mostPopular"
)

// Publish-date buckets. An unrecognized bucket disables date filtering.
const (
	PublishedLastWeek       = "week"
	PublishedLastMonth      = "month"
	PublishedLastYear       = "year"
	PublishedLastTwoYears   = "twoYears"
	PublishedLastThreeYears = "threeYears"
)

// PageSizeAll disables pagination.
const PageSizeAll = "all"

var allowedPageSizes = map[string]int{
	"10":  10,
	"20":  20,
	"50":  50,
	"100": 100,
}

// FilterCriteria is the per-request filter/sort/page bundle. Id lists carry
// raw strings from the query; stages parse them and silently drop unparsable
// entries.
type FilterCriteria struct {
	Name            string   `json:"name,omitempty"`
	MinPrice        *float64 `json:"min_price,omitempty"`
	MaxPrice        *float64 `json:"max_price,omitempty"`
	Genres          []string `json:"genres,omitempty"`
	Platforms       []string `json:"platforms,omitempty"`
	Publishers      []string `json:"publishers,omitempty"`
	PublishedWithin string   `json:"published_within,omitempty"`
	Sort            string   `json:"sort,omitempty"`
	Page            int      `json:"page"`
	PageSize        string   `json:"page_size"`
}

// EffectivePage clamps page numbers below 1 to the first page.
func (c FilterCriteria) EffectivePage() int {
	if c.Page < 1 {
		return 1
	}
	return c.Page
}

// PageSizeValue returns the numeric page size. ok is false for "all",
// unset, and unparsable sizes, all of which disable pagination.
func (c FilterCriteria) PageSizeValue() (int, bool) {
	size, ok := allowedPageSizes[c.PageSize]
	return size, ok
}

// EffectiveSort maps unknown and empty sort keys to newest-first.
func (c FilterCriteria) EffectiveSort() string {
	switch c.Sort {
	case SortPriceAsc, SortPriceDesc, SortMostCommented, SortMostPopular, SortNewest:
		return c.Sort
	default:
		return SortNewest
	}
}

// Pages derives the page count from a pre-pagination total. A single page
// covers everything when pagination is disabled.
func (c FilterCriteria) Pages(total int64) int {
	size, ok := c.PageSizeValue()
	if !ok {
		return 1
	}
	pages := int(math.Ceil(float64(total) / float64(size)))
	if pages < 1 {
		pages = 1
	}
	return pages
}

// CacheKey derives a deterministic key from the full criteria, pagination
// included, so distinct queries never collide and identical queries always
// hit. Id lists are sorted so parameter order does not fragment the cache.
func (c FilterCriteria) CacheKey() string {
	var b strings.Builder
	b.WriteString("name=" + strings.ToLower(c.Name))
	b.WriteString("|min=")
	if c.MinPrice != nil {
		b.WriteString(strconv.FormatFloat(*c.MinPrice, 'f', -1, 64))
	}
	b.WriteString("|max=")
	if c.MaxPrice != nil {
		b.WriteString(strconv.FormatFloat(*c.MaxPrice, 'f', -1, 64))
	}
	b.WriteString("|genres=" + joinSorted(c.Genres))
	b.WriteString("|platforms=" + joinSorted(c.Platforms))
	b.WriteString("|publishers=" + joinSorted(c.Publishers))
	b.WriteString("|published=" + c.PublishedWithin)
	b.WriteString("|sort=" + c.EffectiveSort())
	b.WriteString(fmt.Sprintf("|page=%d|size=%s", c.EffectivePage(), c.PageSize))

	sum := sha256.Sum256([]byte(b.String()))
	return "games:" + hex.EncodeToString(sum[:])
}

func joinSorted(values []string) string {
	sorted := append([]string(nil), values...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

// ParseUUIDs parses id strings for the primary store, silently dropping
// unparsable entries. A non-empty input that parses to nothing must still
// restrict the filter to zero matches, so callers distinguish nil input
// from an empty parsed set.
func ParseUUIDs(values []string) []uuid.UUID {
	parsed := make([]uuid.UUID, 0, len(values))
	for _, v := range values {
		if id, err := uuid.Parse(v); err == nil {
			parsed = append(parsed, id)
		}
	}
	return parsed
}

// ParseInts parses legacy numeric ids with the same silent-drop policy.
func ParseInts(values []string) []int {
	parsed := make([]int, 0, len(values))
	for _, v := range values {
		if id, err := strconv.Atoi(v); err == nil {
			parsed = append(parsed, id)
		}
	}
	return parsed
}

// publishedCutoff resolves a bucket to its cutoff instant. ok is false for
// unrecognized buckets.
func publishedCutoff(bucket string, now time.Time) (time.Time, bool) {
	switch bucket {
	case PublishedLastWeek:
		return now.AddDate(0, 0, -7), true
	case PublishedLastMonth:
		return now.AddDate(0, -1, 0), true
	case PublishedLastYear:
		return now.AddDate(-1, 0, 0), true
	case PublishedLastTwoYears:
		return now.AddDate(-2, 0, 0), true
	case PublishedLastThreeYears:
		return now.AddDate(-3, 0, 0), true
	default:
		return time.Time{}, false
	}
}
