// internal/catalog/stages.go
package catalog

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Primary-store stages. Each narrows a *gorm.DB query over games without
// executing it; only the counting stage issues a query of its own (a count,
// not an enumeration).

type nameFilter struct {
	fragment string
}

// NameFilter matches the fragment case-insensitively anywhere in the name.
// An empty fragment is a no-op.
func NameFilter(fragment string) Stage[*gorm.DB] {
	return nameFilter{fragment: fragment}
}

func (s nameFilter) Process(q *gorm.DB) *gorm.DB {
	if s.fragment == "" {
		return q
	}
	return q.Where("LOWER(name) LIKE ?", "%"+escapeLike(strings.ToLower(s.fragment))+"%")
}

// escapeLike quotes LIKE wildcards so the fragment matches literally, the
// same way the in-memory legacy name filter does.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

type minPriceFilter struct {
	bound *float64
}

func MinPriceFilter(bound *float64) Stage[*gorm.DB] {
	return minPriceFilter{bound: bound}
}

func (s minPriceFilter) Process(q *gorm.DB) *gorm.DB {
	if s.bound == nil {
		return q
	}
	return q.Where("price >= ?", *s.bound)
}

type maxPriceFilter struct {
	bound *float64
}

func MaxPriceFilter(bound *float64) Stage[*gorm.DB] {
	return maxPriceFilter{bound: bound}
}

func (s maxPriceFilter) Process(q *gorm.DB) *gorm.DB {
	if s.bound == nil {
		return q
	}
	return q.Where("price <= ?", *s.bound)
}

type genreFilter struct {
	ids []string
}

// GenreFilter restricts to games associated with any of the given genre ids.
// Unparsable ids are dropped; a non-empty list that parses to nothing
// matches zero games, not all of them.
func GenreFilter(ids []string) Stage[*gorm.DB] {
	return genreFilter{ids: ids}
}

func (s genreFilter) Process(q *gorm.DB) *gorm.DB {
	if len(s.ids) == 0 {
		return q
	}
	parsed := ParseUUIDs(s.ids)
	return q.Where("games.id IN (SELECT game_id FROM game_genres WHERE genre_id IN ?)", parsed)
}

type platformFilter struct {
	ids []string
}

func PlatformFilter(ids []string) Stage[*gorm.DB] {
	return platformFilter{ids: ids}
}

func (s platformFilter) Process(q *gorm.DB) *gorm.DB {
	if len(s.ids) == 0 {
		return q
	}
	parsed := ParseUUIDs(s.ids)
	return q.Where("games.id IN (SELECT game_id FROM game_platforms WHERE platform_id IN ?)", parsed)
}

type publisherFilter struct {
	ids []string
}

func PublisherFilter(ids []string) Stage[*gorm.DB] {
	return publisherFilter{ids: ids}
}

func (s publisherFilter) Process(q *gorm.DB) *gorm.DB {
	if len(s.ids) == 0 {
		return q
	}
	parsed := ParseUUIDs(s.ids)
	return q.Where("publisher_id IN ?", parsed)
}

type publishedWithinFilter struct {
	bucket string
	now    func() time.Time
}

// PublishedWithinFilter keeps games added after the bucket cutoff. An
// unrecognized bucket disables the filter.
func PublishedWithinFilter(bucket string) Stage[*gorm.DB] {
	return publishedWithinFilter{bucket: bucket, now: time.Now}
}

func (s publishedWithinFilter) Process(q *gorm.DB) *gorm.DB {
	cutoff, ok := publishedCutoff(s.bucket, s.now())
	if !ok {
		return q
	}
	return q.Where("created_at >= ?", cutoff)
}

type sortStage struct {
	key string
}

// SortStage orders by the requested key, falling back to newest-first for
// unknown or empty keys.
func SortStage(key string) Stage[*gorm.DB] {
	return sortStage{key: key}
}

func (s sortStage) Process(q *gorm.DB) *gorm.DB {
	switch s.key {
	case SortPriceAsc:
		return q.Order("price ASC")
	case SortPriceDesc:
		return q.Order("price DESC")
	case SortMostPopular:
		return q.Order("view_count DESC")
	case SortMostCommented:
		return q.Order("(SELECT COUNT(*) FROM comments WHERE comments.game_id = games.id AND comments.deleted_at IS NULL) DESC")
	default:
		return q.Order("created_at DESC")
	}
}

type paginateStage struct {
	page     int
	pageSize string
}

// PaginateStage slices a single offset/limit window. Pages below 1 clamp to
// the first page; an unparsable or "all" page size leaves the query unchanged.
func PaginateStage(page int, pageSize string) Stage[*gorm.DB] {
	return paginateStage{page: page, pageSize: pageSize}
}

func (s paginateStage) Process(q *gorm.DB) *gorm.DB {
	size, ok := allowedPageSizes[s.pageSize]
	if !ok {
		return q
	}
	page := s.page
	if page < 1 {
		page = 1
	}
	return q.Offset((page - 1) * size).Limit(size)
}

// CountingLimitStage records the pre-pagination total, then bounds the fetch
// to the first page×pageSize rows so the dual-source merge never reads past
// what the requested page window can use. The total is the one observable
// side effect, read by the caller after the pipeline runs.
type CountingLimitStage struct {
	page     int
	pageSize string
	total    int64
	err      error
}

func NewCountingLimitStage(page int, pageSize string) *CountingLimitStage {
	return &CountingLimitStage{page: page, pageSize: pageSize}
}

func (s *CountingLimitStage) Process(q *gorm.DB) *gorm.DB {
	if err := q.Session(&gorm.Session{}).Count(&s.total).Error; err != nil {
		s.err = err
	}

	size, ok := allowedPageSizes[s.pageSize]
	if !ok {
		return q
	}
	page := s.page
	if page < 1 {
		page = 1
	}
	return q.Limit(page * size)
}

func (s *CountingLimitStage) Total() int64 { return s.total }

// Err reports whether the count query issued during Process failed. A failed
// count must not pass off zero as the pre-pagination total.
func (s *CountingLimitStage) Err() error { return s.err }
