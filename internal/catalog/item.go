// internal/catalog/item.go
package catalog

import (
	"time"
)

// Item source tags.
const (
	SourceStore  = "store"
	SourceLegacy = "legacy"
)

// Item is the capability shared by primary-store games and legacy products.
// Pipeline stages and the merged listing are written against this interface
// rather than either concrete record type.
type Item interface {
	ItemKey() string
	ItemName() string
	ItemPrice() float64
	ItemUnitsInStock() int
	ItemViewCount() int64
	ItemDiscontinued() bool
	ItemAddedAt() time.Time
	ItemCommentCount() int64
}

// CommonGame is the serializable common view of a catalog item from either
// source. It is what the merged listing returns and what the cache stores.
type CommonGame struct {
	Key          string    `json:"key"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	UnitsInStock int       `json:"units_in_stock"`
	ViewCount    int64     `json:"view_count"`
	CommentCount int64     `json:"comment_count"`
	Discontinued bool      `json:"discontinued"`
	AddedAt      time.Time `json:"added_at"`
	Source       string    `json:"source"`
}

func NewCommonGame(source string, item Item) CommonGame {
	return CommonGame{
		Key:          item.ItemKey(),
		Name:         item.ItemName(),
		Price:        item.ItemPrice(),
		UnitsInStock: item.ItemUnitsInStock(),
		ViewCount:    item.ItemViewCount(),
		CommentCount: item.ItemCommentCount(),
		Discontinued: item.ItemDiscontinued(),
		AddedAt:      item.ItemAddedAt(),
		Source:       source,
	}
}

// PagedResult is the listing page returned to the HTTP layer.
type PagedResult struct {
	Items []CommonGame `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Pages int          `json:"pages"`
}
