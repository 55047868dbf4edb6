// internal/models/game.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Game is a catalog item in the primary store. Key is the URL slug and is
// unique across both stores once a legacy product has been reconciled.
type Game struct {
	BaseModel
	Key          string         `json:"key" gorm:"uniqueIndex;size:255;not null"`
	Name         string         `json:"name" gorm:"size:255;not null"`
	Description  string         `json:"description" gorm:"type:text"`
	Price        float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	UnitsInStock int            `json:"units_in_stock" gorm:"default:0"`
	Discontinued bool           `json:"discontinued" gorm:"default:false"`
	ViewCount    int64          `json:"view_count" gorm:"default:0"`
	ImageURL     string         `json:"image_url,omitempty" gorm:"size:512"`
	Screenshots  pq.StringArray `json:"screenshots,omitempty" gorm:"type:text[]"`
	FileKey      string         `json:"-" gorm:"size:512"`
	PublisherID  *uuid.UUID     `json:"publisher_id" gorm:"type:uuid;index"`

	// Relationships
	Publisher *Publisher `json:"publisher,omitempty" gorm:"foreignKey:PublisherID"`
	Genres    []Genre    `json:"genres,omitempty" gorm:"many2many:game_genres"`
	Platforms []Platform `json:"platforms,omitempty" gorm:"many2many:game_platforms"`
	Comments  []Comment  `json:"comments,omitempty" gorm:"foreignKey:GameID"`
}

// Catalog item capability methods (shared with legacy products).

func (g *Game) ItemKey() string         { return g.Key }
func (g *Game) ItemName() string        { return g.Name }
func (g *Game) ItemPrice() float64      { return g.Price }
func (g *Game) ItemUnitsInStock() int   { return g.UnitsInStock }
func (g *Game) ItemViewCount() int64    { return g.ViewCount }
func (g *Game) ItemDiscontinued() bool  { return g.Discontinued }
func (g *Game) ItemAddedAt() time.Time  { return g.CreatedAt }
func (g *Game) ItemCommentCount() int64 { return int64(len(g.Comments)) }
