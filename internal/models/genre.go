// internal/models/genre.go
package models

import (
	"github.com/google/uuid"
)

// Genre is hierarchical: strategy has RTS/TBS children and so on. Genres
// created by the legacy reconciliation carry the source category id.
type Genre struct {
	BaseModel
	Name             string     `json:"name" gorm:"uniqueIndex;size:100;not null"`
	ParentID         *uuid.UUID `json:"parent_id" gorm:"type:uuid;index"`
	LegacyCategoryID *int       `json:"-" gorm:"index"`

	Parent   *Genre  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Children []Genre `json:"children,omitempty" gorm:"foreignKey:ParentID"`
	Games    []Game  `json:"games,omitempty" gorm:"many2many:game_genres"`
}

type Platform struct {
	BaseModel
	Type string `json:"type" gorm:"uniqueIndex;size:100;not null"`

	Games []Game `json:"games,omitempty" gorm:"many2many:game_platforms"`
}

// Publisher of one or more games. Publishers created by the legacy
// reconciliation carry the source supplier id.
type Publisher struct {
	BaseModel
	CompanyName      string `json:"company_name" gorm:"uniqueIndex;size:255;not null"`
	Description      string `json:"description" gorm:"type:text"`
	HomePage         string `json:"home_page" gorm:"size:512"`
	LegacySupplierID *int   `json:"-" gorm:"index"`

	Games []Game `json:"games,omitempty" gorm:"foreignKey:PublisherID"`
}
