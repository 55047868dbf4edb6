// internal/models/comment.go
package models

import (
	"github.com/google/uuid"
)

// Comment on a game. A reply carries ParentID; a quote carries the quoted
// body verbatim so the thread survives deletion of the quoted comment.
// Deleted comments stay in the table with their body replaced at render time.
type Comment struct {
	BaseModel
	GameID     uuid.UUID     `json:"game_id" gorm:"type:uuid;not null;index"`
	UserID     *uuid.UUID    `json:"user_id" gorm:"type:uuid;index"`
	AuthorName string        `json:"author_name" gorm:"size:100;not null"`
	Body       string        `json:"body" gorm:"type:text;not null"`
	Quote      string        `json:"quote,omitempty" gorm:"type:text"`
	ParentID   *uuid.UUID    `json:"parent_id" gorm:"type:uuid;index"`
	Status     CommentStatus `json:"status" gorm:"type:varchar(20);default:'visible';index"`

	Game    *Game     `json:"game,omitempty" gorm:"foreignKey:GameID"`
	User    *User     `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Parent  *Comment  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}
