// internal/models/user.go
package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Username     string     `json:"username" gorm:"uniqueIndex;size:50;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string     `json:"-" gorm:"size:255;not null"`
	Role         UserRole   `json:"role" gorm:"type:varchar(20);default:'user'"`
	Status       UserStatus `json:"status" gorm:"type:varchar(20);default:'active'"`
	BannedUntil  *time.Time `json:"banned_until,omitempty"`
	LastLoginAt  *time.Time `json:"last_login_at"`

	// Relationships
	Orders   []Order   `json:"orders,omitempty" gorm:"foreignKey:CustomerID"`
	Comments []Comment `json:"comments,omitempty" gorm:"foreignKey:UserID"`
}

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

// IsBanned reports whether the user is currently barred from commenting.
// A nil BannedUntil with banned status means a permanent ban.
func (u *User) IsBanned(now time.Time) bool {
	if u.Status != UserStatusBanned {
		return false
	}
	if u.BannedUntil == nil {
		return true
	}
	return now.Before(*u.BannedUntil)
}
