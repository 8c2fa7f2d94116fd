package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Username     string         `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string         `gorm:"size:255" json:"-"`
	DisplayName  string         `gorm:"size:128" json:"display_name"`
	Bio          string         `gorm:"type:text" json:"bio"`
	AvatarURL    string         `gorm:"size:512" json:"avatar_url"`
	GoogleID     *string        `gorm:"uniqueIndex;size:255" json:"-"` // nil for password signups (avoids duplicate '' on unique index)
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// Summary is the slice of a user embedded in feed payloads and
// notification hydration: enough to render an author line, nothing more.
type UserSummary struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{Username: u.Username, DisplayName: u.DisplayName, AvatarURL: u.AvatarURL}
}
