package models

import (
	"time"

	"gorm.io/gorm"
)

// Bubble is the feed's primary content unit: a short post with a
// denormalized like counter.
type Bubble struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"user_id"`
	Content   string         `gorm:"type:text;not null" json:"content"`
	Likes     int            `gorm:"not null;default:0" json:"likes"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Bubble) TableName() string { return "bubbles" }

// BubbleWithUser is a bubble hydrated with its author summary. Fan-out
// events and feed responses carry this shape so subscribers never need a
// follow-up fetch.
type BubbleWithUser struct {
	Bubble
	Author UserSummary `json:"user"`
}

func (b *Bubble) WithUser(u *User) *BubbleWithUser {
	hydrated := &BubbleWithUser{Bubble: *b}
	if u != nil {
		hydrated.Author = u.Summary()
	}
	return hydrated
}
