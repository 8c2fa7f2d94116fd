package models

import "time"

type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BubbleID  uint      `gorm:"not null;index" json:"bubble_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Comment) TableName() string { return "comments" }

type CommentWithUser struct {
	Comment
	Author UserSummary `json:"user"`
}

func (c *Comment) WithUser(u *User) *CommentWithUser {
	hydrated := &CommentWithUser{Comment: *c}
	if u != nil {
		hydrated.Author = u.Summary()
	}
	return hydrated
}
