package models

import "time"

// Message is a chat message posted into a bubble's chat stream.
type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BubbleID  uint      `gorm:"not null;index" json:"bubble_id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

func (Message) TableName() string { return "messages" }

type MessageWithUser struct {
	Message
	Author UserSummary `json:"user"`
}

func (m *Message) WithUser(u *User) *MessageWithUser {
	hydrated := &MessageWithUser{Message: *m}
	if u != nil {
		hydrated.Author = u.Summary()
	}
	return hydrated
}
