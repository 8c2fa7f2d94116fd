package models

import "time"

// Notification is the durable record of "actor did X to recipient
// (about bubble Z)". Rows transition unread -> read exactly once and are
// never deleted here.
type Notification struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	ActorID     uint      `gorm:"not null;index" json:"actor_id"`
	Kind        string    `gorm:"size:20;not null;index" json:"kind"` // follow | like | comment
	BubbleID    *uint     `gorm:"index" json:"bubble_id,omitempty"`
	Read        bool      `gorm:"not null;default:false;index" json:"read"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`

	Actor *User `gorm:"foreignKey:ActorID" json:"-"`
}

func (Notification) TableName() string { return "notifications" }

// NotificationView is a notification hydrated for the client: actor
// summary plus a short excerpt of the referenced bubble, when any.
type NotificationView struct {
	Notification
	ActorSummary  UserSummary `json:"actor"`
	BubbleExcerpt string      `json:"bubble_excerpt,omitempty"`
}
