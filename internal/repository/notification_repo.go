package repository

import (
	"bubbles/internal/models"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

// ListByRecipient returns all notifications for a user, newest first,
// with the actor preloaded. No rows is an empty slice, not an error.
func (r *NotificationRepository) ListByRecipient(userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Preload("Actor").
		Where("recipient_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}

// MarkAllRead flips every unread row owned by userID; idempotent.
func (r *NotificationRepository) MarkAllRead(userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND `read` = ?", userID, false).
		Update("read", true).Error
}

func (r *NotificationRepository) UnreadCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND `read` = ?", userID, false).
		Count(&count).Error
	return count, err
}
