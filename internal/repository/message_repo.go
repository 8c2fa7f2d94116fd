package repository

import (
	"bubbles/internal/models"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(m *models.Message) error {
	return r.db.Create(m).Error
}

func (r *MessageRepository) GetByID(id uint) (*models.MessageWithUser, error) {
	var m models.Message
	if err := r.db.Preload("User").First(&m, id).Error; err != nil {
		return nil, err
	}
	return m.WithUser(m.User), nil
}

func (r *MessageRepository) ListByBubble(bubbleID uint) ([]*models.MessageWithUser, error) {
	var messages []models.Message
	if err := r.db.Preload("User").Where("bubble_id = ?", bubbleID).Order("created_at ASC").Find(&messages).Error; err != nil {
		return nil, err
	}
	out := make([]*models.MessageWithUser, 0, len(messages))
	for i := range messages {
		out = append(out, messages[i].WithUser(messages[i].User))
	}
	return out, nil
}
