package repository

import (
	"bubbles/internal/models"

	"gorm.io/gorm"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(c *models.Comment) error {
	return r.db.Create(c).Error
}

func (r *CommentRepository) GetByID(id uint) (*models.CommentWithUser, error) {
	var c models.Comment
	if err := r.db.Preload("User").First(&c, id).Error; err != nil {
		return nil, err
	}
	return c.WithUser(c.User), nil
}

func (r *CommentRepository) ListByBubble(bubbleID uint) ([]*models.CommentWithUser, error) {
	var comments []models.Comment
	if err := r.db.Preload("User").Where("bubble_id = ?", bubbleID).Order("created_at ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	out := make([]*models.CommentWithUser, 0, len(comments))
	for i := range comments {
		out = append(out, comments[i].WithUser(comments[i].User))
	}
	return out, nil
}
