package repository

import (
	"bubbles/internal/models"

	"gorm.io/gorm"
)

type BubbleRepository struct {
	db *gorm.DB
}

func NewBubbleRepository(db *gorm.DB) *BubbleRepository {
	return &BubbleRepository{db: db}
}

func (r *BubbleRepository) Create(b *models.Bubble) error {
	return r.db.Create(b).Error
}

// GetByID returns the bubble hydrated with its author summary.
func (r *BubbleRepository) GetByID(id uint) (*models.BubbleWithUser, error) {
	var b models.Bubble
	if err := r.db.Preload("User").First(&b, id).Error; err != nil {
		return nil, err
	}
	return b.WithUser(b.User), nil
}

func (r *BubbleRepository) List() ([]*models.BubbleWithUser, error) {
	var bubbles []models.Bubble
	if err := r.db.Preload("User").Order("created_at DESC").Find(&bubbles).Error; err != nil {
		return nil, err
	}
	return hydrateBubbles(bubbles), nil
}

func (r *BubbleRepository) ListByUser(userID uint) ([]*models.BubbleWithUser, error) {
	var bubbles []models.Bubble
	if err := r.db.Preload("User").Where("user_id = ?", userID).Order("created_at DESC").Find(&bubbles).Error; err != nil {
		return nil, err
	}
	return hydrateBubbles(bubbles), nil
}

func (r *BubbleRepository) ListTrending(limit int) ([]*models.BubbleWithUser, error) {
	var bubbles []models.Bubble
	if err := r.db.Preload("User").Order("likes DESC, created_at DESC").Limit(limit).Find(&bubbles).Error; err != nil {
		return nil, err
	}
	return hydrateBubbles(bubbles), nil
}

// IncrementLikes bumps the denormalized like counter by one.
func (r *BubbleRepository) IncrementLikes(id uint) error {
	res := r.db.Model(&models.Bubble{}).Where("id = ?", id).UpdateColumn("likes", gorm.Expr("likes + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func hydrateBubbles(bubbles []models.Bubble) []*models.BubbleWithUser {
	out := make([]*models.BubbleWithUser, 0, len(bubbles))
	for i := range bubbles {
		out = append(out, bubbles[i].WithUser(bubbles[i].User))
	}
	return out
}
