package repository

import (
	"errors"

	"bubbles/internal/models"

	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

func (r *FollowRepository) Create(followerID, followedID uint) error {
	return r.db.Create(&models.Follow{FollowerID: followerID, FollowedID: followedID}).Error
}

// Remove deletes the follow edge; removing a non-existent edge is a no-op.
func (r *FollowRepository) Remove(followerID, followedID uint) error {
	return r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).
		Delete(&models.Follow{}).Error
}

func (r *FollowRepository) IsFollowing(followerID, followedID uint) (bool, error) {
	var f models.Follow
	err := r.db.Where("follower_id = ? AND followed_id = ?", followerID, followedID).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Followers returns the users following userID.
func (r *FollowRepository) Followers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.followed_id = ?", userID).
		Find(&users).Error
	return users, err
}

// Following returns the users userID follows.
func (r *FollowRepository) Following(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.
		Joins("JOIN follows ON follows.followed_id = users.id").
		Where("follows.follower_id = ?", userID).
		Find(&users).Error
	return users, err
}
