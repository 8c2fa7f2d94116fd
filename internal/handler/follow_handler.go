package handler

import (
	"net/http"

	"bubbles/internal/middleware"
	"bubbles/internal/repository"
	"bubbles/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowHandler struct {
	feedSvc    *service.FeedService
	followRepo *repository.FollowRepository
}

func NewFollowHandler(feedSvc *service.FeedService, followRepo *repository.FollowRepository) *FollowHandler {
	return &FollowHandler{feedSvc: feedSvc, followRepo: followRepo}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if targetID == userID {
		c.JSON(http.StatusBadRequest, gin.H{"error": "cannot follow yourself"})
		return
	}
	if err := h.feedSvc.Follow(userID, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "follow failed"})
		return
	}
	c.Status(http.StatusCreated)
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := h.feedSvc.Unfollow(userID, targetID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "unfollow failed"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *FollowHandler) Followers(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	users, err := h.followRepo.Followers(targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *FollowHandler) Following(c *gin.Context) {
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	users, err := h.followRepo.Following(targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *FollowHandler) IsFollowing(c *gin.Context) {
	userID := middleware.GetUserID(c)
	targetID, ok := paramID(c, "id")
	if !ok {
		return
	}
	following, err := h.followRepo.IsFollowing(userID, targetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "query failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"is_following": following})
}
