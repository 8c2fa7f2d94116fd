package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"bubbles/internal/middleware"
	"bubbles/internal/repository"
	"bubbles/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type BubbleHandler struct {
	feedSvc     *service.FeedService
	bubbleRepo  *repository.BubbleRepository
	commentRepo *repository.CommentRepository
	messageRepo *repository.MessageRepository
	trending    int
}

func NewBubbleHandler(feedSvc *service.FeedService, bubbleRepo *repository.BubbleRepository, commentRepo *repository.CommentRepository, messageRepo *repository.MessageRepository, trendingLimit int) *BubbleHandler {
	return &BubbleHandler{
		feedSvc:     feedSvc,
		bubbleRepo:  bubbleRepo,
		commentRepo: commentRepo,
		messageRepo: messageRepo,
		trending:    trendingLimit,
	}
}

// List returns the full feed, newest first.
func (h *BubbleHandler) List(c *gin.Context) {
	list, err := h.bubbleRepo.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *BubbleHandler) Trending(c *gin.Context) {
	list, err := h.bubbleRepo.ListTrending(h.trending)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

type createBubbleRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *BubbleHandler) Create(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var req createBubbleRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	bubble, err := h.feedSvc.CreateBubble(userID, strings.TrimSpace(req.Content))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, bubble)
}

func (h *BubbleHandler) Like(c *gin.Context) {
	userID := middleware.GetUserID(c)
	bubbleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	bubble, err := h.feedSvc.LikeBubble(userID, bubbleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bubble not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "like failed"})
		return
	}
	c.JSON(http.StatusOK, bubble)
}

func (h *BubbleHandler) ListComments(c *gin.Context) {
	bubbleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.commentRepo.ListByBubble(bubbleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

type createCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *BubbleHandler) CreateComment(c *gin.Context) {
	userID := middleware.GetUserID(c)
	bubbleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	comment, err := h.feedSvc.CreateComment(userID, bubbleID, strings.TrimSpace(req.Content))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bubble not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "create failed"})
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *BubbleHandler) ListMessages(c *gin.Context) {
	bubbleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	list, err := h.messageRepo.ListByBubble(bubbleID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}
	c.JSON(http.StatusOK, list)
}

type sendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

func (h *BubbleHandler) SendMessage(c *gin.Context) {
	userID := middleware.GetUserID(c)
	bubbleID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}
	message, err := h.feedSvc.SendMessage(userID, bubbleID, strings.TrimSpace(req.Content))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "bubble not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "send failed"})
		return
	}
	c.JSON(http.StatusCreated, message)
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}
