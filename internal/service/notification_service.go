package service

import (
	"bubbles/internal/models"
)

// NotificationStore is the ledger surface the service needs; satisfied
// by repository.NotificationRepository.
type NotificationStore interface {
	Create(n *models.Notification) error
	ListByRecipient(userID uint) ([]models.Notification, error)
	MarkAllRead(userID uint) error
	UnreadCount(userID uint) (int64, error)
}

// BubbleGetter hydrates referenced bubbles for notification excerpts.
type BubbleGetter interface {
	GetByID(id uint) (*models.BubbleWithUser, error)
}

type NotificationService struct {
	store      NotificationStore
	bubbles    BubbleGetter
	excerptLen int
}

func NewNotificationService(store NotificationStore, bubbles BubbleGetter, excerptLen int) *NotificationService {
	return &NotificationService{store: store, bubbles: bubbles, excerptLen: excerptLen}
}

// Record inserts one unread notification. A self-notification (actor ==
// recipient) records nothing and is not an error. Repeated identical
// triggers produce repeated rows; the ledger does not deduplicate.
func (s *NotificationService) Record(recipientID uint, kind string, actorID uint, bubbleID *uint) error {
	if recipientID == actorID {
		return nil
	}
	return s.store.Create(&models.Notification{
		RecipientID: recipientID,
		ActorID:     actorID,
		Kind:        kind,
		BubbleID:    bubbleID,
	})
}

// ListFor returns the user's notifications newest first, each hydrated
// with the actor summary and, when a bubble is referenced, a short
// excerpt of its content. No notifications yields an empty slice.
func (s *NotificationService) ListFor(userID uint) ([]models.NotificationView, error) {
	rows, err := s.store.ListByRecipient(userID)
	if err != nil {
		return nil, err
	}
	views := make([]models.NotificationView, 0, len(rows))
	excerpts := make(map[uint]string)
	for i := range rows {
		v := models.NotificationView{Notification: rows[i]}
		if rows[i].Actor != nil {
			v.ActorSummary = rows[i].Actor.Summary()
		}
		if id := rows[i].BubbleID; id != nil {
			excerpt, ok := excerpts[*id]
			if !ok {
				// A deleted bubble just leaves the excerpt empty.
				if b, err := s.bubbles.GetByID(*id); err == nil {
					excerpt = truncate(b.Content, s.excerptLen)
				}
				excerpts[*id] = excerpt
			}
			v.BubbleExcerpt = excerpt
		}
		views = append(views, v)
	}
	return views, nil
}

func (s *NotificationService) MarkAllRead(userID uint) error {
	return s.store.MarkAllRead(userID)
}

func (s *NotificationService) UnreadCount(userID uint) (int64, error) {
	return s.store.UnreadCount(userID)
}

func truncate(text string, limit int) string {
	runes := []rune(text)
	if limit <= 0 || len(runes) <= limit {
		return text
	}
	return string(runes[:limit]) + "…"
}
