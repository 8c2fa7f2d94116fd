package service

import (
	"log"

	"bubbles/internal/domain"
	"bubbles/internal/models"
	"bubbles/internal/ws"
)

// Stores consumed by the feed glue; satisfied by the gorm repositories.
type BubbleStore interface {
	Create(b *models.Bubble) error
	GetByID(id uint) (*models.BubbleWithUser, error)
	IncrementLikes(id uint) error
}

type CommentStore interface {
	Create(c *models.Comment) error
	GetByID(id uint) (*models.CommentWithUser, error)
}

type MessageStore interface {
	Create(m *models.Message) error
	GetByID(id uint) (*models.MessageWithUser, error)
}

type FollowStore interface {
	Create(followerID, followedID uint) error
	Remove(followerID, followedID uint) error
}

// Publisher is the fan-out side; satisfied by *ws.Hub.
type Publisher interface {
	Publish(ev ws.Event)
}

// Notifier is the ledger side; satisfied by *NotificationService.
type Notifier interface {
	Record(recipientID uint, kind string, actorID uint, bubbleID *uint) error
}

// FeedService glues mutations to their side effects. Per mutation, in
// order: durable write and hydration, then the notification record, then
// the fan-out publish. The write failing aborts everything; a failed
// notification record is logged and never blocks the mutation or the
// publish.
type FeedService struct {
	bubbles  BubbleStore
	comments CommentStore
	messages MessageStore
	follows  FollowStore
	notifier Notifier
	hub      Publisher
}

func NewFeedService(bubbles BubbleStore, comments CommentStore, messages MessageStore, follows FollowStore, notifier Notifier, hub Publisher) *FeedService {
	return &FeedService{
		bubbles:  bubbles,
		comments: comments,
		messages: messages,
		follows:  follows,
		notifier: notifier,
		hub:      hub,
	}
}

func (s *FeedService) CreateBubble(userID uint, content string) (*models.BubbleWithUser, error) {
	b := &models.Bubble{UserID: userID, Content: content}
	if err := s.bubbles.Create(b); err != nil {
		return nil, err
	}
	hydrated, err := s.bubbles.GetByID(b.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.NewBubble{Bubble: hydrated})
	return hydrated, nil
}

// LikeBubble bumps the like counter and fans the updated bubble out. The
// bubble owner gets a "like" notification unless they liked their own.
func (s *FeedService) LikeBubble(actorID, bubbleID uint) (*models.BubbleWithUser, error) {
	if err := s.bubbles.IncrementLikes(bubbleID); err != nil {
		return nil, err
	}
	hydrated, err := s.bubbles.GetByID(bubbleID)
	if err != nil {
		return nil, err
	}
	s.record(hydrated.UserID, domain.NotificationLike, actorID, &bubbleID)
	s.hub.Publish(ws.BubbleLiked{Bubble: hydrated})
	return hydrated, nil
}

func (s *FeedService) CreateComment(actorID, bubbleID uint, content string) (*models.CommentWithUser, error) {
	bubble, err := s.bubbles.GetByID(bubbleID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{BubbleID: bubbleID, UserID: actorID, Content: content}
	if err := s.comments.Create(comment); err != nil {
		return nil, err
	}
	hydrated, err := s.comments.GetByID(comment.ID)
	if err != nil {
		return nil, err
	}
	s.record(bubble.UserID, domain.NotificationComment, actorID, &bubbleID)
	s.hub.Publish(ws.NewComment{Comment: hydrated})
	return hydrated, nil
}

// SendMessage posts a chat message into a bubble's stream. Chat messages
// fan out but record no notification.
func (s *FeedService) SendMessage(actorID, bubbleID uint, content string) (*models.MessageWithUser, error) {
	if _, err := s.bubbles.GetByID(bubbleID); err != nil {
		return nil, err
	}
	m := &models.Message{BubbleID: bubbleID, UserID: actorID, Content: content}
	if err := s.messages.Create(m); err != nil {
		return nil, err
	}
	hydrated, err := s.messages.GetByID(m.ID)
	if err != nil {
		return nil, err
	}
	s.hub.Publish(ws.NewChatMessage{BubbleID: bubbleID, Message: hydrated})
	return hydrated, nil
}

// Follow creates the follow edge and notifies the followed user. No
// event is published for follows.
func (s *FeedService) Follow(actorID, targetID uint) error {
	if err := s.follows.Create(actorID, targetID); err != nil {
		return err
	}
	s.record(targetID, domain.NotificationFollow, actorID, nil)
	return nil
}

func (s *FeedService) Unfollow(actorID, targetID uint) error {
	return s.follows.Remove(actorID, targetID)
}

// record is the best-effort notification path: failures are logged so
// they are visible, but the surrounding mutation already succeeded and
// is never rolled back for a missing notification row.
func (s *FeedService) record(recipientID uint, kind string, actorID uint, bubbleID *uint) {
	if err := s.notifier.Record(recipientID, kind, actorID, bubbleID); err != nil {
		log.Printf("[feed] notification %s for user %d: %v", kind, recipientID, err)
	}
}
