package service

import (
	"errors"
	"sort"
	"time"

	"bubbles/internal/models"

	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the gorm repositories, mirroring
// their contracts closely enough to drive the services in tests.
type memStore struct {
	users         map[uint]*models.User
	bubbles       map[uint]*models.Bubble
	comments      map[uint]*models.Comment
	messages      map[uint]*models.Message
	follows       []models.Follow
	notifications []*models.Notification

	nextID uint
	clock  time.Time

	bubbleCreateErr  error
	notifCreateErr   error
	messageCreateErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:    make(map[uint]*models.User),
		bubbles:  make(map[uint]*models.Bubble),
		comments: make(map[uint]*models.Comment),
		messages: make(map[uint]*models.Message),
		clock:    time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (m *memStore) tick() time.Time {
	m.clock = m.clock.Add(time.Second)
	return m.clock
}

func (m *memStore) addUser(id uint, username string) *models.User {
	u := &models.User{ID: id, Username: username, DisplayName: username}
	m.users[id] = u
	return u
}

func (m *memStore) addBubble(id, userID uint, content string, likes int) *models.Bubble {
	b := &models.Bubble{ID: id, UserID: userID, Content: content, Likes: likes, CreatedAt: m.tick()}
	m.bubbles[id] = b
	if id > m.nextID {
		m.nextID = id
	}
	return b
}

// BubbleStore

func (m *memStore) Create(b *models.Bubble) error {
	if m.bubbleCreateErr != nil {
		return m.bubbleCreateErr
	}
	m.nextID++
	b.ID = m.nextID
	b.CreatedAt = m.tick()
	stored := *b
	m.bubbles[b.ID] = &stored
	return nil
}

func (m *memStore) GetByID(id uint) (*models.BubbleWithUser, error) {
	b, ok := m.bubbles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b.WithUser(m.users[b.UserID]), nil
}

func (m *memStore) IncrementLikes(id uint) error {
	b, ok := m.bubbles[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Likes++
	return nil
}

// commentStore / messageStore are separate named types so memStore can
// satisfy CommentStore and MessageStore despite the clashing method names.

type memComments struct{ m *memStore }

func (c memComments) Create(comment *models.Comment) error {
	c.m.nextID++
	comment.ID = c.m.nextID
	comment.CreatedAt = c.m.tick()
	stored := *comment
	c.m.comments[comment.ID] = &stored
	return nil
}

func (c memComments) GetByID(id uint) (*models.CommentWithUser, error) {
	comment, ok := c.m.comments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return comment.WithUser(c.m.users[comment.UserID]), nil
}

type memMessages struct{ m *memStore }

func (s memMessages) Create(msg *models.Message) error {
	if s.m.messageCreateErr != nil {
		return s.m.messageCreateErr
	}
	s.m.nextID++
	msg.ID = s.m.nextID
	msg.CreatedAt = s.m.tick()
	stored := *msg
	s.m.messages[msg.ID] = &stored
	return nil
}

func (s memMessages) GetByID(id uint) (*models.MessageWithUser, error) {
	msg, ok := s.m.messages[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return msg.WithUser(s.m.users[msg.UserID]), nil
}

type memFollows struct{ m *memStore }

func (f memFollows) Create(followerID, followedID uint) error {
	f.m.follows = append(f.m.follows, models.Follow{FollowerID: followerID, FollowedID: followedID})
	return nil
}

func (f memFollows) Remove(followerID, followedID uint) error {
	kept := f.m.follows[:0]
	for _, edge := range f.m.follows {
		if edge.FollowerID != followerID || edge.FollowedID != followedID {
			kept = append(kept, edge)
		}
	}
	f.m.follows = kept
	return nil
}

// NotificationStore

type memNotifications struct{ m *memStore }

func (n memNotifications) Create(row *models.Notification) error {
	if n.m.notifCreateErr != nil {
		return n.m.notifCreateErr
	}
	n.m.nextID++
	row.ID = n.m.nextID
	row.CreatedAt = n.m.tick()
	stored := *row
	n.m.notifications = append(n.m.notifications, &stored)
	return nil
}

func (n memNotifications) ListByRecipient(userID uint) ([]models.Notification, error) {
	var out []models.Notification
	for _, row := range n.m.notifications {
		if row.RecipientID != userID {
			continue
		}
		copied := *row
		copied.Actor = n.m.users[row.ActorID]
		out = append(out, copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (n memNotifications) MarkAllRead(userID uint) error {
	for _, row := range n.m.notifications {
		if row.RecipientID == userID && !row.Read {
			row.Read = true
		}
	}
	return nil
}

func (n memNotifications) UnreadCount(userID uint) (int64, error) {
	var count int64
	for _, row := range n.m.notifications {
		if row.RecipientID == userID && !row.Read {
			count++
		}
	}
	return count, nil
}

var errStorage = errors.New("storage failure")
