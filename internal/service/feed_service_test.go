package service

import (
	"strings"
	"testing"

	"bubbles/internal/domain"
	"bubbles/internal/ws"
)

type capturePublisher struct {
	events []ws.Event
	// onPublish lets tests observe state at the moment of publish.
	onPublish func()
}

func (p *capturePublisher) Publish(ev ws.Event) {
	if p.onPublish != nil {
		p.onPublish()
	}
	p.events = append(p.events, ev)
}

func newFeedFixture() (*memStore, *capturePublisher, *FeedService) {
	ms := newMemStore()
	pub := &capturePublisher{}
	notifSvc := NewNotificationService(memNotifications{ms}, ms, 80)
	feedSvc := NewFeedService(ms, memComments{ms}, memMessages{ms}, memFollows{ms}, notifSvc, pub)
	return ms, pub, feedSvc
}

func TestCreateBubblePublishesHydratedEvent(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")

	bubble, err := svc.CreateBubble(1, "first post")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if bubble.Author.Username != "alice" {
		t.Fatalf("author = %+v, want alice summary", bubble.Author)
	}
	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
	ev, ok := pub.events[0].(ws.NewBubble)
	if !ok {
		t.Fatalf("event = %T, want ws.NewBubble", pub.events[0])
	}
	if ev.Bubble.Content != "first post" {
		t.Fatalf("event carries %q, want the hydrated bubble", ev.Bubble.Content)
	}
	// New bubbles notify no one.
	if len(ms.notifications) != 0 {
		t.Fatalf("recorded %d notifications, want 0", len(ms.notifications))
	}
}

// User 1 likes bubble #7 owned by user 2: one like notification for user
// 2 and one bubble_liked event carrying the updated count.
func TestLikeBubbleNotifiesOwnerAndPublishes(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.addUser(2, "bob")
	ms.addBubble(7, 2, "bob's bubble", 3)

	bubble, err := svc.LikeBubble(1, 7)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if bubble.Likes != 4 {
		t.Fatalf("likes = %d, want 4", bubble.Likes)
	}
	if len(ms.notifications) != 1 {
		t.Fatalf("recorded %d notifications, want 1", len(ms.notifications))
	}
	n := ms.notifications[0]
	if n.RecipientID != 2 || n.ActorID != 1 || n.Kind != domain.NotificationLike {
		t.Fatalf("notification = %+v, want recipient=2 actor=1 kind=like", n)
	}
	if n.BubbleID == nil || *n.BubbleID != 7 {
		t.Fatalf("notification bubble = %v, want 7", n.BubbleID)
	}
	ev, ok := pub.events[len(pub.events)-1].(ws.BubbleLiked)
	if !ok {
		t.Fatalf("event = %T, want ws.BubbleLiked", pub.events[len(pub.events)-1])
	}
	if ev.Bubble.Likes != 4 {
		t.Fatalf("event likes = %d, want the updated count 4", ev.Bubble.Likes)
	}
}

func TestLikeOwnBubbleRecordsNoNotification(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.addBubble(7, 1, "alice's bubble", 0)

	if _, err := svc.LikeBubble(1, 7); err != nil {
		t.Fatalf("like: %v", err)
	}
	if len(ms.notifications) != 0 {
		t.Fatalf("self-like recorded a notification")
	}
	// The fan-out still happens.
	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
}

func TestDuplicateLikesRecordDuplicateNotifications(t *testing.T) {
	ms, _, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.addUser(2, "bob")
	ms.addBubble(7, 2, "bob's bubble", 0)

	for i := 0; i < 2; i++ {
		if _, err := svc.LikeBubble(1, 7); err != nil {
			t.Fatalf("like %d: %v", i, err)
		}
	}
	// The ledger does not deduplicate repeated triggers.
	if len(ms.notifications) != 2 {
		t.Fatalf("recorded %d notifications, want 2", len(ms.notifications))
	}
}

func TestCreateCommentNotifiesBubbleOwner(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.addUser(2, "bob")
	ms.addBubble(7, 2, "bob's bubble", 0)

	comment, err := svc.CreateComment(1, 7, "nice one")
	if err != nil {
		t.Fatalf("comment: %v", err)
	}
	if comment.Author.Username != "alice" {
		t.Fatalf("author = %+v, want alice", comment.Author)
	}
	if len(ms.notifications) != 1 {
		t.Fatalf("recorded %d notifications, want 1", len(ms.notifications))
	}
	if n := ms.notifications[0]; n.RecipientID != 2 || n.Kind != domain.NotificationComment {
		t.Fatalf("notification = %+v, want recipient=2 kind=comment", n)
	}
	if _, ok := pub.events[0].(ws.NewComment); !ok {
		t.Fatalf("event = %T, want ws.NewComment", pub.events[0])
	}
}

// A chat message into bubble #3 reaches every open connection with the
// container id and the hydrated body. Uses a real hub with two clients.
func TestSendMessageFansOutToAllConnections(t *testing.T) {
	ms := newMemStore()
	ms.addUser(1, "alice")
	ms.addUser(2, "bob")
	ms.addBubble(3, 2, "bob's bubble", 0)
	hub := ws.NewHub()
	c1 := ws.NewClient(1, "alice", 8)
	c2 := ws.NewClient(2, "bob", 8)
	hub.Register(c1)
	hub.Register(c2)
	notifSvc := NewNotificationService(memNotifications{ms}, ms, 80)
	svc := NewFeedService(ms, memComments{ms}, memMessages{ms}, memFollows{ms}, notifSvc, hub)

	msg, err := svc.SendMessage(1, 3, "hello everyone")
	if err != nil {
		t.Fatalf("send: %v", err)
	}
	if msg.BubbleID != 3 || msg.Author.Username != "alice" {
		t.Fatalf("message = %+v, want bubble 3 from alice", msg)
	}
	for _, c := range []*ws.Client{c1, c2} {
		select {
		case frame := <-c.Receive():
			if !strings.Contains(string(frame), `"type":"new_message"`) {
				t.Fatalf("frame = %s, want new_message", frame)
			}
			if !strings.Contains(string(frame), `"bubble_id":3`) {
				t.Fatalf("frame = %s, want bubble_id 3", frame)
			}
			if !strings.Contains(string(frame), "hello everyone") {
				t.Fatalf("frame = %s, want hydrated message body", frame)
			}
		default:
			t.Fatalf("user %d received nothing", c.UserID)
		}
	}
	// Chat messages record no notification.
	if len(ms.notifications) != 0 {
		t.Fatalf("recorded %d notifications, want 0", len(ms.notifications))
	}
}

func TestFollowNotifiesTargetWithoutPublishing(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.addUser(2, "bob")

	if err := svc.Follow(1, 2); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if len(ms.follows) != 1 {
		t.Fatalf("follow edge not written")
	}
	if len(ms.notifications) != 1 {
		t.Fatalf("recorded %d notifications, want 1", len(ms.notifications))
	}
	if n := ms.notifications[0]; n.RecipientID != 2 || n.ActorID != 1 || n.Kind != domain.NotificationFollow {
		t.Fatalf("notification = %+v, want recipient=2 actor=1 kind=follow", n)
	}
	if len(pub.events) != 0 {
		t.Fatalf("follows must not publish events, got %d", len(pub.events))
	}
}

func TestSelfFollowRecordsNoNotification(t *testing.T) {
	ms, _, svc := newFeedFixture()
	ms.addUser(1, "alice")

	if err := svc.Follow(1, 1); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if len(ms.notifications) != 0 {
		t.Fatalf("self-follow recorded a notification")
	}
}

func TestStorageFailureProducesNoSideEffects(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.bubbleCreateErr = errStorage

	if _, err := svc.CreateBubble(1, "doomed"); err == nil {
		t.Fatal("expected storage error")
	}
	if len(pub.events) != 0 {
		t.Fatalf("published %d events after a failed write, want 0", len(pub.events))
	}
	if len(ms.notifications) != 0 {
		t.Fatalf("recorded notifications after a failed write")
	}
}

func TestNotificationFailureDoesNotBlockMutation(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.addUser(2, "bob")
	ms.addBubble(7, 2, "bob's bubble", 0)
	ms.notifCreateErr = errStorage

	bubble, err := svc.LikeBubble(1, 7)
	if err != nil {
		t.Fatalf("like must succeed despite ledger failure, got %v", err)
	}
	if bubble.Likes != 1 {
		t.Fatalf("likes = %d, want 1", bubble.Likes)
	}
	if len(pub.events) != 1 {
		t.Fatalf("published %d events, want 1", len(pub.events))
	}
}

func TestNotificationRecordedBeforePublish(t *testing.T) {
	ms, pub, svc := newFeedFixture()
	ms.addUser(1, "alice")
	ms.addUser(2, "bob")
	ms.addBubble(7, 2, "bob's bubble", 0)

	recordedAtPublish := -1
	pub.onPublish = func() {
		recordedAtPublish = len(ms.notifications)
	}
	if _, err := svc.LikeBubble(1, 7); err != nil {
		t.Fatalf("like: %v", err)
	}
	// An unread-count poll racing the live event must already see the row.
	if recordedAtPublish != 1 {
		t.Fatalf("notifications at publish time = %d, want 1", recordedAtPublish)
	}
}
