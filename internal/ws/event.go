package ws

import (
	"encoding/json"
	"fmt"

	"bubbles/internal/models"
)

// Event is the closed set of payloads fanned out to live connections.
// Each variant carries the fully hydrated entity so subscribers never
// need a follow-up fetch. Events are not persisted.
type Event interface {
	Tag() string
	event()
}

type NewBubble struct {
	Bubble *models.BubbleWithUser
}

type BubbleLiked struct {
	Bubble *models.BubbleWithUser
}

type NewComment struct {
	Comment *models.CommentWithUser
}

type NewChatMessage struct {
	BubbleID uint
	Message  *models.MessageWithUser
}

func (NewBubble) Tag() string      { return "new_bubble" }
func (BubbleLiked) Tag() string    { return "bubble_liked" }
func (NewComment) Tag() string     { return "new_comment" }
func (NewChatMessage) Tag() string { return "new_message" }

func (NewBubble) event()      {}
func (BubbleLiked) event()    {}
func (NewComment) event()     {}
func (NewChatMessage) event() {}

// Encode renders the wire envelope: a text frame of
// {"type": <tag>, <payload fields>}.
func Encode(ev Event) ([]byte, error) {
	switch e := ev.(type) {
	case NewBubble:
		return json.Marshal(struct {
			Type   string                 `json:"type"`
			Bubble *models.BubbleWithUser `json:"bubble"`
		}{e.Tag(), e.Bubble})
	case BubbleLiked:
		return json.Marshal(struct {
			Type   string                 `json:"type"`
			Bubble *models.BubbleWithUser `json:"bubble"`
		}{e.Tag(), e.Bubble})
	case NewComment:
		return json.Marshal(struct {
			Type    string                  `json:"type"`
			Comment *models.CommentWithUser `json:"comment"`
		}{e.Tag(), e.Comment})
	case NewChatMessage:
		return json.Marshal(struct {
			Type     string                  `json:"type"`
			BubbleID uint                    `json:"bubble_id"`
			Message  *models.MessageWithUser `json:"message"`
		}{e.Tag(), e.BubbleID, e.Message})
	default:
		return nil, fmt.Errorf("ws: unknown event %T", ev)
	}
}
