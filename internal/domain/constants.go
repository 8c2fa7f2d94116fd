package domain

// Notification kinds.
const (
	NotificationFollow  = "follow"
	NotificationLike    = "like"
	NotificationComment = "comment"
)

// Close reasons sent before rejecting a websocket handshake.
const (
	CloseReasonMissingToken = "token required"
	CloseReasonInvalidToken = "invalid token"
)
