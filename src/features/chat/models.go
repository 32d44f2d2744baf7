package chat

import (
	"context"
	"time"
)

// Message is one persisted chat message. Delivery over the live transport is
// an external collaborator's job; this feature only stores and replays history.
type Message struct {
	ID         int64     `json:"id"`
	Sender     string    `json:"sender"`
	Text       string    `json:"text"`
	SentAt     time.Time `json:"timestamp"`
	PreviousID *int64    `json:"previousId,omitempty"` // threading reference
}

// MessageRepository defines the data access operations for chat messages.
type MessageRepository interface {
	Save(ctx context.Context, message *Message) error
	GetConversation(ctx context.Context) ([]*Message, error)
	GetRecent(ctx context.Context, limit int) ([]*Message, error)
	Count(ctx context.Context) (int, error)
}
