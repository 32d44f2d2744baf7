package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"musicchat/src/features/config"
	"musicchat/src/music"
)

// Service is the domain service for chat message persistence.
type Service struct {
	messageRepo   MessageRepository
	configManager *config.Manager
}

// NewService creates a new chat service.
func NewService(messageRepo MessageRepository, cfgManager *config.Manager) *Service {
	return &Service{
		messageRepo:   messageRepo,
		configManager: cfgManager,
	}
}

// Send persists a chat message, optionally threading it onto a previous one.
func (s *Service) Send(ctx context.Context, sender, text string, previousID *int64) (*Message, error) {
	slog.Debug("Send service called", "sender", sender)

	sender = strings.TrimSpace(sender)
	text = strings.TrimSpace(text)
	if sender == "" {
		return nil, fmt.Errorf("%w: sender cannot be empty", music.ErrValidation)
	}
	if text == "" {
		return nil, fmt.Errorf("%w: message text cannot be empty", music.ErrValidation)
	}
	if maxLen := s.configManager.Get().Chat.MaxMessageLength; len(text) > maxLen {
		return nil, fmt.Errorf("%w: message text cannot exceed %d characters, got %d", music.ErrValidation, maxLen, len(text))
	}

	message := &Message{
		Sender:     sender,
		Text:       text,
		SentAt:     time.Now(),
		PreviousID: previousID,
	}
	if err := s.messageRepo.Save(ctx, message); err != nil {
		slog.Error("Send failed", "sender", sender, "error", err)
		return nil, err
	}

	slog.Info("Message sent", "id", message.ID, "sender", sender)
	return message, nil
}

// Conversation returns the message history in chronological order. A positive
// limit returns only the most recent messages, still oldest first.
func (s *Service) Conversation(ctx context.Context, limit int) ([]*Message, error) {
	slog.Debug("Conversation service called", "limit", limit)

	if limit > 0 {
		return s.messageRepo.GetRecent(ctx, limit)
	}
	return s.messageRepo.GetConversation(ctx)
}

// MessageCount returns the total number of persisted messages.
func (s *Service) MessageCount(ctx context.Context) (int, error) {
	return s.messageRepo.Count(ctx)
}
