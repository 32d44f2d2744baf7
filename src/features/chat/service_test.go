package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"musicchat/src/features/config"
	"musicchat/src/music"
)

// MockMessageRepo is an append-only in-memory MessageRepository.
type MockMessageRepo struct {
	nextID   int64
	messages []*Message
}

func NewMockMessageRepo() *MockMessageRepo {
	return &MockMessageRepo{nextID: 1}
}

func (m *MockMessageRepo) Save(ctx context.Context, message *Message) error {
	message.ID = m.nextID
	m.nextID++
	copied := *message
	m.messages = append(m.messages, &copied)
	return nil
}

func (m *MockMessageRepo) GetConversation(ctx context.Context) ([]*Message, error) {
	return append([]*Message(nil), m.messages...), nil
}

func (m *MockMessageRepo) GetRecent(ctx context.Context, limit int) ([]*Message, error) {
	if limit >= len(m.messages) {
		return append([]*Message(nil), m.messages...), nil
	}
	return append([]*Message(nil), m.messages[len(m.messages)-limit:]...), nil
}

func (m *MockMessageRepo) Count(ctx context.Context) (int, error) {
	return len(m.messages), nil
}

func testConfigManager(maxMessageLength int) *config.Manager {
	return config.NewManager(&config.Config{
		Chat: config.Chat{MaxMessageLength: maxMessageLength},
	})
}

func TestSend_PersistsTrimmedMessage(t *testing.T) {
	repo := NewMockMessageRepo()
	service := NewService(repo, testConfigManager(2000))

	message, err := service.Send(context.Background(), "  alice  ", "  hello there  ", nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if message.Sender != "alice" || message.Text != "hello there" {
		t.Errorf("expected trimmed fields, got %q / %q", message.Sender, message.Text)
	}
	if message.ID == 0 {
		t.Error("expected the saved message to carry an id")
	}
	if message.SentAt.IsZero() {
		t.Error("expected a send timestamp")
	}
}

func TestSend_RejectsBlankFields(t *testing.T) {
	service := NewService(NewMockMessageRepo(), testConfigManager(2000))
	ctx := context.Background()

	if _, err := service.Send(ctx, "   ", "hello", nil); !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation for blank sender, got %v", err)
	}
	if _, err := service.Send(ctx, "alice", "   ", nil); !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation for blank text, got %v", err)
	}
}

func TestSend_EnforcesMaxLength(t *testing.T) {
	service := NewService(NewMockMessageRepo(), testConfigManager(10))
	ctx := context.Background()

	if _, err := service.Send(ctx, "alice", strings.Repeat("x", 11), nil); !errors.Is(err, music.ErrValidation) {
		t.Errorf("expected ErrValidation for oversized message, got %v", err)
	}
	if _, err := service.Send(ctx, "alice", strings.Repeat("x", 10), nil); err != nil {
		t.Errorf("expected message at the limit to pass, got %v", err)
	}
}

func TestSend_ThreadsOntoPreviousMessage(t *testing.T) {
	repo := NewMockMessageRepo()
	service := NewService(repo, testConfigManager(2000))
	ctx := context.Background()

	first, _ := service.Send(ctx, "alice", "first", nil)
	reply, err := service.Send(ctx, "bob", "reply", &first.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if reply.PreviousID == nil || *reply.PreviousID != first.ID {
		t.Error("expected the reply to reference the first message")
	}
}

func TestConversation_LimitReturnsMostRecentOldestFirst(t *testing.T) {
	repo := NewMockMessageRepo()
	service := NewService(repo, testConfigManager(2000))
	ctx := context.Background()

	for i, text := range []string{"one", "two", "three"} {
		repo.Save(ctx, &Message{Sender: "alice", Text: text, SentAt: time.Now().Add(time.Duration(i) * time.Second)})
	}

	messages, err := service.Conversation(ctx, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(messages) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(messages))
	}
	if messages[0].Text != "two" || messages[1].Text != "three" {
		t.Errorf("expected the two most recent in order, got %q then %q", messages[0].Text, messages[1].Text)
	}
}

func TestConversation_ZeroLimitReturnsEverything(t *testing.T) {
	repo := NewMockMessageRepo()
	service := NewService(repo, testConfigManager(2000))
	ctx := context.Background()

	service.Send(ctx, "alice", "one", nil)
	service.Send(ctx, "bob", "two", nil)

	messages, err := service.Conversation(ctx, 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(messages) != 2 {
		t.Errorf("expected the full history, got %d messages", len(messages))
	}
}
