package database

import (
	"context"
	"database/sql"
	"time"

	"musicchat/src/features/chat"
)

// MessageStore implements chat.MessageRepository on SQLite.
type MessageStore struct {
	db *sql.DB
}

func (s *MessageStore) Save(ctx context.Context, message *chat.Message) error {
	if message.SentAt.IsZero() {
		message.SentAt = time.Now().UTC()
	}
	var previousID any
	if message.PreviousID != nil {
		previousID = *message.PreviousID
	}
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO chat_messages (sender, text, sent_at, previous_id)
		VALUES (?, ?, ?, ?)`,
		message.Sender, message.Text, message.SentAt.Format(time.RFC3339), previousID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	message.ID = id
	return nil
}

func (s *MessageStore) GetConversation(ctx context.Context) ([]*chat.Message, error) {
	return s.queryMessages(ctx, `
		SELECT id, sender, text, sent_at, previous_id
		FROM chat_messages ORDER BY sent_at, id`)
}

func (s *MessageStore) GetRecent(ctx context.Context, limit int) ([]*chat.Message, error) {
	messages, err := s.queryMessages(ctx, `
		SELECT id, sender, text, sent_at, previous_id
		FROM chat_messages ORDER BY sent_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	// Reverse back into chronological order.
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
	return messages, nil
}

func (s *MessageStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM chat_messages`).Scan(&n)
	return n, err
}

func (s *MessageStore) queryMessages(ctx context.Context, query string, args ...any) ([]*chat.Message, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var messages []*chat.Message
	for rows.Next() {
		var m chat.Message
		var sentAt sql.NullString
		var previousID sql.NullInt64
		if err := rows.Scan(&m.ID, &m.Sender, &m.Text, &sentAt, &previousID); err != nil {
			return nil, err
		}
		if sentAt.Valid {
			m.SentAt = parseTime(sentAt.String)
		}
		if previousID.Valid {
			id := previousID.Int64
			m.PreviousID = &id
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}
