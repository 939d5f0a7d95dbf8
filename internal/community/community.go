// Package community stores the public chat and decides how flagged messages
// are shown.
package community

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"recipehub/internal/platform/postgres"
)

const (
	// GuestUserID and GuestUsername stand in for anonymous posters.
	GuestUserID   = "guest"
	GuestUsername = "GuestChef"

	// FlaggedPlaceholder replaces the text of a flagged message for readers.
	FlaggedPlaceholder = "[Message flagged for review]"

	defaultLimit = 50
	maxLimit     = 200
)

// Message is a community chat message.
type Message struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Text      string    `json:"message" db:"message"`
	IsFlagged bool      `json:"is_flagged" db:"is_flagged"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewMessage builds an unsaved message, filling in guest identity when the
// poster is anonymous.
func NewMessage(userID, username, text string, flagged bool) *Message {
	if strings.TrimSpace(userID) == "" {
		userID = GuestUserID
	}
	if strings.TrimSpace(username) == "" {
		username = GuestUsername
	}
	return &Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Username:  username,
		Text:      text,
		IsFlagged: flagged,
		CreatedAt: time.Now().UTC(),
	}
}

// Public returns a copy that is safe to show to readers.
func (m Message) Public() Message {
	if m.IsFlagged {
		m.Text = FlaggedPlaceholder
	}
	return m
}

// ClampLimit bounds a requested page size.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLimit
	case limit > maxLimit:
		return maxLimit
	default:
		return limit
	}
}

// Store defines the interface for chat persistence.
type Store interface {
	AddMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, limit int) ([]*Message, error)
}

const schema = `
CREATE TABLE IF NOT EXISTS chat_messages (
	id TEXT PRIMARY KEY,
	user_id TEXT NOT NULL,
	username TEXT NOT NULL,
	message TEXT NOT NULL,
	is_flagged BOOLEAN NOT NULL DEFAULT FALSE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

var messageColumns = []string{"id", "user_id", "username", "message", "is_flagged", "created_at"}

// PostgresStore implements the Store interface for PostgreSQL.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates the chat_messages table if needed and returns a store.
func NewPostgresStore(db *sqlx.DB) (*PostgresStore, error) {
	if err := postgres.EnsureSchema(db, schema); err != nil {
		return nil, fmt.Errorf("failed to create chat_messages table: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

// AddMessage saves a chat message.
func (s *PostgresStore) AddMessage(ctx context.Context, msg *Message) error {
	query, args, err := postgres.Builder.
		Insert("chat_messages").
		Columns(messageColumns...).
		Values(msg.ID, msg.UserID, msg.Username, msg.Text, msg.IsFlagged, msg.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build message insert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save chat message: %w", err)
	}
	return nil
}

// ListMessages returns the latest limit messages, oldest first.
func (s *PostgresStore) ListMessages(ctx context.Context, limit int) ([]*Message, error) {
	latest := postgres.Builder.
		Select(messageColumns...).
		From("chat_messages").
		OrderBy("created_at DESC").
		Limit(uint64(ClampLimit(limit)))

	query, args, err := postgres.Builder.
		Select("*").
		FromSelect(latest, "latest").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build messages query: %w", err)
	}

	messages := []*Message{}
	if err := s.db.SelectContext(ctx, &messages, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list chat messages: %w", err)
	}
	return messages, nil
}
