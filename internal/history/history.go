// Package history keeps the exchanges of each conversation with the assistant.
package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// DefaultLimit is how many exchanges a conversation keeps.
const DefaultLimit = 50

var ErrNoConversation = errors.New("conversation id is required")

// Exchange is one user message and the assistant's reply.
type Exchange struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	UserMessage    string    `json:"user_message"`
	BotResponse    string    `json:"bot_response"`
	CreatedAt      time.Time `json:"created_at"`
}

// Store persists exchanges per conversation. Implementations must be safe for
// concurrent use.
type Store interface {
	// Append records ex, filling ID and CreatedAt when empty, and returns the
	// stored exchange.
	Append(ctx context.Context, ex Exchange) (Exchange, error)
	// List returns up to limit of the newest exchanges, oldest first. A
	// non-positive limit returns everything kept.
	List(ctx context.Context, conversationID string, limit int) ([]Exchange, error)
	// Clear drops every exchange of the conversation.
	Clear(ctx context.Context, conversationID string) error
}

// NewConversationID returns a fresh UUIDv7 string.
func NewConversationID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// Stamp validates ex and fills its ID and CreatedAt if unset.
func Stamp(ex Exchange) (Exchange, error) {
	if ex.ConversationID == "" {
		return Exchange{}, ErrNoConversation
	}
	if ex.ID == "" {
		ex.ID = uuid.Must(uuid.NewV7()).String()
	}
	if ex.CreatedAt.IsZero() {
		ex.CreatedAt = time.Now().UTC()
	}
	return ex, nil
}
