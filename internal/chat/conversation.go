// Package chat implements the assistant's conversation state machine.
package chat

import (
	"sync"
	"time"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
)

// Conversation owns one ordered message log and its UI state. All mutation
// goes through the Service; the log is append-only except for Clear, which
// empties it in one step.
type Conversation struct {
	mu sync.Mutex

	id        string
	createdAt time.Time

	messages  []model.Message
	isOpen    bool
	isLoading bool
	lastError string

	// lastMessageAt is the rate-limit clock. It is scoped to this
	// conversation, so parallel sessions never throttle each other.
	lastMessageAt time.Time
}

// ID returns the conversation identifier.
func (c *Conversation) ID() string {
	return c.id
}

// Snapshot returns a point-in-time copy of the conversation state.
func (c *Conversation) Snapshot() model.ConversationSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	messages := make([]model.Message, len(c.messages))
	copy(messages, c.messages)

	return model.ConversationSnapshot{
		ID:            c.id,
		Messages:      messages,
		IsOpen:        c.isOpen,
		IsLoading:     c.isLoading,
		LastError:     c.lastError,
		LastMessageAt: c.lastMessageAt,
		CreatedAt:     c.createdAt,
	}
}

// Summary returns the admin listing view.
func (c *Conversation) Summary() model.ConversationSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	return model.ConversationSummary{
		ID:           c.id,
		MessageCount: len(c.messages),
		IsOpen:       c.isOpen,
		CreatedAt:    c.createdAt,
		LastActivity: c.lastMessageAt,
	}
}
