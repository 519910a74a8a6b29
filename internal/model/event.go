package model

import (
	"time"
)

// EventType represents the type of assistant event published to NATS.
type EventType string

const (
	EventTypeChatResolved     EventType = "chat_resolved"
	EventTypeContactSubmitted EventType = "contact_submitted"
)

// AssistantEvent is a fire-and-forget notification about assistant activity.
type AssistantEvent struct {
	ID             string         `json:"id"`
	Type           EventType      `json:"type"`
	ConversationID string         `json:"conversation_id,omitempty"`
	Topic          Topic          `json:"topic,omitempty"`
	Provider       string         `json:"provider,omitempty"`
	Metadata       map[string]any `json:"metadata,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}
