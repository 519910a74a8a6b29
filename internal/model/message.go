// Package model defines data structures for the portfolio assistant.
package model

import (
	"time"
)

// Topic classifies a canned response and selects suggested follow-up questions.
type Topic string

const (
	TopicExperience Topic = "experience"
	TopicSkills     Topic = "skills"
	TopicProjects   Topic = "projects"
	TopicContact    Topic = "contact"
	TopicDefault    Topic = "default"
)

// Topics lists every valid topic.
func Topics() []Topic {
	return []Topic{TopicExperience, TopicSkills, TopicProjects, TopicContact, TopicDefault}
}

// Valid reports whether t is one of the five known topics.
func (t Topic) Valid() bool {
	switch t {
	case TopicExperience, TopicSkills, TopicProjects, TopicContact, TopicDefault:
		return true
	}
	return false
}

// Sender identifies who authored a message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "ai"
)

// ProviderFallback tags replies produced by the local resolution engine.
const ProviderFallback = "fallback"

// Message is one entry in a conversation log. Messages are append-only;
// they are never mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
	Topic     Topic     `json:"topic,omitempty"`
	Provider  string    `json:"provider,omitempty"`
}

// ChatRequest is the body for single-shot chat and conversation submissions.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse is the resolved reply for a chat request.
type ChatResponse struct {
	Text     string `json:"text"`
	Topic    Topic  `json:"topic"`
	Provider string `json:"provider"`
}

// SubmitResponse is returned after a conversation submission settles.
type SubmitResponse struct {
	UserMessage      Message `json:"user_message"`
	AssistantMessage Message `json:"assistant_message"`
	Note             string  `json:"note,omitempty"`
}

// ConversationSnapshot is a point-in-time view of a conversation.
type ConversationSnapshot struct {
	ID            string    `json:"id"`
	Messages      []Message `json:"messages"`
	IsOpen        bool      `json:"is_open"`
	IsLoading     bool      `json:"is_loading"`
	LastError     string    `json:"last_error,omitempty"`
	LastMessageAt time.Time `json:"last_message_at,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ConversationSummary is the admin listing view of a conversation.
type ConversationSummary struct {
	ID           string    `json:"id"`
	MessageCount int       `json:"message_count"`
	IsOpen       bool      `json:"is_open"`
	CreatedAt    time.Time `json:"created_at"`
	LastActivity time.Time `json:"last_activity,omitempty"`
}

// SuggestionsResponse lists suggested follow-up questions for a topic.
type SuggestionsResponse struct {
	Topic     Topic    `json:"topic"`
	Questions []string `json:"questions"`
}
