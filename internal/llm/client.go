// Package llm provides remote completion clients for the assistant.
//
// A client is selected once at startup from configuration; when none is
// configured the assistant runs purely on the local resolution engine, which
// is a fully supported mode, not a degraded one.
package llm

import (
	"context"
	"time"
)

// systemPrompt frames every remote completion request.
const systemPrompt = `You are an assistant for Jonas Zacho Poulsen, a Full Stack Developer.
Answer questions about Jonas' experience, skills, projects, and contact information.
Keep responses concise and professional.`

// Completion is a normalized remote completion result.
type Completion struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Client is the interface for remote completion providers. Implementations
// must return an error for every failure mode (timeout, non-2xx status,
// malformed body) and must never panic or hang: the conversation state
// machine relies on that contract to fall back to the local engine.
type Client interface {
	// Complete sends the user message and returns the provider's reply.
	Complete(ctx context.Context, message string) (*Completion, error)

	// Name returns the provider name used to tag assistant messages.
	Name() string
}

// Config holds provider credentials and tuning.
type Config struct {
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OllamaEndpoint  string
	OllamaModel     string
	Timeout         time.Duration
}

// Select picks the active provider by credential presence, in fixed priority
// order: Anthropic, then OpenAI, then Ollama. Returns nil when none is
// configured.
func Select(cfg Config) Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	if cfg.AnthropicAPIKey != "" {
		return newAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel, timeout)
	}
	if cfg.OpenAIAPIKey != "" {
		return newOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, timeout)
	}
	if cfg.OllamaEndpoint != "" {
		return newOllamaClient(cfg.OllamaEndpoint, cfg.OllamaModel, timeout)
	}
	return nil
}
