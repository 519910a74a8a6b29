package llm

import (
	"context"
	"errors"
	"time"

	"github.com/sashabaranov/go-openai"
)

// openAIClient talks to the OpenAI chat completions API.
type openAIClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func newOpenAIClient(apiKey, model string, timeout time.Duration) *openAIClient {
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &openAIClient{
		client:  openai.NewClient(apiKey),
		model:   model,
		timeout: timeout,
	}
}

// Name returns the provider name.
func (c *openAIClient) Name() string {
	return "openai"
}

// Complete sends a completion request.
func (c *openAIClient) Complete(ctx context.Context, message string) (*Completion, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: message},
		},
		MaxTokens: 150,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return nil, errors.New("openai returned an empty completion")
	}

	return &Completion{
		Text:      resp.Choices[0].Message.Content,
		Model:     resp.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
