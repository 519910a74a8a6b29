package llm

import (
	"context"
	"errors"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicClient talks to the Anthropic Messages API.
type anthropicClient struct {
	client  *anthropic.Client
	model   string
	timeout time.Duration
}

func newAnthropicClient(apiKey, model string, timeout time.Duration) *anthropicClient {
	if model == "" {
		model = "claude-3-5-haiku-20241022"
	}

	return &anthropicClient{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   model,
		timeout: timeout,
	}
}

// Name returns the provider name.
func (c *anthropicClient) Name() string {
	return "anthropic"
}

// Complete sends a completion request.
func (c *anthropicClient) Complete(ctx context.Context, message string) (*Completion, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []anthropic.MessageParam{
		{
			Role: anthropic.F(anthropic.MessageParamRoleUser),
			Content: anthropic.F([]anthropic.ContentBlockParamUnion{
				anthropic.TextBlockParam{
					Type: anthropic.F(anthropic.TextBlockParamTypeText),
					Text: anthropic.F(systemPrompt + "\n\n" + message),
				},
			}),
		},
	}

	resp, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.F(c.model),
		MaxTokens: anthropic.F(int64(512)),
		Messages:  anthropic.F(messages),
	})
	if err != nil {
		return nil, err
	}

	var content string
	for _, block := range resp.Content {
		if block.Type == anthropic.ContentBlockTypeText {
			content += block.Text
		}
	}

	if content == "" {
		return nil, errors.New("anthropic returned an empty completion")
	}

	return &Completion{
		Text:      content,
		Model:     resp.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
