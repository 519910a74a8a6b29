package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// ollamaClient talks to a local Ollama instance's generate API.
type ollamaClient struct {
	endpoint string
	model    string
	client   *http.Client
}

func newOllamaClient(endpoint, model string, timeout time.Duration) *ollamaClient {
	if model == "" {
		model = "llama2"
	}

	return &ollamaClient{
		endpoint: strings.TrimRight(endpoint, "/"),
		model:    model,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name returns the provider name.
func (c *ollamaClient) Name() string {
	return "ollama"
}

type ollamaGenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type ollamaGenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// Complete sends a completion request.
func (c *ollamaClient) Complete(ctx context.Context, message string) (*Completion, error) {
	start := time.Now()

	body, err := json.Marshal(ollamaGenerateRequest{
		Model:  c.model,
		Prompt: systemPrompt + "\n\nUser: " + message + "\nAssistant:",
		Stream: false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/api/generate", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ollama API error: %d", resp.StatusCode)
	}

	var out ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if out.Response == "" {
		return nil, errors.New("ollama returned an empty completion")
	}

	return &Completion{
		Text:      out.Response,
		Model:     out.Model,
		LatencyMs: time.Since(start).Milliseconds(),
	}, nil
}
