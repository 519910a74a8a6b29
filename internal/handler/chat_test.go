package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/catalog"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/chat"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/events"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/llm"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/resolver"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
)

type stubRemote struct {
	name string
	text string
	err  error
}

func (s *stubRemote) Complete(ctx context.Context, message string) (*llm.Completion, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &llm.Completion{Text: s.text, Model: "stub-model"}, nil
}

func (s *stubRemote) Name() string { return s.name }

func newChatHandler(t *testing.T, remote llm.Client) *ChatHandler {
	t.Helper()
	svc := chat.NewService(resolver.New(), remote, events.Noop(), logger.NewNop(), chat.Options{})
	return NewChatHandler(svc, logger.NewNop())
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Resolve(rec, req)
	return rec
}

func TestResolve_InvalidBody(t *testing.T) {
	h := newChatHandler(t, nil)

	rec := postChat(t, h, "{not json")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestResolve_MissingMessage(t *testing.T) {
	h := newChatHandler(t, nil)

	for _, body := range []string{`{}`, `{"message":""}`, `{"message":"   "}`} {
		rec := postChat(t, h, body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
	}
}

func TestResolve_LocalResponse(t *testing.T) {
	h := newChatHandler(t, nil)

	rec := postChat(t, h, `{"message":"What are his skills?"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.TopicSkills, resp.Topic)
	assert.Equal(t, model.ProviderFallback, resp.Provider)
	assert.NotEmpty(t, resp.Text)
}

func TestResolve_RemoteProviderTagged(t *testing.T) {
	h := newChatHandler(t, &stubRemote{name: "anthropic", text: "He has strong Go experience."})

	rec := postChat(t, h, `{"message":"Tell me about his experience"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "anthropic", resp.Provider)
	assert.Equal(t, "He has strong Go experience.", resp.Text)
}

func TestResolve_RemoteFailureFallsBack(t *testing.T) {
	h := newChatHandler(t, &stubRemote{name: "openai", err: errors.New("boom")})

	rec := postChat(t, h, `{"message":"How can I contact him?"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.TopicContact, resp.Topic)
	assert.Equal(t, model.ProviderFallback, resp.Provider)
	assert.NotEmpty(t, resp.Text)
}

func TestSuggestions_DefaultTopic(t *testing.T) {
	h := newChatHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggestions", nil)
	rec := httptest.NewRecorder()
	h.Suggestions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SuggestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.TopicDefault, resp.Topic)
	assert.NotEmpty(t, resp.Questions)
}

func TestSuggestions_ByTopic(t *testing.T) {
	h := newChatHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggestions?topic=skills", nil)
	rec := httptest.NewRecorder()
	h.Suggestions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SuggestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.TopicSkills, resp.Topic)
	assert.Equal(t, catalog.SuggestedQuestions(model.TopicSkills), resp.Questions)
}

func TestSuggestions_UnknownTopicFallsBack(t *testing.T) {
	h := newChatHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/suggestions?topic=nonsense", nil)
	rec := httptest.NewRecorder()
	h.Suggestions(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp model.SuggestionsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.TopicDefault, resp.Topic)
}
