package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/catalog"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/chat"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/events"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/resolver"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
)

func newConversationServer(t *testing.T, opts chat.Options) (*chi.Mux, *chat.Service) {
	t.Helper()

	svc := chat.NewService(resolver.New(), nil, events.Noop(), logger.NewNop(), opts)
	h := NewConversationHandler(svc, logger.NewNop())

	r := chi.NewRouter()
	r.Route("/api/v1/conversations", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.Get)
			r.Post("/messages", h.Submit)
			r.Delete("/messages", h.Clear)
			r.Post("/open", h.Open)
			r.Post("/close", h.Close)
			r.Post("/toggle", h.Toggle)
		})
	})
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var buf *bytes.Buffer
	if body == "" {
		buf = bytes.NewBuffer(nil)
	} else {
		buf = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func createConversation(t *testing.T, r http.Handler) model.ConversationSnapshot {
	t.Helper()
	rec := doJSON(t, r, http.MethodPost, "/api/v1/conversations/", "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var snap model.ConversationSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	return snap
}

func TestConversationCreate(t *testing.T) {
	r, _ := newConversationServer(t, chat.Options{})

	snap := createConversation(t, r)

	assert.NotEmpty(t, snap.ID)
	require.Len(t, snap.Messages, 1)
	assert.Equal(t, model.SenderAssistant, snap.Messages[0].Sender)
	assert.False(t, snap.IsLoading)
}

func TestConversationGet_NotFound(t *testing.T) {
	r, _ := newConversationServer(t, chat.Options{})

	rec := doJSON(t, r, http.MethodGet, "/api/v1/conversations/0190e3a1-0000-7000-8000-000000000000/", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConversationGet_InvalidID(t *testing.T) {
	r, _ := newConversationServer(t, chat.Options{})

	rec := doJSON(t, r, http.MethodGet, "/api/v1/conversations/not-a-uuid/", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConversationSubmit(t *testing.T) {
	r, _ := newConversationServer(t, chat.Options{})
	snap := createConversation(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/conversations/"+snap.ID+"/messages", `{"message":"What are his skills?"}`)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp model.SubmitResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.SenderUser, resp.UserMessage.Sender)
	assert.Equal(t, model.SenderAssistant, resp.AssistantMessage.Sender)
	assert.Equal(t, model.TopicSkills, resp.AssistantMessage.Topic)
}

func TestConversationSubmit_RateLimited(t *testing.T) {
	now := time.Now()
	r, _ := newConversationServer(t, chat.Options{
		RateLimitInterval: time.Second,
		Clock:             func() time.Time { return now },
	})
	snap := createConversation(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/conversations/"+snap.ID+"/messages", `{"message":"hello there"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/api/v1/conversations/"+snap.ID+"/messages", `{"message":"hello again"}`)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, catalog.RateLimitText, errResp["error"])
}

func TestConversationSubmit_EmptyMessage(t *testing.T) {
	r, _ := newConversationServer(t, chat.Options{})
	snap := createConversation(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/conversations/"+snap.ID+"/messages", `{"message":"   "}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestConversationClear(t *testing.T) {
	r, _ := newConversationServer(t, chat.Options{})
	snap := createConversation(t, r)

	rec := doJSON(t, r, http.MethodPost, "/api/v1/conversations/"+snap.ID+"/messages", `{"message":"What are his skills?"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodDelete, "/api/v1/conversations/"+snap.ID+"/messages", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var cleared model.ConversationSnapshot
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cleared))
	assert.Empty(t, cleared.Messages)
}

func TestConversationOpenCloseToggle(t *testing.T) {
	r, _ := newConversationServer(t, chat.Options{})
	snap := createConversation(t, r)
	base := "/api/v1/conversations/" + snap.ID

	rec := doJSON(t, r, http.MethodPost, base+"/open", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_open":true}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, base+"/close", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_open":false}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodPost, base+"/toggle", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"is_open":true}`, rec.Body.String())
}
