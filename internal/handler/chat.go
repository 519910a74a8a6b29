// Package handler provides HTTP handlers for the portfolio assistant API.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/catalog"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/chat"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/middleware"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
)

// ChatHandler handles the stateless chat endpoint and suggestions.
type ChatHandler struct {
	chatService *chat.Service
	logger      *logger.Logger
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(chatService *chat.Service, log *logger.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      log,
	}
}

// Resolve handles POST /api/v1/chat
//
// Single-shot resolution with no conversation state. On any internal failure
// the response is still fallback-shaped so the UI can render a reply.
func (h *ChatHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			h.logger.Error("chat resolution panicked", zap.Any("panic", rec))
			writeJSON(w, http.StatusInternalServerError, model.ChatResponse{
				Text:     catalog.ApologyText,
				Topic:    model.TopicDefault,
				Provider: model.ProviderFallback,
			})
		}
	}()

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	if err := middleware.ValidateMessageContent(req.Message); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, h.chatService.Answer(r.Context(), req.Message))
}

// Suggestions handles GET /api/v1/suggestions
func (h *ChatHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	topic := model.Topic(r.URL.Query().Get("topic"))
	if !topic.Valid() {
		topic = model.TopicDefault
	}

	writeJSON(w, http.StatusOK, model.SuggestionsResponse{
		Topic:     topic,
		Questions: catalog.SuggestedQuestions(topic),
	})
}
