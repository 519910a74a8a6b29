package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/catalog"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/chat"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/middleware"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
)

// ConversationHandler handles conversation endpoints.
type ConversationHandler struct {
	chatService *chat.Service
	logger      *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(chatService *chat.Service, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		chatService: chatService,
		logger:      log,
	}
}

// Create handles POST /api/v1/conversations
func (h *ConversationHandler) Create(w http.ResponseWriter, r *http.Request) {
	conv := h.chatService.Create()
	writeJSON(w, http.StatusCreated, conv.Snapshot())
}

// Get handles GET /api/v1/conversations/{id}
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, conv.Snapshot())
}

// Submit handles POST /api/v1/conversations/{id}/messages
func (h *ConversationHandler) Submit(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	var req model.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.chatService.Submit(r.Context(), conv.ID(), req.Message)
	switch {
	case errors.Is(err, chat.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, catalog.RateLimitText)
		return
	case errors.Is(err, chat.ErrEmptyMessage):
		writeError(w, http.StatusUnprocessableEntity, "message is empty")
		return
	case err != nil:
		h.logger.Error("submission failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to process message")
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Clear handles DELETE /api/v1/conversations/{id}/messages
func (h *ConversationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.chatService.Clear(conv.ID()); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, conv.Snapshot())
}

// Open handles POST /api/v1/conversations/{id}/open
func (h *ConversationHandler) Open(w http.ResponseWriter, r *http.Request) {
	h.setOpen(w, r, true)
}

// Close handles POST /api/v1/conversations/{id}/close
func (h *ConversationHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.setOpen(w, r, false)
}

// Toggle handles POST /api/v1/conversations/{id}/toggle
func (h *ConversationHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	open, err := h.chatService.Toggle(conv.ID())
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_open": open})
}

// List handles GET /api/v1/admin/conversations
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"conversations": h.chatService.Summaries(),
	})
}

// DropAll handles DELETE /api/v1/admin/conversations
func (h *ConversationHandler) DropAll(w http.ResponseWriter, r *http.Request) {
	dropped := h.chatService.DropAll()
	h.logger.Info("conversations dropped",
		zap.Int("count", dropped),
		zap.String("user_id", middleware.GetUserID(r.Context())),
	)
	writeJSON(w, http.StatusOK, map[string]int{"dropped": dropped})
}

func (h *ConversationHandler) setOpen(w http.ResponseWriter, r *http.Request, open bool) {
	conv, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.chatService.SetOpen(conv.ID(), open); err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"is_open": open})
}

func (h *ConversationHandler) lookup(w http.ResponseWriter, r *http.Request) (*chat.Conversation, bool) {
	id := chi.URLParam(r, "id")
	if err := middleware.ValidateConversationID(id); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}

	conv, err := h.chatService.Get(id)
	if err != nil {
		writeError(w, http.StatusNotFound, "conversation not found")
		return nil, false
	}
	return conv, true
}
