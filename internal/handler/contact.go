package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/contact"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
)

// ContactHandler handles the contact form endpoint.
type ContactHandler struct {
	contactService *contact.Service
	logger         *logger.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService *contact.Service, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         log,
	}
}

// Submit handles POST /api/v1/contact
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req model.ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.contactService.Submit(r.Context(), &req)
	if err != nil {
		var vErr *contact.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, errorResponse{
				Error: vErr.Message,
				Field: vErr.Field,
			})
			return
		}

		h.logger.Error("contact delivery failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to send message. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
