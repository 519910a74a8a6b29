package handler

import (
	"net/http"
	"strconv"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/github"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
)

// ProjectsHandler handles the project listing endpoint.
type ProjectsHandler struct {
	githubService *github.Service
	logger        *logger.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(githubService *github.Service, log *logger.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		githubService: githubService,
		logger:        log,
	}
}

// List handles GET /api/v1/projects
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 6
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= 20 {
			limit = parsed
		}
	}

	writeJSON(w, http.StatusOK, h.githubService.Projects(r.Context(), limit))
}
