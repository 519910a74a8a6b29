// Package github lists portfolio projects from the GitHub API, with a static
// fallback set so the site keeps working when the API is unreachable.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/metrics"
)

const apiBase = "https://api.github.com"

// Service fetches repositories for one GitHub user.
type Service struct {
	username string
	token    string
	client   *http.Client
	logger   *logger.Logger
	baseURL  string
}

// NewService creates a project listing service. token may be empty for
// unauthenticated requests.
func NewService(username, token string, log *logger.Logger) *Service {
	return &Service{
		username: username,
		token:    token,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   log,
		baseURL:  apiBase,
	}
}

type repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	HTMLURL     string   `json:"html_url"`
	Topics      []string `json:"topics"`
	Stars       int      `json:"stargazers_count"`
	Language    string   `json:"language"`
	Forks       int      `json:"forks_count"`
	Watchers    int      `json:"watchers_count"`
}

// Projects returns up to limit repositories for the configured user. Any
// failure serves the static fallback set instead of an error: a missing
// project list should never break the page.
func (s *Service) Projects(ctx context.Context, limit int) *model.ProjectsResponse {
	if limit <= 0 || limit > 20 {
		limit = 6
	}

	projects, err := s.fetch(ctx, limit)
	if err != nil {
		s.logger.Warn("falling back to static projects", zap.Error(err))
		metrics.ProjectFetchesTotal.WithLabelValues("fallback").Inc()
		return &model.ProjectsResponse{Projects: FallbackProjects(), Source: "fallback"}
	}

	metrics.ProjectFetchesTotal.WithLabelValues("github").Inc()
	return &model.ProjectsResponse{Projects: projects, Source: "github"}
}

func (s *Service) fetch(ctx context.Context, limit int) ([]model.Project, error) {
	endpoint := fmt.Sprintf("%s/users/%s/repos?sort=stars&per_page=%d", s.baseURL, url.PathEscape(s.username), limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if s.token != "" {
		req.Header.Set("Authorization", "token "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("github API error: %d", resp.StatusCode)
	}

	var repos []repo
	if err := json.NewDecoder(resp.Body).Decode(&repos); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(repos) == 0 {
		return nil, fmt.Errorf("github returned no repositories")
	}

	projects := make([]model.Project, len(repos))
	for i, r := range repos {
		desc := r.Description
		if desc == "" {
			desc = "No description provided"
		}
		lang := r.Language
		if lang == "" {
			lang = "Unknown"
		}
		projects[i] = model.Project{
			ID:          r.ID,
			Name:        r.Name,
			Description: desc,
			HTMLURL:     r.HTMLURL,
			Topics:      r.Topics,
			Stars:       r.Stars,
			Language:    lang,
			Forks:       r.Forks,
			Watchers:    r.Watchers,
		}
	}
	return projects, nil
}

// FallbackProjects returns the static project set served when GitHub is
// unreachable.
func FallbackProjects() []model.Project {
	return []model.Project{
		{
			ID:          1,
			Name:        "Portfolio Website",
			Description: "Personal portfolio built with Next.js 14, TypeScript, and Tailwind CSS. Features dark mode, animations, and responsive design.",
			HTMLURL:     "https://github.com/Jonas-Zacho-Poulsen/portfolio",
			Topics:      []string{"next.js", "typescript", "tailwindcss", "framer-motion"},
			Language:    "TypeScript",
		},
		{
			ID:          2,
			Name:        "Chat Application",
			Description: "Real-time chat application with WebSocket integration, user authentication, and message history.",
			HTMLURL:     "https://github.com/Jonas-Zacho-Poulsen/chat-app",
			Topics:      []string{"react", "websocket", "firebase", "tailwindcss"},
			Language:    "JavaScript",
		},
		{
			ID:          3,
			Name:        "E-commerce Platform",
			Description: "Full-stack e-commerce platform with product management, cart functionality, and payment processing.",
			HTMLURL:     "https://github.com/Jonas-Zacho-Poulsen/ecommerce",
			Topics:      []string{"next.js", "postgresql", "stripe", "docker"},
			Language:    "TypeScript",
		},
	}
}
