// Package contact handles contact form validation and delivery.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/metrics"
)

const resendEndpoint = "https://api.resend.com/emails"

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidationError is a field-level rejection of a submission.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks a contact form submission.
func Validate(req *model.ContactRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return &ValidationError{Field: "name", Message: "Name is required"}
	}
	if strings.TrimSpace(req.Email) == "" {
		return &ValidationError{Field: "email", Message: "Email is required"}
	}
	if !emailPattern.MatchString(req.Email) {
		return &ValidationError{Field: "email", Message: "Please enter a valid email address"}
	}
	if strings.TrimSpace(req.Message) == "" {
		return &ValidationError{Field: "message", Message: "Message is required"}
	}
	if len(req.Message) < 10 {
		return &ValidationError{Field: "message", Message: "Message must be at least 10 characters long"}
	}
	return nil
}

// Service delivers contact form submissions through the Resend API. Without
// an API key it runs in mock mode: submissions are accepted and logged but no
// mail is sent, so the form keeps working in local development.
type Service struct {
	apiKey  string
	from    string
	to      string
	client  *http.Client
	logger  *logger.Logger
	baseURL string
}

// NewService creates a contact service. apiKey may be empty for mock mode.
func NewService(apiKey, from, to string, log *logger.Logger) *Service {
	return &Service{
		apiKey:  apiKey,
		from:    from,
		to:      to,
		client:  &http.Client{Timeout: 10 * time.Second},
		logger:  log,
		baseURL: resendEndpoint,
	}
}

type resendRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	ReplyTo string `json:"reply_to"`
}

type resendResponse struct {
	ID string `json:"id"`
}

// Submit validates and delivers a submission.
func (s *Service) Submit(ctx context.Context, req *model.ContactRequest) (*model.ContactResponse, error) {
	if err := Validate(req); err != nil {
		metrics.ContactSubmissionsTotal.WithLabelValues("invalid").Inc()
		return nil, err
	}

	if s.apiKey == "" {
		s.logger.Info("mock mode: contact email not sent",
			zap.String("name", req.Name),
			zap.String("email", req.Email),
		)
		metrics.ContactSubmissionsTotal.WithLabelValues("mock").Inc()
		return &model.ContactResponse{
			Success: true,
			Message: "Message sent successfully! I will get back to you soon.",
			ID:      "mock-email-id",
			Mock:    true,
		}, nil
	}

	id, err := s.send(ctx, req)
	if err != nil {
		metrics.ContactSubmissionsTotal.WithLabelValues("error").Inc()
		return nil, err
	}

	metrics.ContactSubmissionsTotal.WithLabelValues("sent").Inc()
	return &model.ContactResponse{
		Success: true,
		Message: "Message sent successfully! I will get back to you soon.",
		ID:      id,
	}, nil
}

func (s *Service) send(ctx context.Context, req *model.ContactRequest) (string, error) {
	body, err := json.Marshal(resendRequest{
		From:    s.from,
		To:      s.to,
		Subject: fmt.Sprintf("New Contact Form Submission from %s", req.Name),
		Text:    fmt.Sprintf("Name: %s\nEmail: %s\nMessage: %s\n", req.Name, req.Email, req.Message),
		ReplyTo: req.Email,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode email: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("email delivery failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("email provider error %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}

	var out resendResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode provider response: %w", err)
	}
	if out.ID == "" {
		return "", errors.New("email provider returned no message ID")
	}

	return out.ID, nil
}
