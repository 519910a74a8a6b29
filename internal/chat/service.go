package chat

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/catalog"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/events"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/llm"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/resolver"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/metrics"
)

var (
	// ErrRateLimited means the submission arrived before the minimum
	// inter-message interval elapsed. Advisory, not a failure.
	ErrRateLimited = errors.New("rate limited")

	// ErrEmptyMessage means the submission was empty after trimming.
	ErrEmptyMessage = errors.New("message is empty")

	// ErrNotFound means the conversation does not exist.
	ErrNotFound = errors.New("conversation not found")
)

// Options tunes the conversation service.
type Options struct {
	// RateLimitInterval is the minimum spacing between accepted
	// submissions per conversation.
	RateLimitInterval time.Duration

	// RemoteAttempts is how many times the remote provider is tried before
	// the local engine answers. The local engine is never retried because
	// it is total.
	RemoteAttempts int

	// Clock overrides time.Now, for tests.
	Clock func() time.Time
}

// Service drives conversations: it owns the registry, enforces rate limiting,
// and runs the resolution lifecycle for every submission.
type Service struct {
	engine    *resolver.Engine
	remote    llm.Client // nil in local-only mode
	publisher events.Publisher
	logger    *logger.Logger

	rateLimit      time.Duration
	remoteAttempts int
	now            func() time.Time

	mu            sync.RWMutex
	conversations map[string]*Conversation
}

// NewService creates a conversation service. remote may be nil.
func NewService(engine *resolver.Engine, remote llm.Client, publisher events.Publisher, log *logger.Logger, opts Options) *Service {
	if opts.RateLimitInterval <= 0 {
		opts.RateLimitInterval = time.Second
	}
	if opts.RemoteAttempts <= 0 {
		opts.RemoteAttempts = 1
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if publisher == nil {
		publisher = events.Noop()
	}

	return &Service{
		engine:         engine,
		remote:         remote,
		publisher:      publisher,
		logger:         log,
		rateLimit:      opts.RateLimitInterval,
		remoteAttempts: opts.RemoteAttempts,
		now:            opts.Clock,
		conversations:  make(map[string]*Conversation),
	}
}

// Create starts a new conversation seeded with the assistant welcome message.
func (s *Service) Create() *Conversation {
	now := s.now()
	welcome := catalog.Default()

	conv := &Conversation{
		id:        uuid.Must(uuid.NewV7()).String(),
		createdAt: now,
		messages: []model.Message{
			{
				ID:        uuid.Must(uuid.NewV7()).String(),
				Text:      welcome.Text,
				Sender:    model.SenderAssistant,
				Timestamp: now,
				Topic:     welcome.Topic,
				Provider:  model.ProviderFallback,
			},
		},
	}

	s.mu.Lock()
	s.conversations[conv.id] = conv
	s.mu.Unlock()

	metrics.ConversationsActive.Inc()
	s.logger.Info("conversation created", zap.String("conversation_id", conv.id))

	return conv
}

// Get retrieves a conversation by ID.
func (s *Service) Get(id string) (*Conversation, error) {
	s.mu.RLock()
	conv, exists := s.conversations[id]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}
	return conv, nil
}

// Submit runs the full submission lifecycle: rate-limit and validity checks,
// user message append, resolution, and exactly one assistant reply. Every
// accepted submission grows the log by exactly two messages and leaves the
// loading flag false, whatever the resolution path did.
func (s *Service) Submit(ctx context.Context, id, text string) (*model.SubmitResponse, error) {
	conv, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	now := s.now()

	conv.mu.Lock()
	if conv.isLoading || (!conv.lastMessageAt.IsZero() && now.Sub(conv.lastMessageAt) < s.rateLimit) {
		conv.lastError = catalog.RateLimitText
		conv.mu.Unlock()
		metrics.RateLimitRejectionsTotal.Inc()
		return nil, ErrRateLimited
	}

	if strings.TrimSpace(text) == "" {
		conv.mu.Unlock()
		return nil, ErrEmptyMessage
	}

	userMsg := model.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Text:      text,
		Sender:    model.SenderUser,
		Timestamp: now,
	}
	conv.messages = append(conv.messages, userMsg)
	conv.lastMessageAt = now
	conv.isLoading = true
	conv.lastError = ""
	conv.mu.Unlock()

	metrics.MessagesTotal.WithLabelValues(string(model.SenderUser)).Inc()

	// The loading flag always resets once resolution settles, whether the
	// reply came from the remote provider, the local engine, or the
	// apology path.
	defer func() {
		conv.mu.Lock()
		conv.isLoading = false
		conv.mu.Unlock()
	}()

	resp, provider, note := s.resolveReply(ctx, text)

	reply := model.Message{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Text:      resp.Text,
		Sender:    model.SenderAssistant,
		Timestamp: s.now(),
		Topic:     resp.Topic,
		Provider:  provider,
	}

	conv.mu.Lock()
	conv.messages = append(conv.messages, reply)
	conv.lastError = note
	conv.mu.Unlock()

	metrics.MessagesTotal.WithLabelValues(string(model.SenderAssistant)).Inc()

	s.publisher.Publish(ctx, model.AssistantEvent{
		ID:             uuid.Must(uuid.NewV7()).String(),
		Type:           model.EventTypeChatResolved,
		ConversationID: conv.id,
		Topic:          resp.Topic,
		Provider:       provider,
		CreatedAt:      s.now(),
	})

	return &model.SubmitResponse{
		UserMessage:      userMsg,
		AssistantMessage: reply,
		Note:             note,
	}, nil
}

// Answer resolves a single message with no conversation state, for the
// stateless chat endpoint. Same resolution path as Submit, including the
// remote-then-fallback policy.
func (s *Service) Answer(ctx context.Context, text string) model.ChatResponse {
	resp, provider, _ := s.resolveReply(ctx, text)
	return model.ChatResponse{
		Text:     resp.Text,
		Topic:    resp.Topic,
		Provider: provider,
	}
}

// resolveReply produces exactly one reply for a user message. The remote
// provider, when configured, gets RemoteAttempts tries; any failure falls
// back to the local engine, which is total. A panic anywhere in resolution
// degrades to the hard-coded apology instead of propagating.
func (s *Service) resolveReply(ctx context.Context, text string) (resp catalog.Response, provider, note string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("resolution panicked", zap.Any("panic", r))
			resp = catalog.Response{Text: catalog.ApologyText, Topic: model.TopicDefault}
			provider = model.ProviderFallback
			note = catalog.ApologyText
		}
	}()

	if s.remote != nil {
		for attempt := 1; attempt <= s.remoteAttempts; attempt++ {
			start := time.Now()
			completion, err := s.remote.Complete(ctx, text)
			if err == nil {
				metrics.RecordRemoteCompletion(s.remote.Name(), "success", time.Since(start).Seconds())
				topic := s.engine.ClassifyTopic(completion.Text, text)
				metrics.RecordResolution("remote", string(topic))
				return catalog.Response{Text: completion.Text, Topic: topic}, s.remote.Name(), ""
			}

			metrics.RecordRemoteCompletion(s.remote.Name(), "error", time.Since(start).Seconds())
			s.logger.Warn("remote completion failed",
				zap.String("provider", s.remote.Name()),
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		}

		metrics.RemoteFallbacksTotal.WithLabelValues(s.remote.Name()).Inc()
		note = catalog.FallbackNote
	}

	local, strategy := s.engine.ResolveWithStrategy(text)
	metrics.RecordResolution(string(strategy), string(local.Topic))
	return local, model.ProviderFallback, note
}

// Clear empties the message log and resets the last error. The open flag is
// untouched.
func (s *Service) Clear(id string) error {
	conv, err := s.Get(id)
	if err != nil {
		return err
	}

	conv.mu.Lock()
	conv.messages = nil
	conv.lastError = ""
	conv.mu.Unlock()

	return nil
}

// SetOpen sets the presentational open flag.
func (s *Service) SetOpen(id string, open bool) error {
	conv, err := s.Get(id)
	if err != nil {
		return err
	}

	conv.mu.Lock()
	conv.isOpen = open
	conv.mu.Unlock()

	return nil
}

// Toggle flips the open flag and returns the new value.
func (s *Service) Toggle(id string) (bool, error) {
	conv, err := s.Get(id)
	if err != nil {
		return false, err
	}

	conv.mu.Lock()
	conv.isOpen = !conv.isOpen
	open := conv.isOpen
	conv.mu.Unlock()

	return open, nil
}

// Summaries lists all conversations for the admin surface.
func (s *Service) Summaries() []model.ConversationSummary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make([]model.ConversationSummary, 0, len(s.conversations))
	for _, conv := range s.conversations {
		summaries = append(summaries, conv.Summary())
	}
	return summaries
}

// DropAll removes every conversation.
func (s *Service) DropAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := len(s.conversations)
	s.conversations = make(map[string]*Conversation)
	metrics.ConversationsActive.Sub(float64(dropped))

	return dropped
}
