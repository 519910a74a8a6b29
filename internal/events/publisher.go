// Package events publishes assistant activity to NATS.
//
// Publishing is optional and fire-and-forget: when no NATS URL is configured
// a no-op publisher is used, and publish failures are logged, never surfaced
// to the request path.
package events

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/model"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
)

// Subjects for assistant events.
const (
	SubjectChatResolved     = "portfolio.chat.resolved"
	SubjectContactSubmitted = "portfolio.contact.submitted"
)

// Publisher delivers assistant events.
type Publisher interface {
	// Publish sends an event. Failures are absorbed, not returned.
	Publish(ctx context.Context, ev model.AssistantEvent)

	// Healthy reports whether the publisher can currently deliver.
	Healthy() bool

	// Close releases the underlying connection.
	Close()
}

// Config holds NATS connection configuration.
type Config struct {
	URL      string
	CAFile   string
	CertFile string
	KeyFile  string
	Token    string
}

// Connect establishes a NATS-backed publisher.
func Connect(cfg Config, log *logger.Logger) (Publisher, error) {
	opts := []nats.Option{
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Warn("NATS disconnected", zap.Error(err))
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info("NATS reconnected")
		}),
		nats.ErrorHandler(func(nc *nats.Conn, sub *nats.Subscription, err error) {
			log.Error("NATS error", zap.Error(err))
		}),
	}

	if cfg.CAFile != "" && cfg.CertFile != "" && cfg.KeyFile != "" {
		tlsConfig, err := createTLSConfig(cfg.CAFile, cfg.CertFile, cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
		opts = append(opts, nats.Secure(tlsConfig))
	}

	if cfg.Token != "" {
		opts = append(opts, nats.Token(cfg.Token))
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &natsPublisher{conn: nc, logger: log}, nil
}

type natsPublisher struct {
	conn   *nats.Conn
	logger *logger.Logger
}

func (p *natsPublisher) Publish(ctx context.Context, ev model.AssistantEvent) {
	subject := SubjectChatResolved
	if ev.Type == model.EventTypeContactSubmitted {
		subject = SubjectContactSubmitted
	}

	data, err := json.Marshal(ev)
	if err != nil {
		p.logger.Error("failed to encode event", zap.Error(err))
		return
	}

	if err := p.conn.Publish(subject, data); err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("subject", subject),
			zap.Error(err),
		)
	}
}

func (p *natsPublisher) Healthy() bool {
	return p.conn != nil && p.conn.IsConnected()
}

func (p *natsPublisher) Close() {
	if p.conn != nil {
		p.conn.Close()
	}
}

// Noop returns a publisher that drops every event, for local-only mode.
func Noop() Publisher {
	return noopPublisher{}
}

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, ev model.AssistantEvent) {}
func (noopPublisher) Healthy() bool                                        { return true }
func (noopPublisher) Close()                                               {}

func createTLSConfig(caFile, certFile, keyFile string) (*tls.Config, error) {
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA file: %w", err)
	}

	caCertPool := x509.NewCertPool()
	if !caCertPool.AppendCertsFromPEM(caCert) {
		return nil, fmt.Errorf("failed to parse CA certificate")
	}

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load client cert: %w", err)
	}

	return &tls.Config{
		RootCAs:      caCertPool,
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
