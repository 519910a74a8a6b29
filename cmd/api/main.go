// Package main is the entry point for the portfolio assistant API server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/chat"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/config"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/contact"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/events"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/github"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/handler"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/llm"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/middleware"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/internal/resolver"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/logger"
	"github.com/jonas-zacho-poulsen/portfolio-assistant/pkg/tracing"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize logger
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	logger.SetGlobal(log)

	log.Info("starting API server")

	// Initialize tracing if enabled
	ctx := context.Background()
	if cfg.TracingEnabled {
		tp, err := tracing.InitTracer(ctx, "portfolio-assistant", cfg.TracingEndpoint)
		if err != nil {
			log.Warn("failed to initialize tracing", zap.Error(err))
		} else {
			defer tracing.Shutdown(ctx, tp)
		}
	}

	// Connect the event publisher when NATS is configured
	publisher := events.Noop()
	if cfg.NATSURL != "" {
		publisher, err = events.Connect(events.Config{
			URL:      cfg.NATSURL,
			CAFile:   cfg.NATSCAFile,
			CertFile: cfg.NATSCertFile,
			KeyFile:  cfg.NATSKeyFile,
			Token:    cfg.NATSToken,
		}, log)
		if err != nil {
			log.Error("failed to connect to NATS", zap.Error(err))
			os.Exit(1)
		}
	}
	defer publisher.Close()

	// Select the remote completion provider, if any. No credentials means
	// the assistant runs purely on the local resolution engine.
	remote := llm.Select(llm.Config{
		AnthropicAPIKey: cfg.AnthropicAPIKey,
		AnthropicModel:  cfg.AnthropicModel,
		OpenAIAPIKey:    cfg.OpenAIAPIKey,
		OpenAIModel:     cfg.OpenAIModel,
		OllamaEndpoint:  cfg.OllamaEndpoint,
		OllamaModel:     cfg.OllamaModel,
		Timeout:         cfg.LLMTimeout,
	})
	if remote != nil {
		log.Info("remote completion provider selected", zap.String("provider", remote.Name()))
	} else {
		log.Info("no remote provider configured, using local responses only")
	}

	// Initialize services
	chatSvc := chat.NewService(resolver.New(), remote, publisher, log, chat.Options{
		RateLimitInterval: cfg.ChatRateLimitInterval,
		RemoteAttempts:    cfg.ChatRemoteAttempts,
	})
	contactSvc := contact.NewService(cfg.ResendAPIKey, cfg.ContactFrom, cfg.ContactToEmail, log)
	githubSvc := github.NewService(cfg.GitHubUsername, cfg.GitHubToken, log)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(publisher)
	chatHandler := handler.NewChatHandler(chatSvc, log)
	conversationHandler := handler.NewConversationHandler(chatSvc, log)
	contactHandler := handler.NewContactHandler(contactSvc, log)
	projectsHandler := handler.NewProjectsHandler(githubSvc, log)

	// Create router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logging(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health endpoints (no auth required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow))

		r.Post("/chat", chatHandler.Resolve)
		r.Get("/suggestions", chatHandler.Suggestions)
		r.Post("/contact", contactHandler.Submit)
		r.Get("/projects", projectsHandler.List)

		// Conversations
		r.Route("/conversations", func(r chi.Router) {
			r.Post("/", conversationHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", conversationHandler.Get)
				r.Post("/messages", conversationHandler.Submit)
				r.Delete("/messages", conversationHandler.Clear)
				r.Post("/open", conversationHandler.Open)
				r.Post("/close", conversationHandler.Close)
				r.Post("/toggle", conversationHandler.Toggle)
			})
		})

		// Admin surface
		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWTSecret))
			r.Use(middleware.RequireScope("admin"))

			r.Get("/conversations", conversationHandler.List)
			r.Delete("/conversations", conversationHandler.DropAll)
		})
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      r,
		ReadTimeout:  cfg.ServerReadTimeout,
		WriteTimeout: cfg.ServerWriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info("server listening", zap.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", zap.Error(err))
			os.Exit(1)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}
