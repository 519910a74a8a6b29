// Package config provides environment configuration for the API server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Chat settings
	ChatRateLimitInterval time.Duration
	ChatRemoteAttempts    int

	// Remote completion providers, checked in priority order:
	// Anthropic, then OpenAI, then Ollama. All empty means local-only mode.
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OllamaEndpoint  string
	OllamaModel     string
	LLMTimeout      time.Duration

	// Contact form
	ResendAPIKey   string
	ContactToEmail string
	ContactFrom    string

	// Project listing
	GitHubUsername string
	GitHubToken    string

	// NATS settings (optional event publishing)
	NATSURL      string
	NATSCAFile   string
	NATSCertFile string
	NATSKeyFile  string
	NATSToken    string

	// JWT settings (admin endpoints)
	JWTSecret string

	// HTTP rate limiting
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 30*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 60*time.Second),

		// Chat
		ChatRateLimitInterval: getDurationEnv("CHAT_RATE_LIMIT_INTERVAL", time.Second),
		ChatRemoteAttempts:    getIntEnv("CHAT_REMOTE_ATTEMPTS", 1),

		// Remote completion
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		AnthropicModel:  getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:     getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		OllamaEndpoint:  getEnv("OLLAMA_ENDPOINT", ""),
		OllamaModel:     getEnv("OLLAMA_MODEL", "llama2"),
		LLMTimeout:      getDurationEnv("LLM_TIMEOUT", 10*time.Second),

		// Contact
		ResendAPIKey:   getEnv("RESEND_API_KEY", ""),
		ContactToEmail: getEnv("CONTACT_TO_EMAIL", "jonaszachopoulsen@live.dk"),
		ContactFrom:    getEnv("CONTACT_FROM", "Portfolio Contact Form <onboarding@resend.dev>"),

		// Projects
		GitHubUsername: getEnv("GITHUB_USERNAME", "Jonas-Zacho-Poulsen"),
		GitHubToken:    getEnv("GITHUB_TOKEN", ""),

		// NATS
		NATSURL:      getEnv("NATS_URL", ""),
		NATSCAFile:   getEnv("NATS_CA_FILE", ""),
		NATSCertFile: getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:  getEnv("NATS_KEY_FILE", ""),
		NATSToken:    getEnv("NATS_TOKEN", ""),

		// JWT
		JWTSecret: getEnv("JWT_SECRET", "development-secret-change-in-production"),

		// Rate limiting
		RateLimitRequests: getIntEnv("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
