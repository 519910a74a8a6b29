package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "CHAT_RATE_LIMIT_INTERVAL", "CHAT_REMOTE_ATTEMPTS", "LLM_TIMEOUT", "RATE_LIMIT_REQUESTS", "LOG_LEVEL", "TRACING_ENABLED"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, time.Second, cfg.ChatRateLimitInterval)
	assert.Equal(t, 1, cfg.ChatRemoteAttempts)
	assert.Equal(t, 10*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 60, cfg.RateLimitRequests)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("CHAT_RATE_LIMIT_INTERVAL", "250ms")
	t.Setenv("CHAT_REMOTE_ATTEMPTS", "3")
	t.Setenv("TRACING_ENABLED", "true")

	cfg := Load()

	assert.Equal(t, "9999", cfg.ServerPort)
	assert.Equal(t, 250*time.Millisecond, cfg.ChatRateLimitInterval)
	assert.Equal(t, 3, cfg.ChatRemoteAttempts)
	assert.True(t, cfg.TracingEnabled)
}

func TestLoad_IgnoresMalformedValues(t *testing.T) {
	t.Setenv("CHAT_REMOTE_ATTEMPTS", "lots")
	t.Setenv("CHAT_RATE_LIMIT_INTERVAL", "soon")
	t.Setenv("TRACING_ENABLED", "definitely")

	cfg := Load()

	assert.Equal(t, 1, cfg.ChatRemoteAttempts)
	assert.Equal(t, time.Second, cfg.ChatRateLimitInterval)
	assert.False(t, cfg.TracingEnabled)
}
