package tracing

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hexPattern32 — формат trace ID: ровно 32 hex символа.
var hexPattern32 = regexp.MustCompile(`^[0-9a-f]{32}$`)

// TestGenerateTraceID_Format проверяет формат сгенерированного ID.
func TestGenerateTraceID_Format(t *testing.T) {
	id := GenerateTraceID()
	assert.Regexp(t, hexPattern32, id)
}

// TestGenerateTraceID_Unique проверяет уникальность последовательных вызовов.
func TestGenerateTraceID_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateTraceID()
		require.False(t, seen[id], "trace ID не должен повторяться: %s", id)
		seen[id] = true
	}
}

// TestFallbackTraceID_Format проверяет что fallback тоже даёт 32 hex символа.
func TestFallbackTraceID_Format(t *testing.T) {
	id := fallbackTraceID()
	assert.Regexp(t, hexPattern32, id)
}

// TestWithTraceID_RoundTrip проверяет запись и чтение trace ID из context.
func TestWithTraceID_RoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceIDFromContext(ctx), "пустой context → пустой trace ID")

	ctx = WithTraceID(ctx, "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6")
	assert.Equal(t, "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6", TraceIDFromContext(ctx))
}

// TestTraceIDFromContext_NilContext проверяет что nil context не паникует.
func TestTraceIDFromContext_NilContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(nil)) //nolint:staticcheck // проверка nil-safety
}

// TestConfig_Validate проверяет валидацию конфигурации.
func TestConfig_Validate(t *testing.T) {
	valid := Config{
		Enabled:      true,
		Endpoint:     "http://jaeger:4318",
		ServiceName:  "redmine2gitea",
		Timeout:      5 * time.Second,
		SamplingRate: 1.0,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{"valid", func(_ *Config) {}, nil},
		{"disabled skips validation", func(c *Config) { c.Enabled = false; c.Endpoint = "" }, nil},
		{"empty endpoint", func(c *Config) { c.Endpoint = "" }, ErrTracingEndpointRequired},
		{"bad endpoint", func(c *Config) { c.Endpoint = "not a url" }, ErrTracingEndpointInvalidFormat},
		{"empty service name", func(c *Config) { c.ServiceName = "" }, ErrTracingServiceNameRequired},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrTracingTimeoutInvalid},
		{"sampling rate too high", func(c *Config) { c.SamplingRate = 1.5 }, ErrTracingSamplingRateInvalid},
		{"sampling rate negative", func(c *Config) { c.SamplingRate = -0.1 }, ErrTracingSamplingRateInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

// TestNewNopTracerProvider проверяет что nop shutdown не возвращает ошибку.
func TestNewNopTracerProvider(t *testing.T) {
	shutdown := NewNopTracerProvider()
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
}
