package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	id := GenerateRequestID()
	require.NotEmpty(t, id)
	assert.NotEqual(t, id, GenerateRequestID(), "request IDs must be unique")

	ctx := WithRequestID(context.Background(), id)
	got, ok := RequestIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = RequestIDFromContext(context.Background())
	assert.False(t, ok)
}

func TestFromContext(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromContext(WithRequestID(context.Background(), "abc")))
}

func TestConfig_LogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Config{Level: tt.level}.LogLevel(), "level %q", tt.level)
	}
}

func TestConfig_IsJSON(t *testing.T) {
	assert.True(t, Config{Format: "json"}.IsJSON())
	assert.True(t, Config{Format: "JSON"}.IsJSON())
	assert.False(t, Config{Format: "text"}.IsJSON())
}

func TestConfig_BaseAttributes(t *testing.T) {
	cfg := NewConfig("info", "text", "artifact-scouter", "1.0.0", "prod", false)
	attrs := cfg.BaseAttributes()
	require.Len(t, attrs, 3)
	assert.Equal(t, "service", attrs[0].Key)
	assert.Equal(t, "artifact-scouter", attrs[0].Value.String())
}
