package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJSONLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "warn"}, &buf)

	log.Info("hidden")
	require.Zero(t, buf.Len())

	log.Warn("shown")
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "shown", entry["msg"])
	require.Contains(t, entry, "timestamp")
}

func TestInvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "chatty", Encoding: "console"}, &buf)
	log.Debug("hidden")
	require.Zero(t, buf.Len())
	log.Info("shown")
	require.Contains(t, buf.String(), "shown")
}

func TestWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := NewWithWriter(Config{Level: "info"}, &buf)

	ctx := ContextWithRequestID(context.Background(), "req-42")
	require.Equal(t, "req-42", RequestIDFromContext(ctx))

	WithRequestID(ctx, base).Info("tagged")
	require.Contains(t, buf.String(), `"request_id":"req-42"`)

	require.Same(t, base, WithRequestID(context.Background(), base))
}
