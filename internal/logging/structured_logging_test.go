package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogErrorIncludesErrorAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogError(logger, "something failed", errors.New("boom"),
		slog.String("stop_code", "cab"))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "something failed", entry["msg"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "cab", entry["stop_code"])
	assert.Equal(t, "ERROR", entry["level"])
}

func TestLogOperation(t *testing.T) {
	var buf bytes.Buffer
	logger := NewStructuredLogger(&buf, slog.LevelInfo)

	LogOperation(logger, "stored_forecast_snapshots", slog.Int("count", 4))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "stored_forecast_snapshots", entry["msg"])
	assert.Equal(t, float64(4), entry["count"])
}

func TestNilLoggerIsSafe(t *testing.T) {
	assert.NotPanics(t, func() {
		LogError(nil, "msg", errors.New("boom"))
		LogOperation(nil, "op")
		LogHTTPRequest(nil, "GET", "/", 200, 1.0)
	})
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := NewStructuredLogger(&bytes.Buffer{}, slog.LevelInfo)

	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))
}
