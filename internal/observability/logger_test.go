package observability

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel("warning"))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("chatty"))
}

func TestNewLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "info", "json")

	logger.Debug("dropped")
	logger.Info("project loaded", "id", "1042")

	var entry map[string]any
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "project loaded", entry["msg"])
	assert.Equal(t, "1042", entry["id"])
	assert.Equal(t, "hydra-etl", entry["service"])
}

func TestNewLogger_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "debug", "text")

	logger.Debug("geocode cache miss")

	assert.Contains(t, buf.String(), "msg=\"geocode cache miss\"")
	assert.Contains(t, buf.String(), "level=DEBUG")
}

func TestNewMetricsForTesting_Independent(t *testing.T) {
	a := NewMetricsForTesting()
	b := NewMetricsForTesting()

	a.MessagesConsumed.Inc()

	assert.NotSame(t, a.MessagesConsumed, b.MessagesConsumed)
	assert.Len(t, a.collectors(), 12)
}
