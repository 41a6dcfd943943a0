package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &out))
	return out
}

func TestRedactsContactFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Level: "info", Format: "json"})

	logger.Info("message stored", "id", 4, "email", "ada@example.com", "Message", "hello")
	out := decodeLine(t, &buf)

	assert.Equal(t, "[REDACTED]", out["email"])
	assert.Equal(t, "[REDACTED]", out["Message"])
	assert.Equal(t, float64(4), out["id"])
}

func TestRedactsNestedGroupsAndWithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Format: "json"}).With("token", "abc")

	logger.Info("contact", slog.Group("input", slog.String("email", "x@y.z"), slog.String("name", "Ada")))
	out := decodeLine(t, &buf)

	assert.Equal(t, "[REDACTED]", out["token"])
	input, ok := out["input"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "[REDACTED]", input["email"])
	assert.Equal(t, "Ada", input["name"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, config.LoggingConfig{Level: "warn", Format: "text"})

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestNewWritesToRotatingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "portfolio.log")
	logger, closer, err := New(config.LoggingConfig{Level: "info", File: path}, nil)
	require.NoError(t, err)

	logger.Info("backend selected", "kind", "memory")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `"kind":"memory"`))
}

func TestNewWritesToConsole(t *testing.T) {
	var console bytes.Buffer
	logger, closer, err := New(config.LoggingConfig{Level: "info", Format: "json"}, &console)
	require.NoError(t, err)
	require.NoError(t, closer.Close())

	logger.Info("backend selected", "kind", "memory")
	assert.Equal(t, "memory", decodeLine(t, &console)["kind"])
}

func TestNewRotatingWriterRequiresPath(t *testing.T) {
	_, err := NewRotatingWriter(config.LoggingConfig{})
	require.Error(t, err)
}
