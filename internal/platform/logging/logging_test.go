package logging

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "json",
		Service: "errgate",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)
	require.NotNil(t, logger)

	logger.Info("json message")

	output := buf.String()
	assert.Contains(t, output, "json message")
	assert.Contains(t, output, "errgate")
	assert.Contains(t, output, `"service_version":"1.0.0"`)
}

func TestNewWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "debug",
		Format:  "text",
		Service: "errgate",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)
	require.NotNil(t, logger)

	logger.Debug("debug message")

	output := buf.String()
	assert.Contains(t, output, "debug message")
	assert.Contains(t, output, "errgate")
}

func TestNewWithWriter_PrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "pretty",
		Service: "errgate",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)
	require.NotNil(t, logger)

	logger.Info("pretty message")

	output := buf.String()
	assert.Contains(t, output, "pretty message")
}

func TestNewWithWriter_WithFileConfig(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "json",
		Service: "errgate",
		Version: "1.0.0",
		File: FileConfig{
			Enabled:    true,
			Path:       logFile,
			MaxSizeMB:  1,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}

	logger := NewWithWriter(cfg, &buf)
	require.NotNil(t, logger)

	logger.Info("test message to file")

	output := buf.String()
	assert.Contains(t, output, "test message to file")

	assert.FileExists(t, logFile)

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "test message to file")
}

func TestNewWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "warn",
		Format:  "json",
		Service: "errgate",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)

	logger.Info("suppressed")
	logger.Warn("visible")

	output := buf.String()
	assert.NotContains(t, output, "suppressed")
	assert.Contains(t, output, "visible")
}

func TestNewWithWriter_TraceLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "FINEST",
		Format:  "json",
		Service: "errgate",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)

	logger.Log(context.Background(), LevelTrace, "trace message")

	assert.Contains(t, buf.String(), "trace message")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected slog.Level
	}{
		{name: "trace level", input: "trace", expected: LevelTrace},
		{name: "finest maps to trace", input: "FINEST", expected: LevelTrace},
		{name: "finer maps to trace", input: "FINER", expected: LevelTrace},
		{name: "fine maps to debug", input: "FINE", expected: slog.LevelDebug},
		{name: "config maps to debug", input: "CONFIG", expected: slog.LevelDebug},
		{name: "debug level", input: "debug", expected: slog.LevelDebug},
		{name: "info level", input: "info", expected: slog.LevelInfo},
		{name: "legacy info", input: "INFO", expected: slog.LevelInfo},
		{name: "warn level", input: "warn", expected: slog.LevelWarn},
		{name: "warning maps to warn", input: "WARNING", expected: slog.LevelWarn},
		{name: "error level", input: "error", expected: slog.LevelError},
		{name: "severe maps to error", input: "SEVERE", expected: slog.LevelError},
		{name: "unknown defaults to info", input: "verbose", expected: slog.LevelInfo},
		{name: "empty defaults to info", input: "", expected: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseLevel(tt.input))
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns default when empty", func(t *testing.T) {
		logger := FromContext(context.Background())
		assert.NotNil(t, logger)
	})

	t.Run("returns stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		stored := slog.New(slog.NewJSONHandler(&buf, nil))
		ctx := WithContext(context.Background(), stored)

		assert.Same(t, stored, FromContext(ctx))
	})

	t.Run("enriched logger carries request id", func(t *testing.T) {
		var buf bytes.Buffer
		stored := slog.New(slog.NewJSONHandler(&buf, nil))
		ctx := WithContext(context.Background(), stored)
		ctx = WithRequestID(ctx, "req-123")

		FromContext(ctx).Info("hello")

		assert.Contains(t, buf.String(), "req-123")
	})
}

func TestRedaction(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{
		Level:   "info",
		Format:  "json",
		Service: "errgate",
		Version: "1.0.0",
	}

	logger := NewWithWriter(cfg, &buf)

	logger.Info("login attempt", slog.String("password", "hunter2"))

	output := buf.String()
	assert.NotContains(t, output, "hunter2")
}
