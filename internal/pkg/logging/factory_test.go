package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewLogger_DefaultValues проверяет что пустая конфигурация даёт рабочий logger.
func TestNewLogger_DefaultValues(t *testing.T) {
	logger := NewLogger(Config{})
	assert.NotNil(t, logger)

	_, ok := logger.(*SlogAdapter)
	assert.True(t, ok, "NewLogger должен возвращать *SlogAdapter")
}

// TestNewLoggerWithWriter_LevelFiltering проверяет что DEBUG не логируется при level=info.
func TestNewLoggerWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithWriter(Config{
		Format: FormatText,
		Level:  LevelInfo,
	}, &buf)

	logger.Debug("this should not appear")
	logger.Info("this should appear")

	output := buf.String()
	assert.NotContains(t, output, "this should not appear")
	assert.Contains(t, output, "this should appear")
}

// TestNewLoggerWithWriter_AllLevels проверяет фильтрацию по всем уровням.
func TestNewLoggerWithWriter_AllLevels(t *testing.T) {
	tests := []struct {
		name         string
		configLevel  string
		logLevel     string
		shouldAppear bool
	}{
		{"debug_at_debug", LevelDebug, "debug", true},
		{"info_at_debug", LevelDebug, "info", true},
		{"debug_at_info", LevelInfo, "debug", false},
		{"info_at_info", LevelInfo, "info", true},
		{"warn_at_info", LevelInfo, "warn", true},
		{"info_at_warn", LevelWarn, "info", false},
		{"warn_at_warn", LevelWarn, "warn", true},
		{"warn_at_error", LevelError, "warn", false},
		{"error_at_error", LevelError, "error", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			logger := NewLoggerWithWriter(Config{
				Format: FormatText,
				Level:  tt.configLevel,
			}, &buf)

			testMsg := "test_" + tt.name

			switch tt.logLevel {
			case "debug":
				logger.Debug(testMsg)
			case "info":
				logger.Info(testMsg)
			case "warn":
				logger.Warn(testMsg)
			case "error":
				logger.Error(testMsg)
			}

			if tt.shouldAppear {
				assert.Contains(t, buf.String(), testMsg, "сообщение должно появиться")
			} else {
				assert.NotContains(t, buf.String(), testMsg, "сообщение не должно появиться")
			}
		})
	}
}

// TestParseLevel_AllLevels проверяет что все уровни корректно парсятся.
func TestParseLevel_AllLevels(t *testing.T) {
	tests := []struct {
		input    string
		expected slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
		{"", slog.LevelInfo},
		{"unknown", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseLevel(tt.input))
		})
	}
}

// TestNewLoggerWithWriter_JSONOutput_ValidJSON проверяет что JSON output валидный.
func TestNewLoggerWithWriter_JSONOutput_ValidJSON(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithWriter(Config{Format: FormatJSON}, &buf)
	logger.Info("json test", "issue_id", 42)

	var logEntry map[string]any
	err := json.Unmarshal(buf.Bytes(), &logEntry)
	require.NoError(t, err, "output должен быть валидным JSON")

	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "json test", logEntry["msg"])
	assert.Equal(t, float64(42), logEntry["issue_id"])
}

// TestNewLogger_FileOutput проверяет запись в файл с автосозданием директории.
func TestNewLogger_FileOutput(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "nested", "migrate.log")

	logger := NewLogger(Config{
		Level:    LevelInfo,
		Format:   FormatJSON,
		Output:   OutputFile,
		FilePath: logFile,
	})
	require.NotNil(t, logger)

	logger.Info("file output test", "key", "value")

	content, err := os.ReadFile(logFile)
	require.NoError(t, err, "файл лога должен быть создан")
	assert.Contains(t, string(content), "file output test")
}

// TestNewLogger_FileOutput_EmptyFilePath проверяет fallback на stderr при пустом FilePath.
func TestNewLogger_FileOutput_EmptyFilePath(t *testing.T) {
	logger := NewLogger(Config{
		Output:   OutputFile,
		FilePath: "",
	})
	require.NotNil(t, logger)

	// Не должен паниковать — fallback на stderr.
	_, ok := logger.(*SlogAdapter)
	assert.True(t, ok)
}

// TestNewLogger_UnknownOutput_FallbackToStderr проверяет fallback при неизвестном output.
func TestNewLogger_UnknownOutput_FallbackToStderr(t *testing.T) {
	logger := NewLogger(Config{Output: "syslog"})
	require.NotNil(t, logger)

	_, ok := logger.(*SlogAdapter)
	assert.True(t, ok)
}

// TestSlogAdapter_With проверяет что With добавляет атрибуты во все записи.
func TestSlogAdapter_With(t *testing.T) {
	var buf bytes.Buffer

	logger := NewLoggerWithWriter(Config{Format: FormatText}, &buf)
	child := logger.With("trace_id", "abc123")

	child.Info("with test")

	output := buf.String()
	assert.Contains(t, output, "trace_id=abc123")
	assert.Contains(t, output, "with test")
}
