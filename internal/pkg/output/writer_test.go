package output

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewWriter_Formats проверяет выбор Writer по формату.
func TestNewWriter_Formats(t *testing.T) {
	tests := []struct {
		format   string
		wantJSON bool
	}{
		{"json", true},
		{"JSON", true},
		{"text", false},
		{"", false},
		{"yaml", false}, // неизвестный формат → text
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			w := NewWriter(tt.format)
			_, isJSON := w.(*JSONWriter)
			assert.Equal(t, tt.wantJSON, isJSON)
		})
	}
}

// TestJSONWriter_Write проверяет сериализацию Result в JSON.
func TestJSONWriter_Write(t *testing.T) {
	result := &Result{
		Status:  StatusSuccess,
		Command: "migrate",
		Data: map[string]any{
			"migrated": 2,
			"skipped":  1,
		},
		Metadata: &Metadata{
			DurationMs: 1500,
			TraceID:    "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6",
			APIVersion: "v1",
		},
	}

	var buf bytes.Buffer
	err := NewJSONWriter().Write(&buf, result)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "success", decoded["status"])
	assert.Equal(t, "migrate", decoded["command"])

	meta, ok := decoded["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "v1", meta["api_version"])
	assert.Equal(t, float64(1500), meta["duration_ms"])
}

// TestJSONWriter_Write_SummaryCopiedToMetadata проверяет что Summary
// попадает в metadata.summary без мутации оригинала.
func TestJSONWriter_Write_SummaryCopiedToMetadata(t *testing.T) {
	summary := NewSummaryInfo()
	summary.AddMetric("Задач перенесено", "2", "шт")

	result := &Result{
		Status:   StatusSuccess,
		Command:  "migrate",
		Metadata: &Metadata{DurationMs: 100, APIVersion: "v1"},
		Summary:  summary,
	}

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	meta := decoded["metadata"].(map[string]any)
	_, hasSummary := meta["summary"]
	assert.True(t, hasSummary, "JSON должен содержать metadata.summary")

	// Оригинальный Metadata не мутирован
	assert.Nil(t, result.Metadata.Summary)
}

// TestJSONWriter_Write_ErrorResult проверяет сериализацию ошибки.
func TestJSONWriter_Write_ErrorResult(t *testing.T) {
	result := &Result{
		Status:  StatusError,
		Command: "migrate",
		Error: &ErrorInfo{
			Code:    "SOURCE.AUTH_FAILED",
			Message: "недостаточно прав для чтения проекта",
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewJSONWriter().Write(&buf, result))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	errInfo := decoded["error"].(map[string]any)
	assert.Equal(t, "SOURCE.AUTH_FAILED", errInfo["code"])
}

// TestTextWriter_Write проверяет человекочитаемый вывод.
func TestTextWriter_Write(t *testing.T) {
	summary := NewSummaryInfo()
	summary.AddMetric("Задач перенесено", "5", "шт")
	summary.AddWarning("задача #12 пропущена: приватная")

	result := &Result{
		Status:   StatusSuccess,
		Command:  "migrate",
		Metadata: &Metadata{DurationMs: 2500, APIVersion: "v1"},
		Summary:  summary,
	}

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter().Write(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "migrate: success")
	assert.Contains(t, out, "Задач перенесено: 5 шт")
	assert.Contains(t, out, "Предупреждений: 1")
	assert.Contains(t, out, "задача #12 пропущена")
}

// TestTextWriter_Write_ErrorNoSummary проверяет что при ошибке summary не выводится.
func TestTextWriter_Write_ErrorNoSummary(t *testing.T) {
	result := &Result{
		Status:  StatusError,
		Command: "migrate",
		Error:   &ErrorInfo{Code: "TARGET.API_FAILED", Message: "gitea недоступен"},
		Summary: NewSummaryInfo(),
	}

	var buf bytes.Buffer
	require.NoError(t, NewTextWriter().Write(&buf, result))

	out := buf.String()
	assert.Contains(t, out, "Error [TARGET.API_FAILED]: gitea недоступен")
	assert.NotContains(t, out, "Сводка")
}

// TestFormatDuration проверяет форматирование длительности.
func TestFormatDuration(t *testing.T) {
	tests := []struct {
		ms       int64
		expected string
	}{
		{500, "500мс"},
		{1500, "1.5с"},
		{65000, "1м 5с"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.ms))
		})
	}
}
