package mapper

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultMapping_Statuses(t *testing.T) {
	m := DefaultMapping()

	tests := []struct {
		status string
		want   string
	}{
		{"New", StateOpen},
		{"In Progress", StateOpen},
		{"Feedback", StateOpen},
		{"Resolved", StateClosed},
		{"Closed", StateClosed},
		{"Rejected", StateClosed},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			got, err := m.State(tt.status)
			if err != nil {
				t.Fatalf("State(%q) вернул ошибку: %v", tt.status, err)
			}
			if got != tt.want {
				t.Errorf("State(%q) = %q, ожидалось %q", tt.status, got, tt.want)
			}
		})
	}
}

func TestDefaultMapping_UnknownStatus(t *testing.T) {
	m := DefaultMapping()

	_, err := m.State("On Hold")
	if err == nil {
		t.Fatal("ожидалась ошибка для неизвестного статуса")
	}
	if !IsUnmappedStatus(err) {
		t.Errorf("ожидался код %s, получено: %v", ErrUnmappedStatus, err)
	}
}

func TestDefaultMapping_Trackers(t *testing.T) {
	m := DefaultMapping()

	tests := []struct {
		tracker string
		want    string
	}{
		{"Bug", "bug"},
		{"Feature", "enhancement"},
		{"Support", "support"},
	}

	for _, tt := range tests {
		t.Run(tt.tracker, func(t *testing.T) {
			got, err := m.TrackerLabel(tt.tracker)
			if err != nil {
				t.Fatalf("TrackerLabel(%q) вернул ошибку: %v", tt.tracker, err)
			}
			if got != tt.want {
				t.Errorf("TrackerLabel(%q) = %q, ожидалось %q", tt.tracker, got, tt.want)
			}
		})
	}
}

func TestDefaultMapping_UnknownTracker(t *testing.T) {
	m := DefaultMapping()

	_, err := m.TrackerLabel("Epic")
	if err == nil {
		t.Fatal("ожидалась ошибка для неизвестного трекера")
	}
	if !IsUnmappedLabel(err) {
		t.Errorf("ожидался код %s, получено: %v", ErrUnmappedLabel, err)
	}
}

func TestCategoryLabel(t *testing.T) {
	tests := []struct {
		name         string
		categories   map[string]string
		defaultLabel string
		category     string
		want         string
		wantErr      bool
	}{
		{
			name:       "категория из таблицы",
			categories: map[string]string{"Backend": "backend"},
			category:   "Backend",
			want:       "backend",
		},
		{
			name:         "fallback для неизвестной категории",
			categories:   map[string]string{},
			defaultLabel: "imported",
			category:     "Frontend",
			want:         "imported",
		},
		{
			name:         "таблица приоритетнее fallback",
			categories:   map[string]string{"Backend": "backend"},
			defaultLabel: "imported",
			category:     "Backend",
			want:         "backend",
		},
		{
			name:       "неизвестная категория без fallback",
			categories: map[string]string{},
			category:   "Frontend",
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := DefaultMapping()
			m.Categories = tt.categories
			m.DefaultLabel = tt.defaultLabel

			got, err := m.CategoryLabel(tt.category)
			if tt.wantErr {
				if err == nil {
					t.Fatal("ожидалась ошибка")
				}
				if !IsUnmappedLabel(err) {
					t.Errorf("ожидался код %s, получено: %v", ErrUnmappedLabel, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("неожиданная ошибка: %v", err)
			}
			if got != tt.want {
				t.Errorf("CategoryLabel(%q) = %q, ожидалось %q", tt.category, got, tt.want)
			}
		})
	}
}

func TestLoadMapping_EmptyPath(t *testing.T) {
	m, err := LoadMapping("")
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	label, err := m.TrackerLabel("Bug")
	if err != nil || label != "bug" {
		t.Errorf("встроенная таблица не загружена: label=%q err=%v", label, err)
	}
}

func TestLoadMapping_OverrideFile(t *testing.T) {
	path := writeMappingFile(t, `
trackers:
  Bug: defect
  Epic: epic
categories:
  Backend: backend
statuses:
  On Hold: open
default_label: imported
`)

	m, err := LoadMapping(path)
	if err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	// переопределённое значение
	if label, _ := m.TrackerLabel("Bug"); label != "defect" {
		t.Errorf("TrackerLabel(Bug) = %q, ожидалось defect", label)
	}
	// добавленное значение
	if label, _ := m.TrackerLabel("Epic"); label != "epic" {
		t.Errorf("TrackerLabel(Epic) = %q, ожидалось epic", label)
	}
	// встроенное значение сохраняется
	if label, _ := m.TrackerLabel("Feature"); label != "enhancement" {
		t.Errorf("TrackerLabel(Feature) = %q, ожидалось enhancement", label)
	}
	if state, _ := m.State("On Hold"); state != StateOpen {
		t.Errorf("State(On Hold) = %q, ожидалось open", state)
	}
	if state, _ := m.State("Resolved"); state != StateClosed {
		t.Errorf("State(Resolved) = %q, ожидалось closed", state)
	}
	if label, _ := m.CategoryLabel("Backend"); label != "backend" {
		t.Errorf("CategoryLabel(Backend) = %q, ожидалось backend", label)
	}
	if label, _ := m.CategoryLabel("Unknown"); label != "imported" {
		t.Errorf("CategoryLabel(Unknown) = %q, ожидалось imported", label)
	}
}

func TestLoadMapping_InvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "невалидное состояние",
			content: "statuses:\n  New: archived\n",
		},
		{
			name:    "неизвестное поле",
			content: "priorities:\n  High: urgent\n",
		},
		{
			name:    "пустая метка",
			content: "trackers:\n  Bug: \"\"\n",
		},
		{
			name:    "не объект",
			content: "- Bug\n- Feature\n",
		},
		{
			name:    "битый YAML",
			content: "trackers: [\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeMappingFile(t, tt.content)

			_, err := LoadMapping(path)
			if err == nil {
				t.Fatal("ожидалась ошибка валидации")
			}
			var mapErr *MappingError
			if !errors.As(err, &mapErr) || mapErr.Code != ErrMappingFileInvalid {
				t.Errorf("ожидался код %s, получено: %v", ErrMappingFileInvalid, err)
			}
		})
	}
}

func TestLoadMapping_MissingFile(t *testing.T) {
	_, err := LoadMapping(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("ожидалась ошибка для отсутствующего файла")
	}
	var mapErr *MappingError
	if !errors.As(err, &mapErr) || mapErr.Code != ErrMappingFileInvalid {
		t.Errorf("ожидался код %s, получено: %v", ErrMappingFileInvalid, err)
	}
}

func writeMappingFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mapping.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("не удалось записать файл маппинга: %v", err)
	}
	return path
}

