// Package mapper переводит задачи Redmine в черновики задач Gitea.
// Все функции пакета чистые: никаких обращений к сети, только таблицы
// соответствий и форматирование.
package mapper

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// Состояния задач Gitea.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

//go:embed mapping.schema.json
var mappingSchemaJSON []byte

// Mapping содержит таблицы соответствий Redmine → Gitea.
// Таблицы — закрытые перечисления: значение вне таблицы — это ошибка
// маппинга, а не молчаливый fallback.
type Mapping struct {
	// Trackers — трекер Redmine → имя метки Gitea.
	Trackers map[string]string `yaml:"trackers"`

	// Categories — категория Redmine → имя метки Gitea.
	// Встроенная таблица пуста: категории появляются только из файла
	// переопределения или через DefaultLabel.
	Categories map[string]string `yaml:"categories"`

	// Statuses — статус Redmine → состояние задачи ("open"/"closed").
	Statuses map[string]string `yaml:"statuses"`

	// DefaultLabel — fallback-метка для категорий вне таблицы.
	// Пусто — fallback выключен, неизвестная категория даёт
	// MAPPING.UNMAPPED_LABEL.
	DefaultLabel string `yaml:"default_label"`
}

// DefaultMapping возвращает встроенные таблицы маппинга.
func DefaultMapping() *Mapping {
	return &Mapping{
		Trackers: map[string]string{
			"Bug":     "bug",
			"Feature": "enhancement",
			"Support": "support",
		},
		Categories: map[string]string{},
		Statuses: map[string]string{
			"New":         StateOpen,
			"In Progress": StateOpen,
			"Feedback":    StateOpen,
			"Resolved":    StateClosed,
			"Closed":      StateClosed,
			"Rejected":    StateClosed,
		},
	}
}

// LoadMapping возвращает таблицы маппинга: встроенные, покрытые записями
// из YAML файла path. Пустой path — только встроенные таблицы.
// Файл валидируется по JSON Schema до применения.
func LoadMapping(path string) (*Mapping, error) {
	mapping := DefaultMapping()
	if path == "" {
		return mapping, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, NewMappingError(ErrMappingFileInvalid,
			fmt.Sprintf("не удалось прочитать файл маппинга %s", path), err)
	}

	if err := validateMappingFile(raw); err != nil {
		return nil, err
	}

	var override Mapping
	if err := yaml.Unmarshal(raw, &override); err != nil {
		return nil, NewMappingError(ErrMappingFileInvalid,
			fmt.Sprintf("не удалось распарсить файл маппинга %s", path), err)
	}

	for k, v := range override.Trackers {
		mapping.Trackers[k] = v
	}
	for k, v := range override.Categories {
		mapping.Categories[k] = v
	}
	for k, v := range override.Statuses {
		mapping.Statuses[k] = v
	}
	if override.DefaultLabel != "" {
		mapping.DefaultLabel = override.DefaultLabel
	}

	return mapping, nil
}

// validateMappingFile проверяет YAML содержимое файла маппинга по схеме.
func validateMappingFile(raw []byte) error {
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return NewMappingError(ErrMappingFileInvalid,
			"файл маппинга не является валидным YAML", err)
	}

	schemaDoc, err := jsonschema.UnmarshalJSON(bytes.NewReader(mappingSchemaJSON))
	if err != nil {
		return NewMappingError(ErrMappingFileInvalid,
			"встроенная схема маппинга не распарсилась", err)
	}

	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("mapping.schema.json", schemaDoc); err != nil {
		return NewMappingError(ErrMappingFileInvalid,
			"не удалось зарегистрировать схему маппинга", err)
	}
	schema, err := compiler.Compile("mapping.schema.json")
	if err != nil {
		return NewMappingError(ErrMappingFileInvalid,
			"не удалось скомпилировать схему маппинга", err)
	}

	if err := schema.Validate(doc); err != nil {
		return NewMappingError(ErrMappingFileInvalid,
			"файл маппинга не соответствует схеме", err)
	}

	return nil
}

// State возвращает состояние Gitea для статуса Redmine.
// Неизвестный статус — ошибка MAPPING.UNMAPPED_STATUS.
func (m *Mapping) State(status string) (string, error) {
	state, ok := m.Statuses[status]
	if !ok {
		return "", NewMappingError(ErrUnmappedStatus,
			fmt.Sprintf("статус %q отсутствует в таблице статусов", status), nil)
	}
	return state, nil
}

// TrackerLabel возвращает метку Gitea для трекера Redmine.
// Неизвестный трекер — ошибка MAPPING.UNMAPPED_LABEL.
func (m *Mapping) TrackerLabel(tracker string) (string, error) {
	label, ok := m.Trackers[tracker]
	if !ok {
		return "", NewMappingError(ErrUnmappedLabel,
			fmt.Sprintf("трекер %q отсутствует в таблице маппинга", tracker), nil)
	}
	return label, nil
}

// CategoryLabel возвращает метку Gitea для категории Redmine.
// Категория вне таблицы берёт DefaultLabel; если fallback не настроен —
// ошибка MAPPING.UNMAPPED_LABEL с именем категории, чтобы таблицу
// можно было дополнить.
func (m *Mapping) CategoryLabel(category string) (string, error) {
	if label, ok := m.Categories[category]; ok {
		return label, nil
	}
	if m.DefaultLabel != "" {
		return m.DefaultLabel, nil
	}
	return "", NewMappingError(ErrUnmappedLabel,
		fmt.Sprintf("категория %q отсутствует в таблице маппинга и fallback не настроен", category), nil)
}
