package output

// SummaryInfo содержит сводку результатов выполнения команды.
// Используется для формирования summary блока в выводе.
type SummaryInfo struct {
	// KeyMetrics — ключевые метрики операции.
	KeyMetrics []KeyMetric `json:"key_metrics,omitempty"`

	// WarningsCount — количество предупреждений.
	WarningsCount int `json:"warnings_count"`

	// Warnings — список предупреждений (текстовых сообщений).
	Warnings []string `json:"warnings,omitempty"`
}

// KeyMetric представляет одну ключевую метрику.
type KeyMetric struct {
	// Name — название метрики (например, "Задач перенесено").
	Name string `json:"name"`

	// Value — значение метрики (строка для гибкости: "15", "3.5MB", "2 из 10").
	Value string `json:"value"`

	// Unit — единица измерения (опционально: "шт", "МБ", "сек", "").
	Unit string `json:"unit,omitempty"`
}

// NewSummaryInfo создаёт новый SummaryInfo.
func NewSummaryInfo() *SummaryInfo {
	return &SummaryInfo{
		KeyMetrics: make([]KeyMetric, 0),
		Warnings:   make([]string, 0),
	}
}

// AddMetric добавляет метрику в summary.
func (s *SummaryInfo) AddMetric(name, value, unit string) {
	s.KeyMetrics = append(s.KeyMetrics, KeyMetric{
		Name:  name,
		Value: value,
		Unit:  unit,
	})
}

// AddWarning добавляет предупреждение в summary.
func (s *SummaryInfo) AddWarning(msg string) {
	s.Warnings = append(s.Warnings, msg)
	s.WarningsCount++
}
