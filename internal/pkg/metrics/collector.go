// Package metrics предоставляет интерфейсы и реализации для сбора и отправки
// метрик миграции в Prometheus Pushgateway.
//
// Паттерны пакета:
//   - Interface Segregation: Collector interface для абстракции
//   - Factory pattern: NewCollector выбирает реализацию на основе конфигурации
//   - Graceful degradation: NopCollector при отключённых метриках
package metrics

import (
	"context"
	"time"
)

// Collector определяет интерфейс для сбора метрик миграции.
// Реализации: PrometheusCollector (активный) и NopCollector (no-op).
type Collector interface {
	// RecordIssueMigrated записывает успешный перенос задачи.
	// comments и attachments — количество перенесённых комментариев и вложений,
	// duration — время переноса одной задачи.
	RecordIssueMigrated(project string, comments, attachments int, duration time.Duration)

	// RecordIssueSkipped записывает пропуск задачи (например, приватной).
	RecordIssueSkipped(project, reason string)

	// RecordIssueFailed записывает ошибку переноса задачи.
	// code — код ошибки вида "MAPPING.UNMAPPED_LABEL".
	RecordIssueFailed(project, code string)

	// RecordRunEnd записывает завершение команды с результатом.
	RecordRunEnd(command, project string, duration time.Duration, success bool)

	// Push отправляет метрики в Pushgateway.
	// Всегда возвращает nil — ошибки отправки логируются внутри реализации,
	// неудачный push не должен приводить к ненулевому exit code.
	Push(ctx context.Context) error
}
