package metrics

import (
	"context"
	"time"
)

// NopCollector — no-op реализация Collector.
// Используется когда метрики отключены (Config.Enabled = false).
type NopCollector struct{}

// NewNopCollector создаёт NopCollector.
func NewNopCollector() *NopCollector {
	return &NopCollector{}
}

// RecordIssueMigrated — no-op, ничего не делает.
func (c *NopCollector) RecordIssueMigrated(project string, comments, attachments int, duration time.Duration) {
}

// RecordIssueSkipped — no-op, ничего не делает.
func (c *NopCollector) RecordIssueSkipped(project, reason string) {}

// RecordIssueFailed — no-op, ничего не делает.
func (c *NopCollector) RecordIssueFailed(project, code string) {}

// RecordRunEnd — no-op, ничего не делает.
func (c *NopCollector) RecordRunEnd(command, project string, duration time.Duration, success bool) {}

// Push — no-op, всегда возвращает nil.
func (c *NopCollector) Push(ctx context.Context) error {
	return nil
}
