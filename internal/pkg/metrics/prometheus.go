package metrics

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
	"github.com/Kargones/redmine2gitea/internal/pkg/urlutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

// PrometheusCollector реализует Collector с Prometheus метриками.
// Отправляет метрики в Pushgateway при вызове Push().
type PrometheusCollector struct {
	config   Config
	logger   logging.Logger
	registry *prometheus.Registry

	// Метрики
	issuesMigrated      *prometheus.CounterVec
	issuesSkipped       *prometheus.CounterVec
	issuesFailed        *prometheus.CounterVec
	commentsMigrated    *prometheus.CounterVec
	attachmentsMigrated *prometheus.CounterVec
	issueDuration       *prometheus.HistogramVec
	runDuration         *prometheus.HistogramVec

	// Instance label (hostname)
	instance string
}

// NewPrometheusCollector создаёт PrometheusCollector с указанной конфигурацией.
// Регистрирует метрики:
//   - r2g_issues_migrated_total (counter)
//   - r2g_issues_skipped_total (counter)
//   - r2g_issues_failed_total (counter)
//   - r2g_comments_migrated_total (counter)
//   - r2g_attachments_migrated_total (counter)
//   - r2g_issue_duration_seconds (histogram)
//   - r2g_run_duration_seconds (histogram)
func NewPrometheusCollector(config Config, logger logging.Logger) (*PrometheusCollector, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	instance := config.InstanceLabel
	if instance == "" {
		hostname, err := os.Hostname()
		if err != nil {
			logger.Warn("не удалось получить hostname для metrics instance label, используется 'unknown'",
				"error", err.Error())
			hostname = "unknown"
		}
		instance = hostname
	}

	registry := prometheus.NewRegistry()

	issuesMigrated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "r2g",
			Name:      "issues_migrated_total",
			Help:      "Total number of issues migrated successfully",
		},
		[]string{"project"},
	)

	issuesSkipped := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "r2g",
			Name:      "issues_skipped_total",
			Help:      "Total number of issues skipped",
		},
		[]string{"project", "reason"},
	)

	issuesFailed := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "r2g",
			Name:      "issues_failed_total",
			Help:      "Total number of issues that failed to migrate",
		},
		[]string{"project", "code"},
	)

	commentsMigrated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "r2g",
			Name:      "comments_migrated_total",
			Help:      "Total number of issue comments migrated",
		},
		[]string{"project"},
	)

	attachmentsMigrated := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "r2g",
			Name:      "attachments_migrated_total",
			Help:      "Total number of issue attachments migrated",
		},
		[]string{"project"},
	)

	// Buckets покрывают диапазон от задачи без вложений (0.1s)
	// до задачи с большими файлами (минуты)
	issueDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "r2g",
			Name:      "issue_duration_seconds",
			Help:      "Duration of single issue migration in seconds",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		},
		[]string{"project"},
	)

	runDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "r2g",
			Name:      "run_duration_seconds",
			Help:      "Duration of command execution in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
		},
		[]string{"command", "project", "status"},
	)

	// Register вместо MustRegister для избежания panic.
	collectors := []prometheus.Collector{
		issuesMigrated, issuesSkipped, issuesFailed,
		commentsMigrated, attachmentsMigrated,
		issueDuration, runDuration,
	}
	for _, c := range collectors {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("ошибка регистрации метрики: %w", err)
		}
	}

	return &PrometheusCollector{
		config:              config,
		logger:              logger,
		registry:            registry,
		issuesMigrated:      issuesMigrated,
		issuesSkipped:       issuesSkipped,
		issuesFailed:        issuesFailed,
		commentsMigrated:    commentsMigrated,
		attachmentsMigrated: attachmentsMigrated,
		issueDuration:       issueDuration,
		runDuration:         runDuration,
		instance:            instance,
	}, nil
}

// maxLabelLength — максимальная длина значения label для защиты от cardinality explosion.
const maxLabelLength = 128

// sanitizeLabel обрезает значение label до допустимой длины и заменяет
// контрольные символы (\n, \r, \0), которые нарушают Prometheus text format.
// Обрезка по рунам (не по байтам) для корректной работы с UTF-8.
func sanitizeLabel(value string) string {
	clean := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		return r
	}, value)

	runes := []rune(clean)
	if len(runes) > maxLabelLength {
		return string(runes[:maxLabelLength])
	}
	return clean
}

// RecordIssueMigrated записывает успешный перенос задачи.
func (c *PrometheusCollector) RecordIssueMigrated(project string, comments, attachments int, duration time.Duration) {
	project = sanitizeLabel(project)

	c.issuesMigrated.WithLabelValues(project).Inc()
	c.commentsMigrated.WithLabelValues(project).Add(float64(comments))
	c.attachmentsMigrated.WithLabelValues(project).Add(float64(attachments))
	c.issueDuration.WithLabelValues(project).Observe(duration.Seconds())
}

// RecordIssueSkipped записывает пропуск задачи.
func (c *PrometheusCollector) RecordIssueSkipped(project, reason string) {
	c.issuesSkipped.WithLabelValues(sanitizeLabel(project), sanitizeLabel(reason)).Inc()
}

// RecordIssueFailed записывает ошибку переноса задачи.
func (c *PrometheusCollector) RecordIssueFailed(project, code string) {
	c.issuesFailed.WithLabelValues(sanitizeLabel(project), sanitizeLabel(code)).Inc()
}

// RecordRunEnd записывает завершение команды.
func (c *PrometheusCollector) RecordRunEnd(command, project string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}

	command = sanitizeLabel(command)
	project = sanitizeLabel(project)

	c.runDuration.WithLabelValues(command, project, status).Observe(duration.Seconds())

	c.logger.Debug("metrics: run ended",
		"command", command,
		"project", project,
		"duration_ms", duration.Milliseconds(),
		"success", success,
	)
}

// Push отправляет метрики в Pushgateway.
// Возвращает nil даже при ошибке — ошибки логируются.
func (c *PrometheusCollector) Push(ctx context.Context) error {
	if c.config.PushgatewayURL == "" {
		c.logger.Debug("metrics: pushgateway URL not configured, skipping push")
		return nil
	}

	select {
	case <-ctx.Done():
		c.logger.Debug("metrics push отменён")
		return nil
	default:
	}

	pusher := push.New(c.config.PushgatewayURL, c.config.JobName).
		Gatherer(c.registry).
		Grouping("instance", c.instance)

	pushCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	if err := pusher.PushContext(pushCtx); err != nil {
		c.logger.Error("ошибка отправки метрик в Pushgateway",
			"error", err.Error(),
			"url", urlutil.MaskURL(c.config.PushgatewayURL),
			"job", c.config.JobName,
		)
		// Ошибка метрик не критична для результата миграции
		return nil
	}

	c.logger.Info("метрики отправлены в Pushgateway",
		"url", urlutil.MaskURL(c.config.PushgatewayURL),
		"job", c.config.JobName,
		"instance", c.instance,
	)
	return nil
}

// GetRegistry возвращает внутренний registry.
// Экспортируется только для unit-тестов.
func (c *PrometheusCollector) GetRegistry() *prometheus.Registry {
	return c.registry
}
