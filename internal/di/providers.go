package di

import (
	"context"
	"os"

	"github.com/Kargones/redmine2gitea/internal/config"
	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
	"github.com/Kargones/redmine2gitea/internal/pkg/metrics"
	"github.com/Kargones/redmine2gitea/internal/pkg/output"
	"github.com/Kargones/redmine2gitea/internal/pkg/tracing"
)

// ProvideLogger возвращает логгер приложения.
// Переиспользует Logger, созданный в config.MustLoad(); если конфигурация
// пришла без него — создаёт новый из Config.Logging.
func ProvideLogger(cfg *config.Config) logging.Logger {
	if cfg != nil && cfg.Logger != nil {
		return cfg.Logger
	}
	if cfg == nil {
		return logging.NewLogger(logging.DefaultConfig())
	}
	return logging.NewLogger(cfg.LoggingSettings())
}

// ProvideOutputWriter создаёт OutputWriter на основе R2G_OUTPUT_FORMAT.
//
// Провайдер читает переменную окружения напрямую:
//   - "json": возвращает JSONWriter
//   - "text" или пустая строка: возвращает TextWriter (default)
func ProvideOutputWriter() output.Writer {
	format := os.Getenv(constants.EnvOutputFormat)
	if format == "" {
		format = output.FormatText
	}
	return output.NewWriter(format)
}

// ProvideTraceID генерирует уникальный trace_id для корреляции логов.
// Формат: 32-символьный hex string (16 байт).
// Генерируется один раз при инициализации App и используется
// для корреляции всех логов в рамках одного запуска команды.
func ProvideTraceID() string {
	return tracing.GenerateTraceID()
}

// ProvideMetricsCollector создаёт Collector на основе Config.Metrics.
// Если метрики отключены — возвращает NopCollector.
// При ошибке создания возвращает NopCollector и логирует ошибку:
// недоступные метрики не должны блокировать миграцию.
func ProvideMetricsCollector(cfg *config.Config, logger logging.Logger) metrics.Collector {
	if cfg == nil {
		return metrics.NewNopCollector()
	}

	collector, err := metrics.NewCollector(cfg.MetricsSettings(), logger)
	if err != nil {
		logger.Error("ошибка создания MetricsCollector, используется NopCollector",
			"error", err.Error(),
		)
		return metrics.NewNopCollector()
	}

	return collector
}

// ProvideTracerProvider создаёт и инициализирует OTel TracerProvider.
// Возвращает shutdown function для graceful завершения.
// Если трейсинг отключён — возвращает nop shutdown.
// При ошибке инициализации возвращает nop shutdown и логирует ошибку.
func ProvideTracerProvider(cfg *config.Config, logger logging.Logger) func(context.Context) error {
	if cfg == nil {
		return tracing.NewNopTracerProvider()
	}

	shutdown, err := tracing.NewTracerProvider(cfg.TracingSettings(constants.Version), logger)
	if err != nil {
		logger.Error("ошибка инициализации tracing, используется nop provider",
			"error", err.Error(),
		)
		return tracing.NewNopTracerProvider()
	}

	return shutdown
}
