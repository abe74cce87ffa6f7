// Package config предоставляет загрузку и валидацию конфигурации приложения.
// Конфигурация читается из переменных окружения (prefix R2G_) через cleanenv,
// перед чтением подгружается опциональный файл .env (godotenv).
package config

import (
	"time"

	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
	"github.com/Kargones/redmine2gitea/internal/pkg/metrics"
	"github.com/Kargones/redmine2gitea/internal/pkg/tracing"
)

// RedmineConfig содержит параметры подключения к исходному трекеру Redmine.
type RedmineConfig struct {
	// URL - базовый адрес Redmine, например "https://redmine.example.com".
	URL string `env:"R2G_REDMINE_URL"`

	// APIKey - ключ API Redmine, передаётся в заголовке X-Redmine-API-Key.
	// СЕКРЕТ: не логировать.
	APIKey string `env:"R2G_REDMINE_API_KEY"`

	// Project - идентификатор проекта Redmine (slug), задачи которого переносятся.
	Project string `env:"R2G_REDMINE_PROJECT"`
}

// GiteaConfig содержит параметры подключения к целевому трекеру Gitea.
type GiteaConfig struct {
	// URL - базовый адрес Gitea, например "https://gitea.example.com".
	URL string `env:"R2G_GITEA_URL"`

	// Token - access token Gitea. СЕКРЕТ: не логировать.
	Token string `env:"R2G_GITEA_TOKEN"`

	// Owner - владелец целевого репозитория (пользователь или организация).
	Owner string `env:"R2G_GITEA_OWNER"`

	// Repo - имя целевого репозитория.
	Repo string `env:"R2G_GITEA_REPO"`
}

// LoggingConfig содержит настройки логирования.
// Значения по умолчанию синхронизированы с logging.DefaultXxx.
type LoggingConfig struct {
	// Level - уровень логирования (debug, info, warn, error)
	Level string `env:"R2G_LOG_LEVEL" env-default:"info"`

	// Format - формат логов (json, text)
	Format string `env:"R2G_LOG_FORMAT" env-default:"text"`

	// Output - вывод логов (stderr, file)
	Output string `env:"R2G_LOG_OUTPUT" env-default:"stderr"`

	// FilePath - путь к файлу логов (если output=file)
	FilePath string `env:"R2G_LOG_FILE_PATH"`

	// MaxSize - максимальный размер файла лога в MB
	MaxSize int `env:"R2G_LOG_MAX_SIZE" env-default:"100"`

	// MaxBackups - максимальное количество backup файлов
	MaxBackups int `env:"R2G_LOG_MAX_BACKUPS" env-default:"3"`

	// MaxAge - максимальный возраст backup файлов в днях
	MaxAge int `env:"R2G_LOG_MAX_AGE" env-default:"7"`

	// Compress - сжимать ли backup файлы
	Compress bool `env:"R2G_LOG_COMPRESS" env-default:"true"`
}

// MetricsConfig содержит настройки Prometheus метрик.
type MetricsConfig struct {
	// Enabled — включены ли метрики (по умолчанию false).
	Enabled bool `env:"R2G_METRICS_ENABLED" env-default:"false"`

	// PushgatewayURL — URL Prometheus Pushgateway.
	PushgatewayURL string `env:"R2G_METRICS_PUSHGATEWAY_URL"`

	// JobName — имя job для группировки метрик.
	JobName string `env:"R2G_METRICS_JOB_NAME" env-default:"redmine2gitea"`

	// Timeout — таймаут HTTP запросов к Pushgateway.
	Timeout time.Duration `env:"R2G_METRICS_TIMEOUT" env-default:"10s"`

	// InstanceLabel — переопределение instance label (по умолчанию hostname).
	InstanceLabel string `env:"R2G_METRICS_INSTANCE"`
}

// TracingConfig содержит настройки OpenTelemetry трейсинга.
type TracingConfig struct {
	// Enabled — включён ли трейсинг (по умолчанию false).
	Enabled bool `env:"R2G_TRACING_ENABLED" env-default:"false"`

	// Endpoint — OTLP HTTP endpoint, например "http://jaeger:4318".
	Endpoint string `env:"R2G_TRACING_ENDPOINT"`

	// ServiceName — имя сервиса для resource attributes.
	ServiceName string `env:"R2G_TRACING_SERVICE_NAME" env-default:"redmine2gitea"`

	// Environment — окружение (production, staging, development).
	Environment string `env:"R2G_TRACING_ENVIRONMENT" env-default:"production"`

	// Insecure — использовать HTTP вместо HTTPS.
	Insecure bool `env:"R2G_TRACING_INSECURE" env-default:"false"`

	// Timeout — таймаут для экспорта трейсов.
	Timeout time.Duration `env:"R2G_TRACING_TIMEOUT" env-default:"5s"`

	// SamplingRate — доля сэмплируемых трейсов [0.0, 1.0].
	SamplingRate float64 `env:"R2G_TRACING_SAMPLING_RATE" env-default:"1.0"`
}

// Config представляет полную конфигурацию приложения.
// Заполняется один раз в MustLoad и передаётся явно во все компоненты —
// глобального состояния конфигурации нет.
type Config struct {
	// Command - команда для выполнения (migrate, check, version, help).
	Command string `env:"R2G_COMMAND" env-default:"migrate"`

	// Redmine - параметры исходного трекера.
	Redmine RedmineConfig

	// Gitea - параметры целевого трекера.
	Gitea GiteaConfig

	// MappingFile - путь к опциональному YAML файлу с переопределением
	// таблиц маппинга меток и статусов. Пусто — используются встроенные таблицы.
	MappingFile string `env:"R2G_MAPPING_FILE"`

	// DryRun - режим без записи: чтение и маппинг выполняются,
	// обращений к Gitea API на запись нет.
	DryRun bool `env:"R2G_DRY_RUN" env-default:"false"`

	// HTTPTimeout - таймаут одного HTTP-запроса к любому из API.
	HTTPTimeout time.Duration `env:"R2G_HTTP_TIMEOUT" env-default:"30s"`

	// RetryMax - максимальное количество повторов при TARGET.RATE_LIMITED.
	RetryMax int `env:"R2G_RETRY_MAX" env-default:"5"`

	// Logging - настройки логирования.
	Logging LoggingConfig

	// Metrics - настройки метрик.
	Metrics MetricsConfig

	// Tracing - настройки трейсинга.
	Tracing TracingConfig

	// Logger - инициализированный логгер приложения.
	// Заполняется в MustLoad, не читается из окружения.
	Logger logging.Logger `env:"-"`

	// Collector - коллектор метрик миграции.
	// Заполняется в main после загрузки конфигурации, не читается из окружения.
	// nil означает NopCollector.
	Collector metrics.Collector `env:"-"`
}

// LoggingSettings конвертирует LoggingConfig в logging.Config.
func (c *Config) LoggingSettings() logging.Config {
	return logging.Config{
		Level:      c.Logging.Level,
		Format:     c.Logging.Format,
		Output:     c.Logging.Output,
		FilePath:   c.Logging.FilePath,
		MaxSize:    c.Logging.MaxSize,
		MaxBackups: c.Logging.MaxBackups,
		MaxAge:     c.Logging.MaxAge,
		Compress:   c.Logging.Compress,
	}
}

// MetricsSettings конвертирует MetricsConfig в metrics.Config.
func (c *Config) MetricsSettings() metrics.Config {
	return metrics.Config{
		Enabled:        c.Metrics.Enabled,
		PushgatewayURL: c.Metrics.PushgatewayURL,
		JobName:        c.Metrics.JobName,
		Timeout:        c.Metrics.Timeout,
		InstanceLabel:  c.Metrics.InstanceLabel,
	}
}

// TracingSettings конвертирует TracingConfig в tracing.Config.
// Version заполняется вызывающей стороной из constants.Version.
func (c *Config) TracingSettings(version string) tracing.Config {
	return tracing.Config{
		Enabled:      c.Tracing.Enabled,
		Endpoint:     c.Tracing.Endpoint,
		ServiceName:  c.Tracing.ServiceName,
		Version:      version,
		Environment:  c.Tracing.Environment,
		Insecure:     c.Tracing.Insecure,
		Timeout:      c.Tracing.Timeout,
		SamplingRate: c.Tracing.SamplingRate,
	}
}
