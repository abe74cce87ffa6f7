// Package redmine предоставляет read-only клиент REST API Redmine —
// источника задач при миграции. Клиент никогда не модифицирует данные
// в Redmine: только GET запросы.
package redmine

import (
	"net/http"
	"time"

	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
)

// Config содержит параметры подключения к Redmine API.
type Config struct {
	// BaseURL - базовый адрес Redmine, например "https://redmine.example.com".
	BaseURL string

	// APIKey - ключ API, передаётся в заголовке X-Redmine-API-Key.
	APIKey string

	// Project - идентификатор проекта (slug), задачи которого переносятся.
	Project string

	// Timeout - таймаут одного HTTP-запроса.
	Timeout time.Duration

	// Logger - логгер; nil заменяется на NopLogger.
	Logger logging.Logger
}

// API предоставляет методы для чтения задач из Redmine.
type API struct {
	baseURL string
	apiKey  string
	project string
	client  *http.Client
	logger  logging.Logger
}

// NewAPI создаёт новый экземпляр API для работы с Redmine.
// Параметры:
//   - config: конфигурация с настройками подключения к Redmine
//
// Возвращает:
//   - *API: указатель на новый экземпляр клиента Redmine
func NewAPI(config Config) *API {
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultHTTPTimeout
	}
	logger := config.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &API{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		project: config.Project,
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}
