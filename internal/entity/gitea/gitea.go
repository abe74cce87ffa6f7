// Package gitea предоставляет клиент REST API Gitea — целевого трекера
// миграции. Клиент создаёт задачи, комментарии, метки и вложения
// в одном репозитории.
package gitea

import (
	"net/http"
	"time"

	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
)

// Config содержит параметры подключения к Gitea API.
type Config struct {
	// GiteaURL - базовый адрес Gitea, например "https://gitea.example.com".
	GiteaURL string

	// AccessToken - access token. СЕКРЕТ: не логировать.
	AccessToken string

	// Owner - владелец целевого репозитория.
	Owner string

	// Repo - имя целевого репозитория.
	Repo string

	// Timeout - таймаут одного HTTP-запроса.
	Timeout time.Duration

	// Logger - логгер; nil заменяется на NopLogger.
	Logger logging.Logger
}

// API предоставляет методы для записи в Gitea.
type API struct {
	giteaURL    string
	accessToken string
	owner       string
	repo        string
	client      *http.Client
	logger      logging.Logger
}

// NewAPI создаёт новый экземпляр API для работы с Gitea.
// Параметры:
//   - config: конфигурация с настройками подключения к Gitea
//
// Возвращает:
//   - *API: указатель на новый экземпляр клиента Gitea
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
		giteaURL:    config.GiteaURL,
		accessToken: config.AccessToken,
		owner:       config.Owner,
		repo:        config.Repo,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}
