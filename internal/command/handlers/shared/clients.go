// Package shared предоставляет общие утилиты для обработчиков команд:
// создание API клиентов из конфигурации и единый формат вывода ошибок.
package shared

import (
	"fmt"
	"os"

	"github.com/Kargones/redmine2gitea/internal/config"
	"github.com/Kargones/redmine2gitea/internal/entity/gitea"
	"github.com/Kargones/redmine2gitea/internal/entity/redmine"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
)

// CreateSourceClient создаёт клиент Redmine API из конфигурации.
func CreateSourceClient(cfg *config.Config) (*redmine.API, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не может быть nil")
	}

	return redmine.NewAPI(redmine.Config{
		BaseURL: cfg.Redmine.URL,
		APIKey:  cfg.Redmine.APIKey,
		Project: cfg.Redmine.Project,
		Timeout: cfg.HTTPTimeout,
		Logger:  handlerLogger(cfg),
	}), nil
}

// CreateTargetClient создаёт клиент Gitea API из конфигурации.
func CreateTargetClient(cfg *config.Config) (*gitea.API, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация не может быть nil")
	}

	return gitea.NewAPI(gitea.Config{
		GiteaURL:    cfg.Gitea.URL,
		AccessToken: cfg.Gitea.Token,
		Owner:       cfg.Gitea.Owner,
		Repo:        cfg.Gitea.Repo,
		Timeout:     cfg.HTTPTimeout,
		Logger:      handlerLogger(cfg),
	}), nil
}

// handlerLogger возвращает логгер из конфигурации или NopLogger.
func handlerLogger(cfg *config.Config) logging.Logger {
	if cfg != nil && cfg.Logger != nil {
		return cfg.Logger
	}
	return logging.NewNopLogger()
}

// HandleError выводит стандартизированное сообщение об ошибке в stdout
// и возвращает форматированную ошибку. Используется обработчиками
// в текстовом формате вывода.
func HandleError(message, code string) error {
	_, _ = fmt.Fprintf(os.Stdout, "Ошибка: %s\nКод: %s\n", message, code)
	return fmt.Errorf("%s: %s", code, message)
}
