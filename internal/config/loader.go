package config

import (
	"fmt"
	"strings"

	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// MustLoad загружает конфигурацию приложения из окружения.
// Порядок:
//  1. Подгружается опциональный файл .env (отсутствие файла — не ошибка).
//  2. Переменные окружения читаются в Config через cleanenv.
//  3. Инициализируется логгер согласно R2G_LOG_*.
//  4. Проверяются обязательные параметры — при отсутствии возвращается
//     ошибка CONFIG.VALIDATION_FAILED до любого обращения к API.
//
// Возвращает:
//   - *Config: указатель на загруженную конфигурацию приложения
//   - error: ошибка загрузки конфигурации или nil при успехе
func MustLoad() (*Config, error) {
	// .env опционален: в CI конфигурация приходит из окружения напрямую
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigParse,
			"не удалось прочитать переменные окружения в Config", err)
	}

	cfg.Logger = logging.NewLogger(cfg.LoggingSettings())

	if err := validateRequiredParams(&cfg); err != nil {
		cfg.Logger.Error("валидация конфигурации не пройдена", "error", err.Error())
		return nil, err
	}

	return &cfg, nil
}

// validateRequiredParams проверяет наличие обязательных параметров конфигурации.
// Возвращает ошибку CONFIG.VALIDATION_FAILED с перечислением отсутствующих
// переменных окружения (без их значений).
// Команды version и help не обращаются к трекерам — для них параметры
// подключения не обязательны.
func validateRequiredParams(cfg *Config) error {
	if cfg.Command == constants.ActVersion || cfg.Command == constants.ActHelp {
		return nil
	}

	var missingParams []string

	if cfg.Redmine.URL == "" {
		missingParams = append(missingParams, "R2G_REDMINE_URL")
	}
	if cfg.Redmine.APIKey == "" {
		missingParams = append(missingParams, "R2G_REDMINE_API_KEY")
	}
	if cfg.Redmine.Project == "" {
		missingParams = append(missingParams, "R2G_REDMINE_PROJECT")
	}
	if cfg.Gitea.URL == "" {
		missingParams = append(missingParams, "R2G_GITEA_URL")
	}
	if cfg.Gitea.Token == "" {
		missingParams = append(missingParams, "R2G_GITEA_TOKEN")
	}
	if cfg.Gitea.Owner == "" {
		missingParams = append(missingParams, "R2G_GITEA_OWNER")
	}
	if cfg.Gitea.Repo == "" {
		missingParams = append(missingParams, "R2G_GITEA_REPO")
	}

	if len(missingParams) > 0 {
		return apperrors.NewAppError(apperrors.ErrConfigValidate,
			fmt.Sprintf("отсутствуют обязательные параметры конфигурации: %s",
				strings.Join(missingParams, ", ")),
			nil)
	}

	return nil
}
