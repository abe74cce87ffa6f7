// Package dryrun предоставляет функции для работы с dry-run режимом.
// В dry-run режиме миграция читает и маппит задачи, но не пишет в Gitea.
package dryrun

import (
	"os"
	"strings"

	"github.com/Kargones/redmine2gitea/internal/constants"
)

// IsDryRun проверяет включён ли dry-run режим.
// Возвращает true если переменная окружения R2G_DRY_RUN равна "true" или "1"
// (без учёта регистра).
func IsDryRun() bool {
	val := os.Getenv(constants.EnvDryRun)
	return strings.EqualFold(val, "true") || val == "1"
}
