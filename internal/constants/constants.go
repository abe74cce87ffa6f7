// Package constants содержит все константы, используемые в проекте redmine2gitea.
// Константы сгруппированы по их функциональному назначению для удобства использования и поддержки.
package constants

import "time"

// APIVersion - версия API Gitea и версия формата JSON-вывода.
const APIVersion = "v1"

// Константы действий (команд)
const (
	// ActMigrate - действие миграции задач из Redmine в Gitea
	ActMigrate = "migrate"
	// ActCheck - действие проверки доступности и учётных данных обоих API
	ActCheck = "check"
	// ActVersion - действие вывода информации о версии
	ActVersion = "version"
	// ActHelp - действие вывода списка доступных команд
	ActHelp = "help"
)

// Имена переменных окружения, не входящих в конфигурационные структуры.
const (
	// EnvCommand - имя команды для выполнения
	EnvCommand = "R2G_COMMAND"
	// EnvOutputFormat - формат вывода результатов (text, json)
	EnvOutputFormat = "R2G_OUTPUT_FORMAT"
	// EnvDryRun - режим без записи в целевой трекер
	EnvDryRun = "R2G_DRY_RUN"
)

// Константы меток целевого репозитория.
const (
	// LabelSupport - фиксированная метка, добавляемая каждой мигрированной задаче
	LabelSupport = "support"
	// LabelWontfix - дополнительная метка для задач со статусом Rejected
	LabelWontfix = "wontfix"
)

// Константы пагинации Redmine API.
const (
	// IssuesPageLimit - количество задач на одной странице.
	// Максимальное значение, поддерживаемое Redmine API.
	IssuesPageLimit = 100

	// IssuesMaxPages - максимальное количество страниц для запроса задач.
	// Защита от бесконечного цикла. 1000 страниц × 100 = 100000 задач максимум.
	IssuesMaxPages = 1000
)

// DefaultHTTPTimeout - таймаут одного HTTP-запроса к любому из API.
// Единственный механизм отмены: интерактивной отмены у утилиты нет.
const DefaultHTTPTimeout = 30 * time.Second

// DefaultRetryMax - максимальное количество повторов при RATE_LIMITED.
const DefaultRetryMax = 5

// Константы сообщений приложения
const (
	// MsgAppExit - сообщение о завершении работы программы
	MsgAppExit = "Завершение работы программы"
	// MsgErrProcessing - сообщение об обработке ошибки
	MsgErrProcessing = "Обработка ошибки"
)
