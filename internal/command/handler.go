// Package command предоставляет интерфейсы и реестр для команд приложения.
// Обработчики регистрируются явно через handlers.RegisterAll() из main,
// без побочных эффектов в init().
package command

import (
	"context"

	"github.com/Kargones/redmine2gitea/internal/config"
)

// Handler определяет интерфейс обработчика команды.
// Каждая команда приложения должна реализовывать этот интерфейс.
type Handler interface {
	// Name возвращает имя команды для регистрации в реестре.
	// Должно соответствовать константам из internal/constants
	// (например, "migrate", "check").
	Name() string

	// Description возвращает описание команды для вывода в help.
	Description() string

	// Execute выполняет команду с переданным контекстом и конфигурацией.
	// Возвращает ошибку если выполнение завершилось неуспешно.
	Execute(ctx context.Context, cfg *config.Config) error
}
