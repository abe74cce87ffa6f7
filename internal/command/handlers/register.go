// Package handlers выполняет явную регистрацию всех обработчиков команд.
// Явная регистрация вместо init() делает граф зависимостей видимым,
// тестируемым и свободным от побочных эффектов импорта.
package handlers

import (
	"github.com/Kargones/redmine2gitea/internal/command/handlers/checkhandler"
	"github.com/Kargones/redmine2gitea/internal/command/handlers/help"
	"github.com/Kargones/redmine2gitea/internal/command/handlers/migratehandler"
	"github.com/Kargones/redmine2gitea/internal/command/handlers/version"
)

// RegisterAll явно регистрирует все обработчики команд в глобальном реестре.
// Вызывается один раз из main() до обращения к командам.
// Возвращает ошибку, если регистрация любого обработчика не удалась.
func RegisterAll() error {
	if err := migratehandler.RegisterCmd(); err != nil {
		return err
	}
	if err := checkhandler.RegisterCmd(); err != nil {
		return err
	}
	if err := version.RegisterCmd(); err != nil {
		return err
	}
	if err := help.RegisterCmd(); err != nil {
		return err
	}
	return nil
}
