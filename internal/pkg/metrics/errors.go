package metrics

import "errors"

// Ошибки валидации конфигурации метрик. Проверяются через errors.Is().
var (
	// ErrPushgatewayURLRequired — метрики включены, но URL Pushgateway не задан.
	ErrPushgatewayURLRequired = errors.New("pushgateway URL is required when metrics enabled")

	// ErrPushgatewayURLInvalid — URL Pushgateway не парсится или без схемы.
	ErrPushgatewayURLInvalid = errors.New("pushgateway URL has invalid format")

	// ErrJobNameRequired — пустое имя job для Pushgateway.
	ErrJobNameRequired = errors.New("job name is required")

	// ErrInvalidTimeout — неположительный таймаут push-запроса.
	ErrInvalidTimeout = errors.New("timeout must be positive")
)
