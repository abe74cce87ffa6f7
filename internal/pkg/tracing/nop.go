package tracing

import "context"

// NewNopTracerProvider возвращает shutdown-заглушку для выключенного трейсинга.
// Вызывающий код всегда получает валидную shutdown function и не проверяет nil.
func NewNopTracerProvider() func(context.Context) error {
	return func(context.Context) error { return nil }
}
