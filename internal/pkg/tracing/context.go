package tracing

import "context"

// traceIDKey — приватный тип ключа context, исключает коллизии
// со значениями других пакетов.
type traceIDKey struct{}

// WithTraceID кладёт trace ID в context. Уже установленный
// идентификатор перезаписывается.
func WithTraceID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, id)
}

// TraceIDFromContext достаёт trace ID из context.
// При nil-контексте или отсутствии значения возвращает пустую строку.
func TraceIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(traceIDKey{}).(string)
	return id
}
