package logging

import "log/slog"

// SlogAdapter — production-реализация Logger поверх log/slog.
// Обёртка тонкая: уровни и атрибуты транслируются в slog один в один.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter оборачивает готовый slog.Logger.
// Обычный путь создания — NewLogger() с конфигурацией; этот конструктор
// нужен тестам и коду, который уже настроил slog сам.
// nil заменяется на slog.Default() с предупреждением.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
		logger.Warn("logging: nil slog.Logger passed to NewSlogAdapter, using default")
	}
	return &SlogAdapter{logger: logger}
}

// Debug записывает сообщение уровня DEBUG.
func (s *SlogAdapter) Debug(msg string, args ...any) {
	s.logger.Debug(msg, args...)
}

// Info записывает сообщение уровня INFO.
func (s *SlogAdapter) Info(msg string, args ...any) {
	s.logger.Info(msg, args...)
}

// Warn записывает сообщение уровня WARN.
func (s *SlogAdapter) Warn(msg string, args ...any) {
	s.logger.Warn(msg, args...)
}

// Error записывает сообщение уровня ERROR.
func (s *SlogAdapter) Error(msg string, args ...any) {
	s.logger.Error(msg, args...)
}

// With возвращает дочерний Logger с добавленными атрибутами.
// Исходный логгер не меняется.
func (s *SlogAdapter) With(args ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(args...)}
}
