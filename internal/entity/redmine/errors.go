package redmine

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
)

// Коды ошибок для операций с Redmine API.
const (
	// ErrSourceUnavailable — транспортная ошибка или 5xx от Redmine
	ErrSourceUnavailable = "SOURCE.UNAVAILABLE"
	// ErrSourceAuthFailed — недостаточно прав (401/403)
	ErrSourceAuthFailed = "SOURCE.AUTH_FAILED"
	// ErrSourceNotFound — проект или задача не найдены (404)
	ErrSourceNotFound = "SOURCE.NOT_FOUND"
	// ErrSourceDecodeFailed — ответ не распарсился как ожидаемый JSON
	ErrSourceDecodeFailed = "SOURCE.DECODE_FAILED"
	// ErrSourceAPIFailed — прочие ошибки API
	ErrSourceAPIFailed = "SOURCE.API_FAILED"
)

// SourceError представляет ошибку при работе с Redmine API.
type SourceError struct {
	// Code — код ошибки (одна из констант ErrSource*)
	Code string
	// Message — человекочитаемое описание ошибки
	Message string
	// Cause — оригинальная ошибка (если есть)
	Cause error
	// StatusCode — HTTP статус код ответа (если применимо)
	StatusCode int
}

// Error реализует интерфейс error.
func (e *SourceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap возвращает оригинальную ошибку для использования с errors.Is/As.
func (e *SourceError) Unwrap() error {
	return e.Cause
}

// ErrorCode возвращает машиночитаемый код ошибки.
// Реализует интерфейс apperrors.Coded.
func (e *SourceError) ErrorCode() string {
	return e.Code
}

// As поддерживает преобразование SourceError в apperrors.AppError через errors.As.
func (e *SourceError) As(target interface{}) bool {
	if t, ok := target.(**apperrors.AppError); ok {
		*t = &apperrors.AppError{
			Code:    e.Code,
			Message: e.Message,
			Cause:   e.Cause,
		}
		return true
	}
	return false
}

// NewSourceError создаёт новую ошибку Redmine.
func NewSourceError(code, message string, cause error) *SourceError {
	return &SourceError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// statusError классифицирует неуспешный HTTP статус Redmine API.
func statusError(op string, statusCode int) *SourceError {
	var code string
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		code = ErrSourceAuthFailed
	case statusCode == http.StatusNotFound:
		code = ErrSourceNotFound
	case statusCode >= 500:
		code = ErrSourceUnavailable
	default:
		code = ErrSourceAPIFailed
	}
	return &SourceError{
		Code:       code,
		Message:    fmt.Sprintf("%s: статус %d", op, statusCode),
		StatusCode: statusCode,
	}
}

// IsNotFound проверяет, является ли ошибка ошибкой "не найдено".
// Поддерживает wrapped errors через errors.As.
func IsNotFound(err error) bool {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Code == ErrSourceNotFound
	}
	return false
}

// IsAuthFailed проверяет, является ли ошибка ошибкой аутентификации.
// Поддерживает wrapped errors через errors.As.
func IsAuthFailed(err error) bool {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Code == ErrSourceAuthFailed
	}
	return false
}

// IsUnavailable проверяет, является ли ошибка транспортной ошибкой или 5xx.
// Поддерживает wrapped errors через errors.As.
func IsUnavailable(err error) bool {
	var srcErr *SourceError
	if errors.As(err, &srcErr) {
		return srcErr.Code == ErrSourceUnavailable
	}
	return false
}
