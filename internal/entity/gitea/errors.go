package gitea

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
)

// Коды ошибок для операций с Gitea API.
const (
	// ErrTargetUnavailable — транспортная ошибка или 5xx от Gitea
	ErrTargetUnavailable = "TARGET.UNAVAILABLE"
	// ErrTargetAuthFailed — недостаточно прав (401/403)
	ErrTargetAuthFailed = "TARGET.AUTH_FAILED"
	// ErrTargetRateLimited — превышен лимит запросов (429), ошибка retryable
	ErrTargetRateLimited = "TARGET.RATE_LIMITED"
	// ErrTargetNotFound — репозиторий или задача не найдены (404)
	ErrTargetNotFound = "TARGET.NOT_FOUND"
	// ErrTargetAPIFailed — прочие ошибки API
	ErrTargetAPIFailed = "TARGET.API_FAILED"
)

// TargetError представляет ошибку при работе с Gitea API.
type TargetError struct {
	// Code — код ошибки (одна из констант ErrTarget*)
	Code string
	// Message — человекочитаемое описание ошибки
	Message string
	// Cause — оригинальная ошибка (если есть)
	Cause error
	// StatusCode — HTTP статус код ответа (если применимо)
	StatusCode int
}

// Error реализует интерфейс error.
func (e *TargetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap возвращает оригинальную ошибку для использования с errors.Is/As.
func (e *TargetError) Unwrap() error {
	return e.Cause
}

// ErrorCode возвращает машиночитаемый код ошибки.
// Реализует интерфейс apperrors.Coded.
func (e *TargetError) ErrorCode() string {
	return e.Code
}

// As поддерживает преобразование TargetError в apperrors.AppError через errors.As.
func (e *TargetError) As(target interface{}) bool {
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

// NewTargetError создаёт новую ошибку Gitea.
func NewTargetError(code, message string, cause error) *TargetError {
	return &TargetError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// statusError классифицирует неуспешный HTTP статус Gitea API.
func statusError(op string, statusCode int) *TargetError {
	var code string
	switch {
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		code = ErrTargetAuthFailed
	case statusCode == http.StatusTooManyRequests:
		code = ErrTargetRateLimited
	case statusCode == http.StatusNotFound:
		code = ErrTargetNotFound
	case statusCode >= 500:
		code = ErrTargetUnavailable
	default:
		code = ErrTargetAPIFailed
	}
	return &TargetError{
		Code:       code,
		Message:    fmt.Sprintf("%s: статус %d", op, statusCode),
		StatusCode: statusCode,
	}
}

// IsRateLimited проверяет, является ли ошибка превышением лимита запросов.
// Только такие ошибки повторяются с backoff.
func IsRateLimited(err error) bool {
	var tgtErr *TargetError
	if errors.As(err, &tgtErr) {
		return tgtErr.Code == ErrTargetRateLimited
	}
	return false
}

// IsAuthError проверяет, является ли ошибка ошибкой аутентификации.
// Поддерживает wrapped errors через errors.As.
func IsAuthError(err error) bool {
	var tgtErr *TargetError
	if errors.As(err, &tgtErr) {
		return tgtErr.Code == ErrTargetAuthFailed
	}
	return false
}

// IsNotFound проверяет, является ли ошибка ошибкой "не найдено".
// Поддерживает wrapped errors через errors.As.
func IsNotFound(err error) bool {
	var tgtErr *TargetError
	if errors.As(err, &tgtErr) {
		return tgtErr.Code == ErrTargetNotFound
	}
	return false
}
