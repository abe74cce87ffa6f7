package mapper

import (
	"errors"
	"fmt"

	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
)

// Коды ошибок маппинга. Ошибки маппинга — per-issue: одна немаппящаяся
// задача не прерывает прогон, а фиксируется в отчёте.
const (
	// ErrUnmappedLabel — категория или трекер задачи отсутствуют в таблице
	// маппинга и fallback не настроен. Жёсткая ошибка задачи: молча терять
	// информацию триажа нельзя.
	ErrUnmappedLabel = "MAPPING.UNMAPPED_LABEL"

	// ErrUnmappedStatus — статус задачи отсутствует в таблице статусов.
	ErrUnmappedStatus = "MAPPING.UNMAPPED_STATUS"

	// ErrMappingFileInvalid — файл переопределения маппинга не прошёл
	// валидацию по схеме или не распарсился.
	ErrMappingFileInvalid = "MAPPING.FILE_INVALID"
)

// MappingError представляет ошибку маппинга задачи.
type MappingError struct {
	// Code — код ошибки (одна из констант ErrUnmapped*/ErrMappingFileInvalid)
	Code string
	// Message — человекочитаемое описание с указанием проблемного значения,
	// чтобы таблицу маппинга можно было дополнить
	Message string
	// Cause — оригинальная ошибка (если есть)
	Cause error
}

// Error реализует интерфейс error.
func (e *MappingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap возвращает оригинальную ошибку для использования с errors.Is/As.
func (e *MappingError) Unwrap() error {
	return e.Cause
}

// ErrorCode возвращает машиночитаемый код ошибки.
// Реализует интерфейс apperrors.Coded.
func (e *MappingError) ErrorCode() string {
	return e.Code
}

// As поддерживает преобразование MappingError в apperrors.AppError через errors.As.
func (e *MappingError) As(target interface{}) bool {
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

// NewMappingError создаёт новую ошибку маппинга.
func NewMappingError(code, message string, cause error) *MappingError {
	return &MappingError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsUnmappedLabel проверяет, является ли ошибка отсутствием метки в маппинге.
// Поддерживает wrapped errors через errors.As.
func IsUnmappedLabel(err error) bool {
	var mapErr *MappingError
	if errors.As(err, &mapErr) {
		return mapErr.Code == ErrUnmappedLabel
	}
	return false
}

// IsUnmappedStatus проверяет, является ли ошибка отсутствием статуса в маппинге.
// Поддерживает wrapped errors через errors.As.
func IsUnmappedStatus(err error) bool {
	var mapErr *MappingError
	if errors.As(err, &mapErr) {
		return mapErr.Code == ErrUnmappedStatus
	}
	return false
}
