package main

import (
	"errors"
	"testing"

	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "частичная миграция",
			err:  apperrors.NewAppError(apperrors.ErrMigratePartial, "часть задач не перенесена", nil),
			want: 1,
		},
		{
			name: "прерванная миграция",
			err:  apperrors.NewAppError(apperrors.ErrMigrateAborted, "токен отвергнут", nil),
			want: 8,
		},
		{
			name: "ошибка валидации конфигурации",
			err:  apperrors.NewAppError(apperrors.ErrConfigValidate, "не заданы переменные", nil),
			want: 5,
		},
		{
			name: "ошибка парсинга конфигурации",
			err:  apperrors.NewAppError(apperrors.ErrConfigParse, "невалидное значение", nil),
			want: 5,
		},
		{
			name: "ошибка без кода",
			err:  errors.New("что-то пошло не так"),
			want: 8,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, ожидалось %d", got, tt.want)
			}
		})
	}
}
