// Package main содержит точку входа утилиты redmine2gitea.
// Утилита переносит задачи проекта Redmine в репозиторий Gitea.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Kargones/redmine2gitea/internal/command"
	"github.com/Kargones/redmine2gitea/internal/command/handlers"
	"github.com/Kargones/redmine2gitea/internal/config"
	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/di"
	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
	"github.com/Kargones/redmine2gitea/internal/pkg/tracing"
)

func main() {
	os.Exit(run())
}

// run содержит основную логику приложения и возвращает exit code.
// Вынесена из main(), чтобы os.Exit() вызывался ПОСЛЕ отработки всех
// defer-ов (tracerShutdown, span.End). Иначе трейсы ошибочных
// выполнений теряются: os.Exit() не выполняет defer.
//
// Exit codes:
//
//	0 — успех
//	1 — MIGRATE.PARTIAL: часть задач не перенесена
//	2 — неизвестная команда
//	5 — ошибка конфигурации
//	8 — прочие ошибки выполнения
func run() int {
	ctx := context.Background()
	cfg, err := config.MustLoad()
	if err != nil || cfg == nil {
		fmt.Fprintf(os.Stderr, "Не удалось загрузить конфигурацию приложения: %v\n", err)
		return 5
	}
	l := cfg.Logger
	l.Debug("Информация о сборке",
		"version", constants.Version,
		"commit_hash", constants.PreCommitHash,
	)

	// Пустая команда → help
	if cfg.Command == "" {
		cfg.Command = constants.ActHelp
	}

	if err := handlers.RegisterAll(); err != nil {
		l.Error("Не удалось зарегистрировать команды", "error", err.Error())
		return 8
	}

	// Генерируем trace_id для корреляции логов и связываем его
	// с OTel span context — все span-ы используют этот trace ID.
	traceID := tracing.GenerateTraceID()
	ctx = tracing.WithTraceID(ctx, traceID)
	ctx = tracing.ContextWithOTelTraceID(ctx, traceID)

	collector := di.ProvideMetricsCollector(cfg, l)
	cfg.Collector = collector

	tracerShutdown := di.ProvideTracerProvider(cfg, l)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerShutdown(shutdownCtx); err != nil {
			l.Error("ошибка завершения tracing",
				"error", err.Error(),
				"trace_id", traceID,
				"command", cfg.Command,
			)
		}
	}()

	tracer := otel.Tracer("redmine2gitea")
	ctx, span := tracer.Start(ctx, cfg.Command,
		trace.WithAttributes(
			attribute.String("command", cfg.Command),
			attribute.String("project", cfg.Redmine.Project),
			attribute.String("trace_id", traceID),
		),
	)
	defer span.End()

	handler, ok := command.Get(cfg.Command)
	if !ok {
		l.Error("Неизвестная команда", "command", cfg.Command)
		fmt.Fprintf(os.Stderr, "Неизвестная команда: %s\nДоступные команды: %s\n",
			cfg.Command, strings.Join(command.Names(), ", "))
		return 2
	}

	l.Debug("Выполнение команды", "command", cfg.Command, "trace_id", traceID)
	start := time.Now()

	execErr := handler.Execute(ctx, cfg)

	collector.RecordRunEnd(cfg.Command, cfg.Redmine.Project, time.Since(start), execErr == nil)
	_ = collector.Push(ctx) // Ошибки push логируются внутри, не критичны

	if execErr != nil {
		l.Error("Ошибка выполнения команды",
			"command", cfg.Command,
			"error", execErr.Error(),
			constants.MsgErrProcessing, constants.MsgAppExit,
		)
		return exitCode(execErr)
	}
	return 0
}

// exitCode переводит ошибку команды в exit code процесса.
func exitCode(err error) int {
	code := apperrors.CodeOf(err)
	switch {
	case code == apperrors.ErrMigratePartial:
		return 1
	case strings.HasPrefix(code, "CONFIG."):
		return 5
	default:
		return 8
	}
}
