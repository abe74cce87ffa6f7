// Package migratehandler реализует команду migrate: перенос всех задач
// проекта Redmine в репозиторий Gitea.
package migratehandler

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/Kargones/redmine2gitea/internal/command"
	"github.com/Kargones/redmine2gitea/internal/command/handlers/shared"
	"github.com/Kargones/redmine2gitea/internal/config"
	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/mapper"
	"github.com/Kargones/redmine2gitea/internal/migration"
	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
	"github.com/Kargones/redmine2gitea/internal/pkg/dryrun"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
	"github.com/Kargones/redmine2gitea/internal/pkg/metrics"
	"github.com/Kargones/redmine2gitea/internal/pkg/output"
	"github.com/Kargones/redmine2gitea/internal/pkg/tracing"
)

func RegisterCmd() error {
	return command.Register(&MigrateHandler{})
}

// MigrateHandler обрабатывает команду migrate.
type MigrateHandler struct {
	// source — опциональный клиент источника (nil в production, fake в тестах)
	source migration.SourceReader
	// target — опциональный клиент целевого трекера (nil в production, fake в тестах)
	target migration.TargetWriter
	// out — приёмник вывода (nil в production → os.Stdout)
	out io.Writer
}

// Name возвращает имя команды.
func (h *MigrateHandler) Name() string {
	return constants.ActMigrate
}

// Description возвращает описание команды для вывода в help.
func (h *MigrateHandler) Description() string {
	return "Перенос задач проекта Redmine в репозиторий Gitea"
}

// writeText выводит отчёт миграции в человекочитаемом формате.
func writeText(w io.Writer, report *migration.Report) error {
	mode := ""
	if report.DryRun {
		mode = " (dry-run)"
	}
	_, err := fmt.Fprintf(w,
		"Миграция проекта %s%s\n  Всего задач:   %d\n  Перенесено:    %d\n  Пропущено:     %d\n  С ошибками:    %d\n  Комментариев:  %d\n  Вложений:      %d\n",
		report.Project, mode, report.Total, report.Migrated,
		report.Skipped, report.Failed, report.Comments, report.Attachments)
	if err != nil {
		return err
	}
	if len(report.Errors) > 0 {
		if _, err = fmt.Fprintln(w, "Задачи с ошибками:"); err != nil {
			return err
		}
		for _, issueID := range sortedIssueIDs(report.Errors) {
			if _, err = fmt.Fprintf(w, "  #%d: %s\n", issueID, report.Errors[issueID]); err != nil {
				return err
			}
		}
	}
	return nil
}

// Execute выполняет команду migrate.
func (h *MigrateHandler) Execute(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}

	format := os.Getenv(constants.EnvOutputFormat)
	out := h.out
	if out == nil {
		out = os.Stdout
	}

	if cfg == nil {
		return h.writeError(out, format, traceID, start,
			apperrors.ErrConfigValidate, "конфигурация не загружена", nil)
	}

	logger := handlerLogger(cfg).With("trace_id", traceID, "command", constants.ActMigrate)

	mapping, err := mapper.LoadMapping(cfg.MappingFile)
	if err != nil {
		logger.Error("Файл маппинга не загружен", "error", err.Error())
		return h.writeError(out, format, traceID, start,
			apperrors.CodeOf(err), err.Error(), nil)
	}

	source := h.source
	if source == nil {
		client, err := shared.CreateSourceClient(cfg)
		if err != nil {
			return h.writeError(out, format, traceID, start,
				apperrors.ErrConfigValidate, err.Error(), nil)
		}
		source = client
	}
	target := h.target
	if target == nil {
		client, err := shared.CreateTargetClient(cfg)
		if err != nil {
			return h.writeError(out, format, traceID, start,
				apperrors.ErrConfigValidate, err.Error(), nil)
		}
		target = client
	}

	collector := cfg.Collector
	if collector == nil {
		collector = metrics.NewNopCollector()
	}

	isDryRun := cfg.DryRun || dryrun.IsDryRun()
	logger.Info("Запуск миграции",
		"project", cfg.Redmine.Project,
		"repo", cfg.Gitea.Owner+"/"+cfg.Gitea.Repo,
		"dry_run", isDryRun,
	)

	svc := migration.NewService(migration.Config{
		Source:        source,
		Target:        target,
		Mapping:       mapping,
		SourceBaseURL: cfg.Redmine.URL,
		RetryMax:      cfg.RetryMax,
		DryRun:        isDryRun,
		Logger:        logger,
		Metrics:       collector,
	})

	report, runErr := svc.Run(ctx)
	if runErr != nil {
		logger.Error("Миграция завершилась с ошибкой",
			"code", apperrors.CodeOf(runErr),
			"error", runErr.Error(),
		)
		return h.writeError(out, format, traceID, start,
			apperrors.CodeOf(runErr), runErr.Error(), report)
	}

	logger.Info("Миграция завершена",
		"migrated", report.Migrated,
		"skipped", report.Skipped,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if format != output.FormatJSON {
		return writeText(out, report)
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActMigrate,
		Data:    report,
		DryRun:  isDryRun,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: constants.APIVersion,
		},
		Summary: buildSummary(report, time.Since(start)),
	}

	return output.NewWriter(format).Write(out, result)
}

// writeError выводит структурированную ошибку и возвращает error.
// Частичный отчёт (если есть) попадает в Data, чтобы вызывающая сторона
// видела, какие задачи успели перенестись.
func (h *MigrateHandler) writeError(w io.Writer, format, traceID string, start time.Time, code, message string, report *migration.Report) error {
	if format != output.FormatJSON {
		if report != nil {
			_ = writeText(w, report)
		}
		return shared.HandleError(message, code)
	}

	result := &output.Result{
		Status:  output.StatusError,
		Command: constants.ActMigrate,
		Error: &output.ErrorInfo{
			Code:    code,
			Message: message,
		},
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: constants.APIVersion,
		},
	}
	if report != nil {
		result.Data = report
		result.DryRun = report.DryRun
	}

	if writeErr := output.NewWriter(format).Write(w, result); writeErr != nil {
		return fmt.Errorf("%s: %s (вывод результата: %v)", code, message, writeErr)
	}
	return fmt.Errorf("%s: %s", code, message)
}

// buildSummary собирает summary-блок для JSON вывода.
func buildSummary(report *migration.Report, duration time.Duration) *output.SummaryInfo {
	summary := output.NewSummaryInfo()
	summary.AddMetric("issues_migrated", strconv.Itoa(report.Migrated), "")
	summary.AddMetric("issues_skipped", strconv.Itoa(report.Skipped), "")
	summary.AddMetric("issues_failed", strconv.Itoa(report.Failed), "")
	summary.AddMetric("comments_migrated", strconv.Itoa(report.Comments), "")
	summary.AddMetric("attachments_migrated", strconv.Itoa(report.Attachments), "")
	summary.AddMetric("duration", strconv.FormatInt(duration.Milliseconds(), 10), "ms")
	for _, issueID := range sortedIssueIDs(report.Errors) {
		summary.AddWarning(fmt.Sprintf("задача #%d: %s", issueID, report.Errors[issueID]))
	}
	return summary
}

// sortedIssueIDs возвращает ID задач из карты ошибок по возрастанию.
func sortedIssueIDs(errs map[int64]string) []int64 {
	ids := make([]int64, 0, len(errs))
	for id := range errs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// handlerLogger возвращает логгер из конфигурации или NopLogger.
func handlerLogger(cfg *config.Config) logging.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return logging.NewNopLogger()
}
