// Package checkhandler реализует команду check: preflight-проверку
// доступности и учётных данных обоих трекеров без записи.
package checkhandler

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Kargones/redmine2gitea/internal/command"
	"github.com/Kargones/redmine2gitea/internal/command/handlers/shared"
	"github.com/Kargones/redmine2gitea/internal/config"
	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/entity/gitea"
	"github.com/Kargones/redmine2gitea/internal/entity/redmine"
	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
	"github.com/Kargones/redmine2gitea/internal/pkg/output"
	"github.com/Kargones/redmine2gitea/internal/pkg/tracing"
)

func RegisterCmd() error {
	return command.Register(&CheckHandler{})
}

// sourceChecker — подмножество Redmine API, нужное для проверки.
type sourceChecker interface {
	GetProject(ctx context.Context) (*redmine.Project, error)
}

// targetChecker — подмножество Gitea API, нужное для проверки.
type targetChecker interface {
	GetRepo(ctx context.Context) (*gitea.Repo, error)
}

// CheckData содержит результат проверки обоих трекеров.
type CheckData struct {
	// SourceOK — исходный трекер доступен и принял учётные данные
	SourceOK bool `json:"source_ok"`
	// SourceProject — имя найденного проекта Redmine
	SourceProject string `json:"source_project,omitempty"`
	// SourceError — код ошибки источника, если проверка не прошла
	SourceError string `json:"source_error,omitempty"`
	// TargetOK — целевой трекер доступен и принял учётные данные
	TargetOK bool `json:"target_ok"`
	// TargetRepo — полное имя найденного репозитория Gitea
	TargetRepo string `json:"target_repo,omitempty"`
	// TargetError — код ошибки целевого трекера, если проверка не прошла
	TargetError string `json:"target_error,omitempty"`
}

// writeText выводит результат проверки в человекочитаемом формате.
func (d *CheckData) writeText(w io.Writer) error {
	sourceLine := fmt.Sprintf("[OK] Redmine: проект %q доступен", d.SourceProject)
	if !d.SourceOK {
		sourceLine = fmt.Sprintf("[FAIL] Redmine: %s", d.SourceError)
	}
	targetLine := fmt.Sprintf("[OK] Gitea: репозиторий %q доступен", d.TargetRepo)
	if !d.TargetOK {
		targetLine = fmt.Sprintf("[FAIL] Gitea: %s", d.TargetError)
	}
	_, err := fmt.Fprintf(w, "%s\n%s\n", sourceLine, targetLine)
	return err
}

// CheckHandler обрабатывает команду check.
type CheckHandler struct {
	// source — опциональный клиент источника (nil в production, fake в тестах)
	source sourceChecker
	// target — опциональный клиент целевого трекера (nil в production, fake в тестах)
	target targetChecker
	// out — приёмник вывода (nil в production → os.Stdout)
	out io.Writer
}

// Name возвращает имя команды.
func (h *CheckHandler) Name() string {
	return constants.ActCheck
}

// Description возвращает описание команды для вывода в help.
func (h *CheckHandler) Description() string {
	return "Проверка доступности и учётных данных Redmine и Gitea"
}

// Execute выполняет команду check. Обе проверки выполняются всегда:
// ошибка источника не скрывает состояние целевого трекера.
func (h *CheckHandler) Execute(ctx context.Context, cfg *config.Config) error {
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
		return shared.HandleError("конфигурация не загружена", apperrors.ErrConfigValidate)
	}

	logger := handlerLogger(cfg).With("trace_id", traceID, "command", constants.ActCheck)

	source := h.source
	if source == nil {
		client, err := shared.CreateSourceClient(cfg)
		if err != nil {
			return shared.HandleError(err.Error(), apperrors.ErrConfigValidate)
		}
		source = client
	}
	target := h.target
	if target == nil {
		client, err := shared.CreateTargetClient(cfg)
		if err != nil {
			return shared.HandleError(err.Error(), apperrors.ErrConfigValidate)
		}
		target = client
	}

	data := &CheckData{}

	project, err := source.GetProject(ctx)
	if err != nil {
		logger.Error("Проверка источника не прошла", "error", err.Error())
		data.SourceError = apperrors.CodeOf(err)
	} else {
		data.SourceOK = true
		data.SourceProject = project.Name
	}

	repo, err := target.GetRepo(ctx)
	if err != nil {
		logger.Error("Проверка целевого трекера не прошла", "error", err.Error())
		data.TargetError = apperrors.CodeOf(err)
	} else {
		data.TargetOK = true
		data.TargetRepo = repo.FullName
	}

	ok := data.SourceOK && data.TargetOK
	logger.Info("Проверка завершена",
		"source_ok", data.SourceOK,
		"target_ok", data.TargetOK,
	)

	if format != output.FormatJSON {
		if writeErr := data.writeText(out); writeErr != nil {
			return writeErr
		}
		return checkError(ok)
	}

	status := output.StatusSuccess
	if !ok {
		status = output.StatusError
	}
	result := &output.Result{
		Status:  status,
		Command: constants.ActCheck,
		Data:    data,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: constants.APIVersion,
		},
	}
	if !ok {
		result.Error = &output.ErrorInfo{
			Code:    apperrors.ErrCommandExec,
			Message: "проверка подключения не прошла",
		}
	}

	if writeErr := output.NewWriter(format).Write(out, result); writeErr != nil {
		return writeErr
	}
	return checkError(ok)
}

// checkError возвращает ошибку команды, если хотя бы одна проверка не прошла.
func checkError(ok bool) error {
	if ok {
		return nil
	}
	return apperrors.NewAppError(apperrors.ErrCommandExec,
		"проверка подключения не прошла", nil)
}

// handlerLogger возвращает логгер из конфигурации или NopLogger.
func handlerLogger(cfg *config.Config) logging.Logger {
	if cfg.Logger != nil {
		return cfg.Logger
	}
	return logging.NewNopLogger()
}
