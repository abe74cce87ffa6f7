package migration

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Kargones/redmine2gitea/internal/entity/gitea"
	"github.com/Kargones/redmine2gitea/internal/entity/redmine"
	"github.com/Kargones/redmine2gitea/internal/mapper"
	"github.com/Kargones/redmine2gitea/internal/pkg/apperrors"
	"github.com/Kargones/redmine2gitea/internal/pkg/logging"
	"github.com/Kargones/redmine2gitea/internal/pkg/metrics"
)

// defaultLabelColor — цвет создаваемых меток, серый Gitea по умолчанию.
const defaultLabelColor = "#cccccc"

// skipReasonPrivate — причина пропуска приватных задач в метриках и отчёте.
const skipReasonPrivate = "private"

// Config содержит зависимости и параметры оркестратора миграции.
type Config struct {
	// Source — клиент исходного трекера
	Source SourceReader
	// Target — клиент целевого трекера
	Target TargetWriter
	// Mapping — таблицы соответствий Redmine → Gitea
	Mapping *mapper.Mapping
	// SourceBaseURL — базовый URL Redmine для обратных ссылок в теле задачи
	SourceBaseURL string
	// RetryMax — максимум повторов при RATE_LIMITED
	RetryMax int
	// DryRun — прогон без записи в целевой трекер
	DryRun bool
	// Logger — логгер (fallback: NopLogger)
	Logger logging.Logger
	// Metrics — коллектор метрик (fallback: NopCollector)
	Metrics metrics.Collector
}

// Service переносит задачи одного проекта Redmine в репозиторий Gitea.
type Service struct {
	source        SourceReader
	target        TargetWriter
	mapping       *mapper.Mapping
	sourceBaseURL string
	retryMax      int
	retryInitial  time.Duration
	dryRun        bool
	logger        logging.Logger
	metrics       metrics.Collector
}

// NewService создаёт оркестратор миграции.
func NewService(config Config) *Service {
	logger := config.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	collector := config.Metrics
	if collector == nil {
		collector = metrics.NewNopCollector()
	}
	return &Service{
		source:        config.Source,
		target:        config.Target,
		mapping:       config.Mapping,
		sourceBaseURL: config.SourceBaseURL,
		retryMax:      config.RetryMax,
		retryInitial:  retryInitialInterval,
		dryRun:        config.DryRun,
		logger:        logger,
		metrics:       collector,
	}
}

// errAbort прерывает обход задач: продолжать прогон бессмысленно
// (например, токен целевого API отвергнут).
type errAbort struct {
	cause error
}

func (e *errAbort) Error() string {
	return e.cause.Error()
}

func (e *errAbort) Unwrap() error {
	return e.cause
}

// Run выполняет миграцию всех задач проекта.
//
// Ошибки источника и целевого API до первой задачи — фатальные.
// Ошибка отдельной задачи фиксируется в отчёте, прогон продолжается;
// исключение — TARGET.AUTH_FAILED, после которого прогон прерывается
// с MIGRATE.ABORTED. Частично перенесённые задачи не откатываются:
// отчёт перечисляет их коды ошибок по ID исходной задачи.
func (s *Service) Run(ctx context.Context) (*Report, error) {
	project, err := s.source.GetProject(ctx)
	if err != nil {
		s.logger.Error("Исходный проект недоступен", "error", err.Error())
		return nil, err
	}
	s.logger.Info("Проект найден",
		"project", project.Identifier,
		"project_name", project.Name,
	)

	labelIDs, err := s.target.GetLabels(ctx)
	if err != nil {
		s.logger.Error("Не удалось получить метки целевого репозитория", "error", err.Error())
		return nil, err
	}
	s.logger.Debug("Метки репозитория загружены", "count", len(labelIDs))

	report := newReport(project.Identifier, s.dryRun)

	err = s.source.ForEachIssue(ctx, func(summary redmine.Issue) error {
		return s.migrateIssue(ctx, report, labelIDs, summary)
	})
	if err != nil {
		var abort *errAbort
		if errors.As(err, &abort) {
			s.logger.Error("Миграция прервана", "error", abort.cause.Error())
			return report, apperrors.NewAppError(apperrors.ErrMigrateAborted,
				"миграция прервана: целевой API отверг учётные данные", abort.cause)
		}
		return report, err
	}

	if report.Failed > 0 {
		return report, apperrors.NewAppError(apperrors.ErrMigratePartial,
			fmt.Sprintf("перенесено %d из %d задач, ошибок: %d",
				report.Migrated, report.Total, report.Failed), nil)
	}

	return report, nil
}

// migrateIssue переносит одну задачу. Возвращает ошибку только когда
// прогон нужно прервать; per-issue ошибки уходят в отчёт.
func (s *Service) migrateIssue(ctx context.Context, report *Report, labelIDs map[string]int64, summary redmine.Issue) error {
	start := time.Now()
	logger := s.logger.With("issue_id", summary.ID)

	if summary.IsPrivate {
		logger.Info("Приватная задача пропущена")
		report.recordSkipped()
		s.metrics.RecordIssueSkipped(report.Project, skipReasonPrivate)
		return nil
	}

	issue, err := s.source.GetIssue(ctx, summary.ID)
	if err != nil {
		return s.failIssue(report, logger, summary.ID, err)
	}
	// пагинация отдаёт только флаг уровня списка, полная задача надёжнее
	if issue.IsPrivate {
		logger.Info("Приватная задача пропущена")
		report.recordSkipped()
		s.metrics.RecordIssueSkipped(report.Project, skipReasonPrivate)
		return nil
	}

	draft, err := s.mapping.MapIssue(issue, s.sourceBaseURL)
	if err != nil {
		return s.failIssue(report, logger, summary.ID, err)
	}

	if s.dryRun {
		logger.Info("Задача прошла маппинг, запись пропущена (dry-run)",
			"title", draft.Title,
			"labels", draft.Labels,
			"comments", len(draft.Comments),
			"attachments", len(issue.Attachments),
		)
		report.recordMigrated()
		s.metrics.RecordIssueMigrated(report.Project, len(draft.Comments), len(issue.Attachments), time.Since(start))
		return nil
	}

	ids, err := s.resolveLabels(ctx, labelIDs, draft.Labels)
	if err != nil {
		return s.failIssue(report, logger, summary.ID, err)
	}

	var created *gitea.Issue
	err = s.withRetry(ctx, "create_issue", func() error {
		var createErr error
		created, createErr = s.target.CreateIssue(ctx, gitea.CreateIssueOptions{
			Title:    draft.Title,
			Body:     draft.Body,
			Closed:   draft.Closed,
			Labels:   ids,
			Assignee: draft.Assignee,
			Sudo:     draft.Author,
		})
		return createErr
	})
	if err != nil {
		return s.failIssue(report, logger, summary.ID, err)
	}

	for _, comment := range draft.Comments {
		commentBody := comment
		err = s.withRetry(ctx, "add_comment", func() error {
			return s.target.AddIssueComment(ctx, created.Number, commentBody)
		})
		if err != nil {
			return s.failIssue(report, logger, summary.ID, err)
		}
		report.Comments++
	}

	for _, att := range issue.Attachments {
		data, err := s.source.DownloadAttachment(ctx, att)
		if err != nil {
			return s.failIssue(report, logger, summary.ID, err)
		}
		attachment := att
		err = s.withRetry(ctx, "upload_attachment", func() error {
			_, uploadErr := s.target.UploadAttachment(ctx, created.Number, attachment.Filename, data)
			return uploadErr
		})
		if err != nil {
			return s.failIssue(report, logger, summary.ID, err)
		}
		report.Attachments++
	}

	logger.Info("Задача перенесена",
		"target_number", created.Number,
		"comments", len(draft.Comments),
		"attachments", len(issue.Attachments),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	report.recordMigrated()
	s.metrics.RecordIssueMigrated(report.Project, len(draft.Comments), len(issue.Attachments), time.Since(start))
	return nil
}

// failIssue фиксирует ошибку задачи в отчёте. TARGET.AUTH_FAILED
// прерывает прогон: остальные записи обречены на ту же ошибку.
func (s *Service) failIssue(report *Report, logger logging.Logger, issueID int64, err error) error {
	code := apperrors.CodeOf(err)
	logger.Error("Задача не перенесена", "code", code, "error", err.Error())
	report.recordFailed(issueID, code)
	s.metrics.RecordIssueFailed(report.Project, code)

	if gitea.IsAuthError(err) {
		return &errAbort{cause: err}
	}
	return nil
}

// resolveLabels переводит имена меток в их ID, создавая отсутствующие
// в репозитории метки. Созданные метки добавляются в labelIDs, чтобы
// следующие задачи их переиспользовали.
func (s *Service) resolveLabels(ctx context.Context, labelIDs map[string]int64, names []string) ([]int64, error) {
	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := labelIDs[name]
		if !ok {
			var err error
			labelName := name
			err = s.withRetry(ctx, "create_label", func() error {
				var createErr error
				id, createErr = s.target.CreateLabel(ctx, labelName, defaultLabelColor)
				return createErr
			})
			if err != nil {
				return nil, err
			}
			labelIDs[name] = id
			s.logger.Info("Создана метка репозитория", "label", name, "label_id", id)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
