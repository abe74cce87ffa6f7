// Package migration оркестрирует перенос задач Redmine в Gitea:
// чтение, маппинг, запись, повторы и итоговый отчёт.
package migration

import (
	"context"

	"github.com/Kargones/redmine2gitea/internal/entity/gitea"
	"github.com/Kargones/redmine2gitea/internal/entity/redmine"
)

// SourceReader — операции чтения исходного трекера.
// Реализуется redmine.API; в тестах подменяется фейком.
type SourceReader interface {
	// GetProject возвращает проект и служит preflight-проверкой доступа
	GetProject(ctx context.Context) (*redmine.Project, error)
	// ForEachIssue вызывает fn для каждой задачи проекта в порядке
	// возрастания ID; ошибка fn прерывает обход
	ForEachIssue(ctx context.Context, fn func(redmine.Issue) error) error
	// GetIssue возвращает задачу с журналами и вложениями
	GetIssue(ctx context.Context, issueID int64) (*redmine.Issue, error)
	// DownloadAttachment скачивает содержимое вложения
	DownloadAttachment(ctx context.Context, att redmine.Attachment) ([]byte, error)
}

// TargetWriter — операции записи в целевой трекер.
// Реализуется gitea.API; в тестах подменяется фейком.
type TargetWriter interface {
	// GetLabels возвращает метки репозитория: имя → ID
	GetLabels(ctx context.Context) (map[string]int64, error)
	// CreateLabel создаёт метку и возвращает её ID
	CreateLabel(ctx context.Context, name, color string) (int64, error)
	// CreateIssue создаёт задачу и возвращает её с номером
	CreateIssue(ctx context.Context, opts gitea.CreateIssueOptions) (*gitea.Issue, error)
	// AddIssueComment добавляет комментарий к задаче
	AddIssueComment(ctx context.Context, issueNumber int64, commentBody string) error
	// UploadAttachment загружает вложение к задаче
	UploadAttachment(ctx context.Context, issueNumber int64, filename string, data []byte) (*gitea.Attachment, error)
}
