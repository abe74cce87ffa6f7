package redmine

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/constants"
)

// GetProject получает проект по идентификатору, настроенному в клиенте.
// Используется как preflight перед миграцией: проверяет существование проекта
// и достаточность прав ключа API.
// Возвращает:
//   - *Project: указатель на структуру с информацией о проекте
//   - error: SourceError с кодом SOURCE.* или nil при успехе
func (a *API) GetProject(ctx context.Context) (*Project, error) {
	urlString := fmt.Sprintf("%s/projects/%s.json", a.baseURL, a.project)

	statusCode, body, err := a.sendReq(ctx, urlString)
	if err != nil {
		return nil, NewSourceError(ErrSourceUnavailable,
			fmt.Sprintf("не удалось получить проект %s", a.project), err)
	}
	if statusCode != http.StatusOK {
		return nil, statusError(fmt.Sprintf("получение проекта %s", a.project), statusCode)
	}

	var resp projectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewSourceError(ErrSourceDecodeFailed,
			"не удалось декодировать ответ проекта", err)
	}

	return &resp.Project, nil
}

// ForEachIssue перебирает все задачи проекта в порядке возрастания id,
// включая закрытые (status_id=*), постранично (limit/offset).
// Для каждой задачи вызывается fn; ошибка fn прерывает перебор и возвращается
// как есть. Задачи из списка содержат только базовые поля — журналы и вложения
// догружаются через GetIssue.
func (a *API) ForEachIssue(ctx context.Context, fn func(Issue) error) error {
	offset := int64(0)

	for page := 0; page < constants.IssuesMaxPages; page++ {
		urlString := fmt.Sprintf(
			"%s/projects/%s/issues.json?status_id=*&sort=id:asc&limit=%d&offset=%d",
			a.baseURL, a.project, constants.IssuesPageLimit, offset)

		statusCode, body, err := a.sendReq(ctx, urlString)
		if err != nil {
			return NewSourceError(ErrSourceUnavailable, "не удалось получить список задач", err)
		}
		if statusCode != http.StatusOK {
			return statusError("получение списка задач", statusCode)
		}

		var resp issuesResponse
		if err := json.Unmarshal(body, &resp); err != nil {
			return NewSourceError(ErrSourceDecodeFailed,
				"не удалось декодировать список задач", err)
		}

		for _, issue := range resp.Issues {
			if err := fn(issue); err != nil {
				return err
			}
		}

		offset += int64(len(resp.Issues))
		if offset >= resp.TotalCount || len(resp.Issues) == 0 {
			return nil
		}
	}

	a.logger.Warn("достигнут предел страниц при переборе задач",
		"max_pages", constants.IssuesMaxPages)
	return nil
}

// GetIssue получает задачу целиком: с журналами (комментариями) и вложениями.
// Параметры:
//   - issueID: идентификатор задачи Redmine
//
// Возвращает:
//   - *Issue: указатель на структуру задачи с journals и attachments
//   - error: SourceError с кодом SOURCE.* или nil при успехе
func (a *API) GetIssue(ctx context.Context, issueID int64) (*Issue, error) {
	urlString := fmt.Sprintf("%s/issues/%d.json?include=journals,attachments", a.baseURL, issueID)

	statusCode, body, err := a.sendReq(ctx, urlString)
	if err != nil {
		return nil, NewSourceError(ErrSourceUnavailable,
			fmt.Sprintf("не удалось получить задачу %d", issueID), err)
	}
	if statusCode != http.StatusOK {
		return nil, statusError(fmt.Sprintf("получение задачи %d", issueID), statusCode)
	}

	var resp issueResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, NewSourceError(ErrSourceDecodeFailed,
			fmt.Sprintf("не удалось декодировать задачу %d", issueID), err)
	}

	return &resp.Issue, nil
}
