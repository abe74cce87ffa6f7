package gitea

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Kargones/redmine2gitea/internal/constants"
)

// CreateIssue создаёт задачу в репозитории Gitea.
// При непустом opts.Sudo запрос выполняется от имени указанного пользователя
// через query-параметр ?sudo= — так сохраняется авторство оригинальной задачи
// (токен должен принадлежать администратору).
// Параметры:
//   - opts: заголовок, тело, метки, состояние и назначенный пользователь
//
// Возвращает:
//   - *Issue: созданная задача с присвоенным номером
//   - error: TargetError с кодом TARGET.* или nil при успехе
func (g *API) CreateIssue(ctx context.Context, opts CreateIssueOptions) (*Issue, error) {
	urlString := fmt.Sprintf("%s/api/%s/repos/%s/%s/issues",
		g.giteaURL, constants.APIVersion, g.owner, g.repo)
	if opts.Sudo != "" {
		urlString += "?sudo=" + url.QueryEscape(opts.Sudo)
	}

	reqBody, err := json.Marshal(opts)
	if err != nil {
		return nil, NewTargetError(ErrTargetAPIFailed,
			"не удалось сериализовать параметры задачи", err)
	}

	statusCode, body, err := g.sendReq(ctx, urlString, string(reqBody), http.MethodPost)
	if err != nil {
		return nil, NewTargetError(ErrTargetUnavailable,
			fmt.Sprintf("не удалось создать задачу %q", opts.Title), err)
	}
	if statusCode != http.StatusCreated {
		return nil, statusError(fmt.Sprintf("создание задачи %q", opts.Title), statusCode)
	}

	var issue Issue
	if err := json.Unmarshal(body, &issue); err != nil {
		return nil, NewTargetError(ErrTargetAPIFailed,
			"не удалось декодировать созданную задачу", err)
	}

	return &issue, nil
}

// AddIssueComment добавляет комментарий к задаче.
// Хронологический порядок комментариев обеспечивает вызывающая сторона,
// выполняя вызовы последовательно.
// Параметры:
//   - issueNumber: номер задачи в Gitea
//   - commentBody: текст комментария (markdown)
//
// Возвращает:
//   - error: TargetError с кодом TARGET.* или nil при успехе
func (g *API) AddIssueComment(ctx context.Context, issueNumber int64, commentBody string) error {
	urlString := fmt.Sprintf("%s/api/%s/repos/%s/%s/issues/%d/comments",
		g.giteaURL, constants.APIVersion, g.owner, g.repo, issueNumber)

	payload, err := json.Marshal(map[string]string{"body": commentBody})
	if err != nil {
		return NewTargetError(ErrTargetAPIFailed,
			"не удалось сериализовать комментарий", err)
	}

	statusCode, _, err := g.sendReq(ctx, urlString, string(payload), http.MethodPost)
	if err != nil {
		return NewTargetError(ErrTargetUnavailable,
			fmt.Sprintf("не удалось добавить комментарий к задаче %d", issueNumber), err)
	}
	if statusCode != http.StatusCreated {
		return statusError(fmt.Sprintf("добавление комментария к задаче %d", issueNumber), statusCode)
	}

	return nil
}
