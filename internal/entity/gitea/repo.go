package gitea

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/constants"
)

// GetRepo получает целевой репозиторий.
// Используется как preflight: проверяет существование репозитория
// и достаточность прав токена.
// Возвращает:
//   - *Repo: информация о репозитории
//   - error: TargetError с кодом TARGET.* или nil при успехе
func (g *API) GetRepo(ctx context.Context) (*Repo, error) {
	urlString := fmt.Sprintf("%s/api/%s/repos/%s/%s",
		g.giteaURL, constants.APIVersion, g.owner, g.repo)

	statusCode, body, err := g.sendReq(ctx, urlString, "", http.MethodGet)
	if err != nil {
		return nil, NewTargetError(ErrTargetUnavailable,
			fmt.Sprintf("не удалось получить репозиторий %s/%s", g.owner, g.repo), err)
	}
	if statusCode != http.StatusOK {
		return nil, statusError(fmt.Sprintf("получение репозитория %s/%s", g.owner, g.repo), statusCode)
	}

	var repo Repo
	if err := json.Unmarshal(body, &repo); err != nil {
		return nil, NewTargetError(ErrTargetAPIFailed,
			"не удалось декодировать репозиторий", err)
	}

	return &repo, nil
}
