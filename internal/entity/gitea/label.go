package gitea

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/constants"
)

// GetLabels возвращает все метки репозитория как map имя → id.
// Метки читаются постранично; имена в Gitea уникальны в пределах репозитория.
// Возвращает:
//   - map[string]int64: имя метки → её id
//   - error: TargetError с кодом TARGET.* или nil при успехе
func (g *API) GetLabels(ctx context.Context) (map[string]int64, error) {
	labels := make(map[string]int64)

	for page := 1; page <= labelsMaxPages; page++ {
		urlString := fmt.Sprintf("%s/api/%s/repos/%s/%s/labels?page=%d&limit=%d",
			g.giteaURL, constants.APIVersion, g.owner, g.repo, page, labelsPageLimit)

		statusCode, body, err := g.sendReq(ctx, urlString, "", http.MethodGet)
		if err != nil {
			return nil, NewTargetError(ErrTargetUnavailable,
				"не удалось получить метки репозитория", err)
		}
		if statusCode != http.StatusOK {
			return nil, statusError("получение меток репозитория", statusCode)
		}

		var pageLabels []Label
		if err := json.Unmarshal(body, &pageLabels); err != nil {
			return nil, NewTargetError(ErrTargetAPIFailed,
				"не удалось декодировать метки репозитория", err)
		}

		for _, l := range pageLabels {
			labels[l.Name] = l.ID
		}

		if len(pageLabels) < labelsPageLimit {
			return labels, nil
		}
	}

	g.logger.Warn("достигнут предел страниц при получении меток",
		"max_pages", labelsMaxPages)
	return labels, nil
}

// CreateLabel создаёт метку в репозитории и возвращает её id.
// Используется когда маппинг ссылается на метку, которой ещё нет в репозитории.
// Параметры:
//   - name: имя метки
//   - color: цвет в формате "#rrggbb"
//
// Возвращает:
//   - int64: id созданной метки
//   - error: TargetError с кодом TARGET.* или nil при успехе
func (g *API) CreateLabel(ctx context.Context, name, color string) (int64, error) {
	urlString := fmt.Sprintf("%s/api/%s/repos/%s/%s/labels",
		g.giteaURL, constants.APIVersion, g.owner, g.repo)

	payload, err := json.Marshal(map[string]string{"name": name, "color": color})
	if err != nil {
		return 0, NewTargetError(ErrTargetAPIFailed,
			"не удалось сериализовать метку", err)
	}

	statusCode, body, err := g.sendReq(ctx, urlString, string(payload), http.MethodPost)
	if err != nil {
		return 0, NewTargetError(ErrTargetUnavailable,
			fmt.Sprintf("не удалось создать метку %q", name), err)
	}
	if statusCode != http.StatusCreated {
		return 0, statusError(fmt.Sprintf("создание метки %q", name), statusCode)
	}

	var label Label
	if err := json.Unmarshal(body, &label); err != nil {
		return 0, NewTargetError(ErrTargetAPIFailed,
			"не удалось декодировать созданную метку", err)
	}

	return label.ID, nil
}
