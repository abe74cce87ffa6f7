package redmine

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/pkg/urlutil"
)

// sendReq выполняет GET запрос к Redmine API с ключом в заголовке.
// Возвращает статус, тело ответа и транспортную ошибку.
// Классификация неуспешных статусов — на стороне вызывающего (statusError).
func (a *API) sendReq(ctx context.Context, urlString string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlString, nil)
	if err != nil {
		return -1, nil, fmt.Errorf("ошибка при создании запроса: %w", err)
	}
	req.Header.Set("X-Redmine-API-Key", a.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return -1, nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			a.logger.Warn("не удалось закрыть тело ответа", "error", closeErr.Error())
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return -1, nil, fmt.Errorf("ошибка при чтении тела ответа: %w", err)
	}

	a.logger.Debug("redmine: запрос выполнен",
		"url", urlutil.MaskURL(urlString),
		"status", resp.StatusCode,
	)

	return resp.StatusCode, bodyBytes, nil
}
