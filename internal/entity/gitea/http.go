package gitea

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/pkg/urlutil"
)

// sendReq выполняет запрос к Gitea API с токеном в заголовке Authorization.
// Возвращает статус, тело ответа и транспортную ошибку.
// Классификация неуспешных статусов — на стороне вызывающего (statusError).
func (g *API) sendReq(ctx context.Context, urlString, reqBody, method string) (int, []byte, error) {
	var req *http.Request
	var err error
	if reqBody == "" {
		req, err = http.NewRequestWithContext(ctx, method, urlString, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, urlString, bytes.NewBufferString(reqBody))
	}
	if err != nil {
		return -1, nil, fmt.Errorf("ошибка при создании запроса: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("token %s", g.accessToken))
	req.Header.Set("Content-Type", "application/json")

	return g.do(req)
}

// sendMultipart выполняет multipart POST запрос (загрузка вложений).
// contentType — заголовок Content-Type с boundary от multipart.Writer.
func (g *API) sendMultipart(ctx context.Context, urlString, contentType string, body io.Reader) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, urlString, body)
	if err != nil {
		return -1, nil, fmt.Errorf("ошибка при создании запроса: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("token %s", g.accessToken))
	req.Header.Set("Content-Type", contentType)

	return g.do(req)
}

func (g *API) do(req *http.Request) (int, []byte, error) {
	resp, err := g.client.Do(req)
	if err != nil {
		return -1, nil, err
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			g.logger.Warn("не удалось закрыть тело ответа", "error", closeErr.Error())
		}
	}()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return -1, nil, fmt.Errorf("ошибка при чтении тела ответа: %w", err)
	}

	g.logger.Debug("gitea: запрос выполнен",
		"method", req.Method,
		"url", urlutil.MaskURL(req.URL.String()),
		"status", resp.StatusCode,
	)

	return resp.StatusCode, bodyBytes, nil
}
