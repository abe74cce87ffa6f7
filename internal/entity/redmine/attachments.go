package redmine

import (
	"context"
	"fmt"
	"net/http"
)

// DownloadAttachment скачивает вложение по его content_url.
// Содержимое возвращается байт-в-байт, без какой-либо обработки.
// Параметры:
//   - att: метаданные вложения из GetIssue
//
// Возвращает:
//   - []byte: содержимое файла
//   - error: SourceError с кодом SOURCE.* или nil при успехе
func (a *API) DownloadAttachment(ctx context.Context, att Attachment) ([]byte, error) {
	statusCode, body, err := a.sendReq(ctx, att.ContentURL)
	if err != nil {
		return nil, NewSourceError(ErrSourceUnavailable,
			fmt.Sprintf("не удалось скачать вложение %s", att.Filename), err)
	}
	if statusCode != http.StatusOK {
		return nil, statusError(fmt.Sprintf("скачивание вложения %s", att.Filename), statusCode)
	}

	return body, nil
}
