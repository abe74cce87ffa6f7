package gitea

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Kargones/redmine2gitea/internal/constants"
)

// UploadAttachment загружает вложение к задаче.
// Содержимое передаётся байт-в-байт как multipart поле "attachment".
// Параметры:
//   - issueNumber: номер задачи в Gitea
//   - filename: имя файла вложения
//   - data: содержимое файла
//
// Возвращает:
//   - *Attachment: созданное вложение
//   - error: TargetError с кодом TARGET.* или nil при успехе
func (g *API) UploadAttachment(ctx context.Context, issueNumber int64, filename string, data []byte) (*Attachment, error) {
	urlString := fmt.Sprintf("%s/api/%s/repos/%s/%s/issues/%d/assets",
		g.giteaURL, constants.APIVersion, g.owner, g.repo, issueNumber)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("attachment", filename)
	if err != nil {
		return nil, NewTargetError(ErrTargetAPIFailed,
			fmt.Sprintf("не удалось сформировать multipart для %q", filename), err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, NewTargetError(ErrTargetAPIFailed,
			fmt.Sprintf("не удалось записать содержимое %q", filename), err)
	}
	if err := mw.Close(); err != nil {
		return nil, NewTargetError(ErrTargetAPIFailed,
			"не удалось завершить multipart", err)
	}

	statusCode, body, err := g.sendMultipart(ctx, urlString, mw.FormDataContentType(), &buf)
	if err != nil {
		return nil, NewTargetError(ErrTargetUnavailable,
			fmt.Sprintf("не удалось загрузить вложение %q", filename), err)
	}
	if statusCode != http.StatusCreated {
		return nil, statusError(fmt.Sprintf("загрузка вложения %q", filename), statusCode)
	}

	var att Attachment
	if err := json.Unmarshal(body, &att); err != nil {
		return nil, NewTargetError(ErrTargetAPIFailed,
			"не удалось декодировать созданное вложение", err)
	}

	return &att, nil
}
