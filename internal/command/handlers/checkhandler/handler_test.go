package checkhandler

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/Kargones/redmine2gitea/internal/config"
	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/entity/gitea"
	"github.com/Kargones/redmine2gitea/internal/entity/redmine"
)

type fakeSource struct {
	project *redmine.Project
	err     error
}

func (f *fakeSource) GetProject(_ context.Context) (*redmine.Project, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.project, nil
}

type fakeTarget struct {
	repo *gitea.Repo
	err  error
}

func (f *fakeTarget) GetRepo(_ context.Context) (*gitea.Repo, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.repo, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Redmine: config.RedmineConfig{URL: "https://redmine.example.com", APIKey: "key", Project: "demo"},
		Gitea:   config.GiteaConfig{URL: "https://gitea.example.com", Token: "token", Owner: "org", Repo: "repo"},
	}
}

func TestExecute_BothOK(t *testing.T) {
	t.Setenv(constants.EnvOutputFormat, "text")

	var buf bytes.Buffer
	h := &CheckHandler{
		source: &fakeSource{project: &redmine.Project{Identifier: "demo", Name: "Demo Project"}},
		target: &fakeTarget{repo: &gitea.Repo{FullName: "org/repo"}},
		out:    &buf,
	}

	if err := h.Execute(context.Background(), testConfig()); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	text := buf.String()
	if !strings.Contains(text, `[OK] Redmine: проект "Demo Project" доступен`) {
		t.Errorf("вывод: %s", text)
	}
	if !strings.Contains(text, `[OK] Gitea: репозиторий "org/repo" доступен`) {
		t.Errorf("вывод: %s", text)
	}
}

func TestExecute_TargetAuthFailed(t *testing.T) {
	t.Setenv(constants.EnvOutputFormat, "json")

	var buf bytes.Buffer
	h := &CheckHandler{
		source: &fakeSource{project: &redmine.Project{Name: "Demo"}},
		target: &fakeTarget{err: gitea.NewTargetError(gitea.ErrTargetAuthFailed, "токен отвергнут", nil)},
		out:    &buf,
	}

	err := h.Execute(context.Background(), testConfig())
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}

	var result map[string]any
	if jsonErr := json.Unmarshal(buf.Bytes(), &result); jsonErr != nil {
		t.Fatalf("невалидный JSON: %v", jsonErr)
	}
	if result["status"] != "error" {
		t.Errorf("status = %v", result["status"])
	}
	data, ok := result["data"].(map[string]any)
	if !ok {
		t.Fatalf("отсутствует data: %s", buf.String())
	}
	if data["source_ok"] != true {
		t.Errorf("source_ok = %v", data["source_ok"])
	}
	if data["target_ok"] != false || data["target_error"] != "TARGET.AUTH_FAILED" {
		t.Errorf("target: %v", data)
	}
}

func TestExecute_BothFail(t *testing.T) {
	t.Setenv(constants.EnvOutputFormat, "text")

	var buf bytes.Buffer
	h := &CheckHandler{
		source: &fakeSource{err: redmine.NewSourceError(redmine.ErrSourceUnavailable, "сервер недоступен", nil)},
		target: &fakeTarget{err: gitea.NewTargetError(gitea.ErrTargetNotFound, "репозиторий не найден", nil)},
		out:    &buf,
	}

	err := h.Execute(context.Background(), testConfig())
	if err == nil {
		t.Fatal("ожидалась ошибка")
	}

	// обе проверки выполнены, несмотря на ошибку первой
	text := buf.String()
	if !strings.Contains(text, "[FAIL] Redmine: SOURCE.UNAVAILABLE") {
		t.Errorf("вывод: %s", text)
	}
	if !strings.Contains(text, "[FAIL] Gitea: TARGET.NOT_FOUND") {
		t.Errorf("вывод: %s", text)
	}
}

func TestHandlerMetadata(t *testing.T) {
	h := &CheckHandler{}
	if h.Name() != "check" {
		t.Errorf("Name() = %q", h.Name())
	}
	if h.Description() == "" {
		t.Error("пустое описание")
	}
}
