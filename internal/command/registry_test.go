package command

import (
	"context"
	"testing"

	"github.com/Kargones/redmine2gitea/internal/config"
)

// stubHandler — минимальный обработчик для тестов реестра.
type stubHandler struct {
	name string
}

func (h *stubHandler) Name() string        { return h.name }
func (h *stubHandler) Description() string { return "тестовый обработчик" }
func (h *stubHandler) Execute(_ context.Context, _ *config.Config) error {
	return nil
}

func TestRegister(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	if err := Register(&stubHandler{name: "migrate"}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	h, ok := Get("migrate")
	if !ok || h == nil {
		t.Fatal("зарегистрированная команда не найдена")
	}
	if h.Name() != "migrate" {
		t.Errorf("Name() = %q", h.Name())
	}
}

func TestRegister_NilHandler(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	if err := Register(nil); err == nil {
		t.Error("ожидалась ошибка для nil обработчика")
	}
}

func TestRegister_InvalidNames(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	tests := []struct {
		name    string
		cmdName string
	}{
		{"пустое имя", ""},
		{"верхний регистр", "Migrate"},
		{"подчёркивание", "dry_run"},
		{"начинается с цифры", "2gitea"},
		{"начинается с дефиса", "-migrate"},
		{"завершающий дефис", "migrate-"},
		{"двойной дефис", "migrate--all"},
		{"пробел", "migrate all"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := Register(&stubHandler{name: tt.cmdName}); err == nil {
				t.Errorf("ожидалась ошибка для имени %q", tt.cmdName)
			}
		})
	}
}

func TestRegister_Duplicate(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	if err := Register(&stubHandler{name: "check"}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}
	if err := Register(&stubHandler{name: "check"}); err == nil {
		t.Error("ожидалась ошибка повторной регистрации")
	}
}

func TestGet_Unknown(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	if _, ok := Get("unknown"); ok {
		t.Error("незарегистрированная команда не должна находиться")
	}
}

func TestNames_Sorted(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	for _, name := range []string{"version", "check", "migrate", "help"} {
		if err := Register(&stubHandler{name: name}); err != nil {
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	names := Names()
	want := []string{"check", "help", "migrate", "version"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i, name := range want {
		if names[i] != name {
			t.Errorf("Names()[%d] = %q, ожидалось %q", i, names[i], name)
		}
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	clearRegistry()
	t.Cleanup(clearRegistry)

	if err := Register(&stubHandler{name: "migrate"}); err != nil {
		t.Fatalf("неожиданная ошибка: %v", err)
	}

	all := All()
	delete(all, "migrate")

	if _, ok := Get("migrate"); !ok {
		t.Error("изменение копии не должно влиять на реестр")
	}
}
