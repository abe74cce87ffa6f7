// Package help реализует команду help для вывода списка всех доступных команд.
package help

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Kargones/redmine2gitea/internal/command"
	"github.com/Kargones/redmine2gitea/internal/config"
	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/pkg/output"
	"github.com/Kargones/redmine2gitea/internal/pkg/tracing"
)

func RegisterCmd() error {
	return command.Register(&Handler{})
}

// CommandInfo описывает одну команду для вывода.
type CommandInfo struct {
	// Name — имя команды
	Name string `json:"name"`
	// Description — описание команды
	Description string `json:"description"`
}

// Data содержит информацию обо всех доступных командах.
type Data struct {
	// Commands — зарегистрированные команды, отсортированы по имени
	Commands []CommandInfo `json:"commands"`
}

// writeText выводит список команд в человекочитаемом формате.
func (d *Data) writeText(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Доступные команды (R2G_COMMAND):"); err != nil {
		return err
	}
	for _, cmd := range d.Commands {
		if _, err := fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Description); err != nil {
			return err
		}
	}
	return nil
}

// buildData собирает список команд из реестра. Порядок детерминирован:
// command.Names() возвращает имена по алфавиту.
func buildData() *Data {
	names := command.Names()
	commands := make([]CommandInfo, 0, len(names))
	for _, name := range names {
		h, ok := command.Get(name)
		if !ok {
			continue
		}
		commands = append(commands, CommandInfo{
			Name:        name,
			Description: h.Description(),
		})
	}
	return &Data{Commands: commands}
}

// Handler обрабатывает команду help.
type Handler struct {
	// out — приёмник вывода (nil в production → os.Stdout)
	out io.Writer
}

// Name возвращает имя команды.
func (h *Handler) Name() string {
	return constants.ActHelp
}

// Description возвращает описание команды для вывода в help.
func (h *Handler) Description() string {
	return "Вывод списка доступных команд"
}

// Execute выполняет команду help.
func (h *Handler) Execute(ctx context.Context, _ *config.Config) error {
	start := time.Now()

	traceID := tracing.TraceIDFromContext(ctx)
	if traceID == "" {
		traceID = tracing.GenerateTraceID()
	}

	format := os.Getenv(constants.EnvOutputFormat)
	out := h.out
	if out == nil {
		out = os.Stdout
	}

	data := buildData()

	if format != output.FormatJSON {
		return data.writeText(out)
	}

	result := &output.Result{
		Status:  output.StatusSuccess,
		Command: constants.ActHelp,
		Data:    data,
		Metadata: &output.Metadata{
			DurationMs: time.Since(start).Milliseconds(),
			TraceID:    traceID,
			APIVersion: constants.APIVersion,
		},
	}

	return output.NewWriter(format).Write(out, result)
}
