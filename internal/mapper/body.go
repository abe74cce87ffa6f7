package mapper

import (
	"fmt"
	"strings"

	"github.com/Kargones/redmine2gitea/internal/entity/redmine"
)

// RenderBody формирует markdown-тело задачи Gitea: описание оригинала
// и таблица свойств "Imported from Redmine". Поля, которые Gitea API
// не может выставить напрямую (автор, исходный статус, приоритет,
// прогресс), сохраняются в таблице.
func RenderBody(issue *redmine.Issue, sourceBaseURL string) string {
	var b strings.Builder

	b.WriteString("## Description\n")
	b.WriteString(normalizeNewlines(issue.Description))
	b.WriteString("\n\n## Imported from Redmine\n")
	b.WriteString("| Property | Value |\n")
	b.WriteString("| --- | --- |\n")

	url := fmt.Sprintf("%s/issues/%d", sourceBaseURL, issue.ID)
	fmt.Fprintf(&b, "| ID | [%d](%s) |\n", issue.ID, url)
	fmt.Fprintf(&b, "| Priority | %s |\n", issue.Priority.Name)
	fmt.Fprintf(&b, "| Status | %s |\n", issue.Status.Name)
	fmt.Fprintf(&b, "| Issue type | %s |\n", issue.Tracker.Name)
	fmt.Fprintf(&b, "| Author | %s |\n", issue.Author.Name)

	assignedTo := "-"
	if issue.AssignedTo != nil {
		assignedTo = issue.AssignedTo.Name
	}
	fmt.Fprintf(&b, "| Assigned to | %s |\n", assignedTo)

	for _, cf := range issue.CustomFields {
		value := formatCustomValue(cf.Value)
		if value == "" {
			continue
		}
		fmt.Fprintf(&b, "| %s | %s |\n", cf.Name, value)
	}

	category := "-"
	if issue.Category != nil {
		category = issue.Category.Name
	}
	fmt.Fprintf(&b, "| Category | %s |\n", category)
	fmt.Fprintf(&b, "| Progress | %d%% |\n", issue.DoneRatio)

	return b.String()
}

// FormatComment формирует markdown-тело комментария Gitea из записи журнала.
// Gitea API не позволяет выставить автора и дату комментария, поэтому
// атрибуция добавляется строкой в начало тела.
func FormatComment(j redmine.Journal) string {
	return fmt.Sprintf("_%s wrote on %s:_\n\n%s",
		j.User.Name, j.CreatedOn, normalizeNewlines(j.Notes))
}

// normalizeNewlines приводит переводы строк Redmine (\r\n) к \n.
func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// formatCustomValue приводит значение настраиваемого поля к строке.
// Redmine отдаёт строку или список строк в зависимости от типа поля;
// пустые значения опускаются.
func formatCustomValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case []any:
		parts := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := item.(string); ok && s != "" {
				parts = append(parts, s)
			}
		}
		return strings.Join(parts, ", ")
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", val)
	}
}
