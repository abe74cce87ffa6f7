package mapper

import (
	"github.com/Kargones/redmine2gitea/internal/constants"
	"github.com/Kargones/redmine2gitea/internal/entity/redmine"
)

// statusRejected - исходный статус, получающий дополнительную метку wontfix.
const statusRejected = "Rejected"

// IssueDraft - полностью подготовленная к записи задача.
// Все решения трансляции (состояние, метки, имена пользователей,
// markdown-тело) приняты до первого обращения к целевому API.
type IssueDraft struct {
	// SourceID - идентификатор исходной задачи в Redmine
	SourceID int64
	// Title - заголовок задачи
	Title string
	// Body - markdown-тело с таблицей "Imported from Redmine"
	Body string
	// Closed - true, если исходный статус транслируется в closed
	Closed bool
	// Labels - имена меток целевого репозитория (без дубликатов)
	Labels []string
	// Assignee - логин исполнителя в Gitea, пустая строка если не назначен
	Assignee string
	// Author - логин автора в Gitea, используется для имперсонации
	Author string
	// Comments - тела комментариев в хронологическом порядке журнала
	Comments []string
}

// MapIssue транслирует задачу Redmine в черновик задачи Gitea.
// Возвращает MappingError с кодом MAPPING.UNMAPPED_STATUS или
// MAPPING.UNMAPPED_LABEL, если таблицы соответствий не покрывают задачу;
// частично заполненный черновик при этом не возвращается.
func (m *Mapping) MapIssue(issue *redmine.Issue, sourceBaseURL string) (*IssueDraft, error) {
	state, err := m.State(issue.Status.Name)
	if err != nil {
		return nil, err
	}

	trackerLabel, err := m.TrackerLabel(issue.Tracker.Name)
	if err != nil {
		return nil, err
	}

	labels := []string{trackerLabel}
	if issue.Category != nil {
		categoryLabel, err := m.CategoryLabel(issue.Category.Name)
		if err != nil {
			return nil, err
		}
		labels = appendUnique(labels, categoryLabel)
	}
	labels = appendUnique(labels, constants.LabelSupport)
	if issue.Status.Name == statusRejected {
		labels = appendUnique(labels, constants.LabelWontfix)
	}

	draft := &IssueDraft{
		SourceID: issue.ID,
		Title:    issue.Subject,
		Body:     RenderBody(issue, sourceBaseURL),
		Closed:   state == StateClosed,
		Labels:   labels,
		Author:   ToUsername(issue.Author.Name),
	}
	if issue.AssignedTo != nil {
		draft.Assignee = ToUsername(issue.AssignedTo.Name)
	}
	for _, j := range issue.Comments() {
		draft.Comments = append(draft.Comments, FormatComment(j))
	}

	return draft, nil
}

// appendUnique добавляет значение, если оно ещё не встречалось в списке.
func appendUnique(labels []string, label string) []string {
	for _, existing := range labels {
		if existing == label {
			return labels
		}
	}
	return append(labels, label)
}
