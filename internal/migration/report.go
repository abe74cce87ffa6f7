package migration

// Report — итог прогона миграции. Счётчики сходятся:
// Total = Migrated + Skipped + Failed.
type Report struct {
	// Project — идентификатор исходного проекта
	Project string `json:"project"`
	// Total — количество обработанных задач
	Total int `json:"total"`
	// Migrated — количество успешно перенесённых задач
	Migrated int `json:"migrated"`
	// Skipped — количество пропущенных задач (приватные)
	Skipped int `json:"skipped"`
	// Failed — количество задач, завершившихся ошибкой
	Failed int `json:"failed"`
	// Comments — количество перенесённых комментариев
	Comments int `json:"comments"`
	// Attachments — количество перенесённых вложений
	Attachments int `json:"attachments"`
	// Errors — код ошибки по ID исходной задачи
	Errors map[int64]string `json:"errors,omitempty"`
	// DryRun — прогон без записи в целевой трекер
	DryRun bool `json:"dry_run"`
}

func newReport(project string, dryRun bool) *Report {
	return &Report{
		Project: project,
		Errors:  map[int64]string{},
		DryRun:  dryRun,
	}
}

func (r *Report) recordMigrated() {
	r.Total++
	r.Migrated++
}

func (r *Report) recordSkipped() {
	r.Total++
	r.Skipped++
}

func (r *Report) recordFailed(issueID int64, code string) {
	r.Total++
	r.Failed++
	r.Errors[issueID] = code
}
