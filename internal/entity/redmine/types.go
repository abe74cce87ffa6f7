package redmine

// Named представляет именованную сущность Redmine (статус, трекер, приоритет,
// пользователь, категория). Большинство полей задачи — ссылки такого вида.
type Named struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Project представляет проект Redmine.
type Project struct {
	ID         int64  `json:"id"`
	Identifier string `json:"identifier"`
	Name       string `json:"name"`
}

// CustomField представляет настраиваемое поле задачи.
// Value может быть строкой или списком строк в зависимости от типа поля.
type CustomField struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Value any    `json:"value"`
}

// Journal представляет запись журнала задачи.
// Комментарием считается запись с непустым Notes; записи с пустым Notes —
// это изменения полей, они при миграции не переносятся.
type Journal struct {
	ID        int64  `json:"id"`
	User      Named  `json:"user"`
	Notes     string `json:"notes"`
	CreatedOn string `json:"created_on"`
}

// Attachment представляет вложение задачи.
type Attachment struct {
	ID          int64  `json:"id"`
	Filename    string `json:"filename"`
	Filesize    int64  `json:"filesize"`
	ContentType string `json:"content_type"`
	ContentURL  string `json:"content_url"`
	Author      Named  `json:"author"`
	CreatedOn   string `json:"created_on"`
}

// Issue представляет задачу Redmine.
// При получении списком (ListIssues) journals и attachments пустые —
// их возвращает только GetIssue с include=journals,attachments.
type Issue struct {
	ID           int64         `json:"id"`
	Subject      string        `json:"subject"`
	Description  string        `json:"description"`
	IsPrivate    bool          `json:"is_private"`
	DoneRatio    int           `json:"done_ratio"`
	Project      Named         `json:"project"`
	Tracker      Named         `json:"tracker"`
	Status       Named         `json:"status"`
	Priority     Named         `json:"priority"`
	Author       Named         `json:"author"`
	AssignedTo   *Named        `json:"assigned_to,omitempty"`
	Category     *Named        `json:"category,omitempty"`
	CustomFields []CustomField `json:"custom_fields,omitempty"`
	Journals     []Journal     `json:"journals,omitempty"`
	Attachments  []Attachment  `json:"attachments,omitempty"`
	CreatedOn    string        `json:"created_on"`
	UpdatedOn    string        `json:"updated_on"`
}

// Comments возвращает записи журнала с непустыми notes в хронологическом
// порядке (порядок journals в ответе Redmine).
func (i *Issue) Comments() []Journal {
	comments := make([]Journal, 0, len(i.Journals))
	for _, j := range i.Journals {
		if j.Notes != "" {
			comments = append(comments, j)
		}
	}
	return comments
}

// projectResponse — обёртка ответа GET /projects/{id}.json.
type projectResponse struct {
	Project Project `json:"project"`
}

// issueResponse — обёртка ответа GET /issues/{id}.json.
type issueResponse struct {
	Issue Issue `json:"issue"`
}

// issuesResponse — обёртка ответа GET /projects/{id}/issues.json.
type issuesResponse struct {
	Issues     []Issue `json:"issues"`
	TotalCount int64   `json:"total_count"`
	Offset     int64   `json:"offset"`
	Limit      int64   `json:"limit"`
}
