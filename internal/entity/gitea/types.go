package gitea

// Repo представляет репозиторий Gitea.
// Используется в preflight проверке команды check.
type Repo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
}

// Label представляет метку репозитория.
type Label struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Issue представляет задачу, созданную в Gitea.
type Issue struct {
	ID     int64  `json:"id"`
	Number int64  `json:"number"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	State  string `json:"state"`
}

// CreateIssueOptions содержит параметры для создания задачи.
type CreateIssueOptions struct {
	// Title — заголовок задачи
	Title string `json:"title"`

	// Body — описание задачи (markdown)
	Body string `json:"body"`

	// Closed — создать задачу сразу закрытой
	Closed bool `json:"closed"`

	// Labels — список ID меток
	Labels []int64 `json:"labels,omitempty"`

	// Assignee — логин назначенного пользователя (опционально)
	Assignee string `json:"assignee,omitempty"`

	// Sudo — логин автора для имперсонации через ?sudo=.
	// Не сериализуется в тело запроса.
	Sudo string `json:"-"`
}

// Attachment представляет вложение задачи в Gitea.
type Attachment struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// labelsPageLimit — количество меток на одной странице GET /labels.
const labelsPageLimit = 50

// labelsMaxPages — максимум страниц меток, защита от бесконечного цикла.
const labelsMaxPages = 100
