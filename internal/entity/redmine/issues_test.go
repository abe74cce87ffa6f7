package redmine

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestAPI(serverURL string) *API {
	return NewAPI(Config{
		BaseURL: serverURL,
		APIKey:  "test-key",
		Project: "helpdesk",
		Timeout: 5 * time.Second,
	})
}

// TestNewAPI тестирует создание нового экземпляра API
func TestNewAPI(t *testing.T) {
	api := newTestAPI("https://redmine.example.com")

	if api == nil {
		t.Fatal("NewAPI returned nil")
	}
	if api.baseURL != "https://redmine.example.com" {
		t.Errorf("Expected baseURL https://redmine.example.com, got %s", api.baseURL)
	}
	if api.project != "helpdesk" {
		t.Errorf("Expected project helpdesk, got %s", api.project)
	}
	if api.logger == nil {
		t.Error("Expected non-nil logger fallback")
	}
}

// TestGetProject тестирует preflight получения проекта
func TestGetProject(t *testing.T) {
	tests := []struct {
		name         string
		responseCode int
		responseBody string
		expectError  bool
		expectCode   string
	}{
		{
			name:         "successful get project",
			responseCode: 200,
			responseBody: `{"project":{"id":7,"identifier":"helpdesk","name":"Helpdesk"}}`,
			expectError:  false,
		},
		{
			name:         "project not found",
			responseCode: 404,
			responseBody: `{"errors":["Not Found"]}`,
			expectError:  true,
			expectCode:   ErrSourceNotFound,
		},
		{
			name:         "forbidden",
			responseCode: 403,
			responseBody: `{}`,
			expectError:  true,
			expectCode:   ErrSourceAuthFailed,
		},
		{
			name:         "server error",
			responseCode: 500,
			responseBody: `{}`,
			expectError:  true,
			expectCode:   ErrSourceUnavailable,
		},
		{
			name:         "invalid json",
			responseCode: 200,
			responseBody: `not-json`,
			expectError:  true,
			expectCode:   ErrSourceDecodeFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				expectedPath := "/projects/helpdesk.json"
				if r.URL.Path != expectedPath {
					t.Errorf("Expected path %s, got %s", expectedPath, r.URL.Path)
				}
				if r.Header.Get("X-Redmine-API-Key") != "test-key" {
					t.Errorf("Expected X-Redmine-API-Key header, got %q", r.Header.Get("X-Redmine-API-Key"))
				}
				w.WriteHeader(tt.responseCode)
				_, _ = w.Write([]byte(tt.responseBody))
			}))
			defer server.Close()

			api := newTestAPI(server.URL)
			project, err := api.GetProject(context.Background())

			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				srcErr, ok := err.(*SourceError)
				if !ok {
					t.Fatalf("Expected *SourceError, got %T", err)
				}
				if srcErr.Code != tt.expectCode {
					t.Errorf("Expected code %s, got %s", tt.expectCode, srcErr.Code)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if project.Identifier != "helpdesk" {
				t.Errorf("Expected identifier helpdesk, got %s", project.Identifier)
			}
		})
	}
}

// TestForEachIssue_Pagination тестирует постраничный перебор задач
func TestForEachIssue_Pagination(t *testing.T) {
	var requestedOffsets []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("status_id") != "*" {
			t.Errorf("Expected status_id=*, got %q", q.Get("status_id"))
		}
		if q.Get("sort") != "id:asc" {
			t.Errorf("Expected sort=id:asc, got %q", q.Get("sort"))
		}
		offset := q.Get("offset")
		requestedOffsets = append(requestedOffsets, offset)

		// Две страницы: 100 задач (1..100) и 2 задачи (101, 102)
		switch offset {
		case "0":
			issues := make([]string, 0, 100)
			for i := 1; i <= 100; i++ {
				issues = append(issues, fmt.Sprintf(`{"id":%d,"subject":"issue %d"}`, i, i))
			}
			fmt.Fprintf(w, `{"issues":[%s],"total_count":102,"offset":0,"limit":100}`,
				joinJSON(issues))
		case "100":
			fmt.Fprint(w, `{"issues":[{"id":101,"subject":"issue 101"},{"id":102,"subject":"issue 102"}],"total_count":102,"offset":100,"limit":100}`)
		default:
			t.Errorf("Unexpected offset %s", offset)
		}
	}))
	defer server.Close()

	api := newTestAPI(server.URL)

	var gotIDs []int64
	err := api.ForEachIssue(context.Background(), func(issue Issue) error {
		gotIDs = append(gotIDs, issue.ID)
		return nil
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(gotIDs) != 102 {
		t.Fatalf("Expected 102 issues, got %d", len(gotIDs))
	}
	// Порядок возрастания id
	for i := 1; i < len(gotIDs); i++ {
		if gotIDs[i] <= gotIDs[i-1] {
			t.Errorf("Issues not in ascending order: %d after %d", gotIDs[i], gotIDs[i-1])
		}
	}
	if len(requestedOffsets) != 2 {
		t.Errorf("Expected 2 page requests, got %d (%v)", len(requestedOffsets), requestedOffsets)
	}
}

// TestForEachIssue_CallbackError тестирует прерывание перебора при ошибке fn
func TestForEachIssue_CallbackError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"issues":[{"id":1},{"id":2},{"id":3}],"total_count":3,"offset":0,"limit":100}`)
	}))
	defer server.Close()

	api := newTestAPI(server.URL)

	stopErr := fmt.Errorf("stop")
	var seen int
	err := api.ForEachIssue(context.Background(), func(issue Issue) error {
		seen++
		if issue.ID == 2 {
			return stopErr
		}
		return nil
	})

	if err != stopErr {
		t.Fatalf("Expected callback error to propagate, got %v", err)
	}
	if seen != 2 {
		t.Errorf("Expected iteration to stop after 2 issues, got %d", seen)
	}
}

// TestGetIssue тестирует получение задачи с журналами и вложениями
func TestGetIssue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedPath := "/issues/42.json"
		if r.URL.Path != expectedPath {
			t.Errorf("Expected path %s, got %s", expectedPath, r.URL.Path)
		}
		if r.URL.Query().Get("include") != "journals,attachments" {
			t.Errorf("Expected include=journals,attachments, got %q", r.URL.Query().Get("include"))
		}
		fmt.Fprint(w, `{"issue":{
			"id":42,
			"subject":"Printer on fire",
			"description":"It burns",
			"is_private":false,
			"done_ratio":50,
			"tracker":{"id":1,"name":"Bug"},
			"status":{"id":2,"name":"In Progress"},
			"priority":{"id":4,"name":"High"},
			"author":{"id":5,"name":"Иван Петров"},
			"assigned_to":{"id":6,"name":"Anna Schmidt"},
			"journals":[
				{"id":1,"user":{"id":5,"name":"Иван Петров"},"notes":"first","created_on":"2020-01-01T10:00:00Z"},
				{"id":2,"user":{"id":6,"name":"Anna Schmidt"},"notes":"","created_on":"2020-01-02T10:00:00Z"},
				{"id":3,"user":{"id":6,"name":"Anna Schmidt"},"notes":"second","created_on":"2020-01-03T10:00:00Z"}
			],
			"attachments":[
				{"id":9,"filename":"log.txt","filesize":12,"content_url":"http://example/attachments/download/9/log.txt"}
			]
		}}`)
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	issue, err := api.GetIssue(context.Background(), 42)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if issue.ID != 42 {
		t.Errorf("Expected id 42, got %d", issue.ID)
	}
	if issue.Status.Name != "In Progress" {
		t.Errorf("Expected status In Progress, got %s", issue.Status.Name)
	}
	if len(issue.Attachments) != 1 {
		t.Fatalf("Expected 1 attachment, got %d", len(issue.Attachments))
	}

	// Comments() отфильтровывает записи журнала без notes
	comments := issue.Comments()
	if len(comments) != 2 {
		t.Fatalf("Expected 2 comments, got %d", len(comments))
	}
	if comments[0].Notes != "first" || comments[1].Notes != "second" {
		t.Errorf("Comments out of order: %q, %q", comments[0].Notes, comments[1].Notes)
	}
}

// TestDownloadAttachment тестирует скачивание вложения байт-в-байт
func TestDownloadAttachment(t *testing.T) {
	payload := []byte{0x00, 0x01, 0xFF, 0x42}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Redmine-API-Key") != "test-key" {
			t.Errorf("Expected API key header on attachment download")
		}
		_, _ = w.Write(payload)
	}))
	defer server.Close()

	api := newTestAPI(server.URL)
	att := Attachment{ID: 9, Filename: "data.bin", ContentURL: server.URL + "/attachments/download/9/data.bin"}

	data, err := api.DownloadAttachment(context.Background(), att)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("Attachment bytes differ: got %v, want %v", data, payload)
	}
}

// joinJSON объединяет JSON-фрагменты запятой.
func joinJSON(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ","
		}
		out += p
	}
	return out
}
