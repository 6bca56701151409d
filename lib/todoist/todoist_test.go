package todoist

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClient(t *testing.T) {
	var gotAuth string
	var created CreateTaskParams
	var updatedId string

	mux := http.NewServeMux()
	mux.HandleFunc("/tasks", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode([]Task{
				{ID: "1", Content: "Reading Response 3", IsCompleted: false, ProjectID: "p1"},
			})
		case http.MethodPost:
			json.NewDecoder(r.Body).Decode(&created)
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(Task{ID: "2", Content: created.Content})
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}
	})
	mux.HandleFunc("/projects", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]Project{{ID: "p1", Name: "ATLS Studio"}})
	})
	mux.HandleFunc("/tasks/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		updatedId = strings.TrimPrefix(r.URL.Path, "/tasks/")
		w.WriteHeader(http.StatusOK)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(ClientOptions{Token: "test-token", BaseUrl: server.URL})
	ctx := context.Background()

	tasks, err := client.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, "Bearer test-token", gotAuth)

	projects, err := client.Projects(ctx)
	require.NoError(t, err)
	require.Equal(t, "ATLS Studio", projects[0].Name)

	task, err := client.CreateTask(ctx, CreateTaskParams{
		Content:   "Week 5 Quiz",
		DueString: "Sep 22 4:00pm",
		Priority:  3,
	})
	require.NoError(t, err)
	require.Equal(t, "2", task.ID)
	require.Equal(t, "Week 5 Quiz", created.Content)

	err = client.UpdateTask(ctx, "1", UpdateTaskParams{Description: "updated"})
	require.NoError(t, err)
	require.Equal(t, "1", updatedId)
}

func TestClientErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewClient(ClientOptions{Token: "bad", BaseUrl: server.URL})
	_, err := client.Tasks(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "403")
}
