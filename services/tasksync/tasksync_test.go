package tasksync

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"canvassync/lib/scrapers/canvas/planner"
	"canvassync/lib/telemetry"
	"canvassync/lib/testutil"
	"canvassync/lib/todoist"
)

type fakeAPI struct {
	tasks    []todoist.Task
	projects []todoist.Project

	failCreateContent string

	listCalls   int
	createCalls int
	updateCalls int
	nextId      int
}

func (f *fakeAPI) Tasks(ctx context.Context) ([]todoist.Task, error) {
	f.listCalls++
	out := make([]todoist.Task, len(f.tasks))
	copy(out, f.tasks)
	return out, nil
}

func (f *fakeAPI) Projects(ctx context.Context) ([]todoist.Project, error) {
	return f.projects, nil
}

func (f *fakeAPI) CreateTask(ctx context.Context, params todoist.CreateTaskParams) (todoist.Task, error) {
	f.createCalls++
	if params.Content == f.failCreateContent {
		return todoist.Task{}, fmt.Errorf("simulated create failure")
	}
	f.nextId++
	task := todoist.Task{
		ID:          fmt.Sprintf("t%d", f.nextId),
		Content:     params.Content,
		Description: params.Description,
		ProjectID:   params.ProjectID,
		Priority:    params.Priority,
	}
	f.tasks = append(f.tasks, task)
	return task, nil
}

func (f *fakeAPI) UpdateTask(ctx context.Context, id string, params todoist.UpdateTaskParams) error {
	f.updateCalls++
	for i := range f.tasks {
		if f.tasks[i].ID == id {
			f.tasks[i].Description = params.Description
			return nil
		}
	}
	return fmt.Errorf("no such task '%s'", id)
}

func strptr(s string) *string { return &s }

func assignment(title, class, url string) planner.Item {
	return planner.Item{
		Title:       title,
		DueDate:     planner.DueDate{Text: "Mon Sep 22, 2025 4:00pm"},
		Description: strptr("do the thing"),
		ClassName:   class,
		SourceUrl:   url,
		Kind:        planner.KindAssignment,
	}
}

func quiz(title, class, url string) planner.Item {
	return planner.Item{
		Title:     title,
		DueDate:   planner.DueDate{Text: "Sep 22 4:00pm"},
		ClassName: class,
		SourceUrl: url,
		Kind:      planner.KindQuiz,
	}
}

func TestSyncCreatesNewItems(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/tasksync")
	defer cleanup()

	api := &fakeAPI{projects: []todoist.Project{{ID: "p1", Name: "ATLS Studio"}}}
	items := []planner.Item{
		assignment("Reading Response 3", "ATLS 5420-001", "https://canvas.example.edu/courses/101/assignments/1"),
		quiz("Week 5 Quiz", "CS 2270 Section 003", "https://canvas.example.edu/courses/102/quizzes/2"),
	}

	stats, err := Sync(context.Background(), api, items)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Creates)
	require.Equal(t, 0, stats.Errors)

	require.Equal(t, "p1", api.tasks[0].ProjectID)
	require.Contains(t, api.tasks[0].Description, "https://canvas.example.edu/courses/101/assignments/1")
	require.Contains(t, api.tasks[0].Description, "Class: ATLS 5420-001")
	// no project named after cs, goes to the default bucket
	require.Equal(t, "", api.tasks[1].ProjectID)
}

func TestSyncIsIdempotent(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/tasksync")
	defer cleanup()

	rndm := rand.New(rand.NewSource(5))
	api := &fakeAPI{}
	var items []planner.Item
	for i := 0; i < 10; i++ {
		title := testutil.RandomString(rndm, 12)
		url := fmt.Sprintf("https://canvas.example.edu/courses/101/assignments/%d", i)
		items = append(items, assignment(title, "ATLS 5420-001", url))
	}

	first, err := Sync(context.Background(), api, items)
	require.NoError(t, err)
	require.Equal(t, 10, first.Creates)

	second, err := Sync(context.Background(), api, items)
	require.NoError(t, err)
	require.Equal(t, 0, second.Creates)
	require.Equal(t, 10, second.Updates)
}

func TestSyncMatchesBySourceUrl(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/tasksync")
	defer cleanup()

	// the user renamed the task remotely, the embedded link still anchors it
	api := &fakeAPI{tasks: []todoist.Task{{
		ID:          "t1",
		Content:     "renamed by user",
		Description: "notes [Open in Canvas](https://canvas.example.edu/courses/101/assignments/1)",
	}}}
	items := []planner.Item{
		assignment("Reading Response 3", "ATLS 5420-001", "https://canvas.example.edu/courses/101/assignments/1"),
	}

	stats, err := Sync(context.Background(), api, items)
	require.NoError(t, err)
	require.Equal(t, 0, stats.Creates)
	require.Equal(t, 1, stats.Updates)
}

func TestSyncNeverTouchesCompletedTasks(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/tasksync")
	defer cleanup()

	api := &fakeAPI{tasks: []todoist.Task{{
		ID:          "t1",
		Content:     "Reading Response 3",
		IsCompleted: true,
	}}}
	items := []planner.Item{
		assignment("Reading Response 3", "ATLS 5420-001", "https://canvas.example.edu/courses/101/assignments/1"),
	}

	stats, err := Sync(context.Background(), api, items)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Skips)
	require.Equal(t, 0, api.createCalls)
	require.Equal(t, 0, api.updateCalls)
}

func TestSyncSkipsUpdateWithNothingToSend(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/tasksync")
	defer cleanup()

	// a quiz has no description, so a matched incomplete quiz has nothing
	// worth rewriting remotely
	api := &fakeAPI{tasks: []todoist.Task{{ID: "t1", Content: "Week 5 Quiz"}}}
	items := []planner.Item{quiz("Week 5 Quiz", "CS 2270", "https://canvas.example.edu/courses/102/quizzes/2")}

	stats, err := Sync(context.Background(), api, items)
	require.NoError(t, err)
	require.Equal(t, 1, stats.Skips)
	require.Equal(t, 0, api.updateCalls)
}

func TestSyncContainsPerItemFailures(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/tasksync")
	defer cleanup()

	api := &fakeAPI{failCreateContent: "Week 5 Quiz"}
	items := []planner.Item{
		assignment("Reading Response 3", "ATLS 5420-001", "https://canvas.example.edu/courses/101/assignments/1"),
		quiz("Week 5 Quiz", "CS 2270", "https://canvas.example.edu/courses/102/quizzes/2"),
		assignment("Essay Draft", "ATLS 5420-001", "https://canvas.example.edu/courses/101/assignments/3"),
	}

	stats, err := Sync(context.Background(), api, items)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Creates)
	require.Equal(t, 1, stats.Errors)
}

func TestRunWithoutTokenIsNoop(t *testing.T) {
	cleanup := telemetry.SetupForTesting("test:services/tasksync")
	defer cleanup()

	stats := Run(context.Background(), "", []planner.Item{
		assignment("Reading Response 3", "ATLS 5420-001", "https://canvas.example.edu/courses/101/assignments/1"),
	})
	require.Equal(t, Stats{}, stats)
}
