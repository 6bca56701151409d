// Package tasksync reconciles extracted coursework items against the
// task-list service: create what's new, touch up what exists, and never
// resurrect work the user already checked off.
package tasksync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/codes"

	"canvassync/lib/scrapers/canvas/planner"
	"canvassync/lib/telemetry"
	"canvassync/lib/todoist"
)

var tracer = telemetry.Tracer("canvassync.services.tasksync")

// fixed priority for everything this tool creates (todoist scale, 4 is
// most urgent)
const taskPriority = 3

// API is the slice of the task-list service this engine consumes.
type API interface {
	Tasks(ctx context.Context) ([]todoist.Task, error)
	Projects(ctx context.Context) ([]todoist.Project, error)
	CreateTask(ctx context.Context, params todoist.CreateTaskParams) (todoist.Task, error)
	UpdateTask(ctx context.Context, id string, params todoist.UpdateTaskParams) error
}

type Stats struct {
	Creates int
	Updates int
	Skips   int
	Errors  int
}

// Run is the configuration-guarded entrypoint: with no token configured the
// whole engine is a no-op.
func Run(ctx context.Context, token string, items []planner.Item) Stats {
	if token == "" {
		slog.InfoContext(ctx, "no task api token configured, skipping task export")
		return Stats{}
	}

	client := todoist.NewClient(todoist.ClientOptions{Token: token})
	stats, err := Sync(ctx, client, items)
	if err != nil {
		slog.ErrorContext(ctx, "task export aborted", "err", err)
	}
	return stats
}

// Sync fetches the remote state once up front, then processes every item
// independently in extraction order. A failed initial fetch aborts the
// engine; a failed create or update only counts against that one item.
func Sync(ctx context.Context, api API, items []planner.Item) (Stats, error) {
	ctx, span := tracer.Start(ctx, "Sync")
	defer span.End()

	stats := Stats{}
	defer func() {
		slog.InfoContext(
			ctx, "task export finished",
			"creates", stats.Creates,
			"updates", stats.Updates,
			"skips", stats.Skips,
			"errors", stats.Errors,
		)
	}()

	tasks, err := api.Tasks(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list tasks")
		return stats, err
	}
	projects, err := api.Projects(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to list projects")
		return stats, err
	}

	for _, item := range items {
		syncItem(ctx, api, &stats, tasks, projects, item)
	}

	return stats, nil
}

func syncItem(ctx context.Context, api API, stats *Stats, tasks []todoist.Task, projects []todoist.Project, item planner.Item) {
	existing := findExisting(tasks, item)

	if existing != nil && existing.IsCompleted {
		stats.Skips++
		slog.InfoContext(
			ctx, "task already completed, leaving it alone",
			"title", item.Title,
			"task_id", existing.ID,
		)
		return
	}

	if existing == nil {
		params := todoist.CreateTaskParams{
			Content:     item.Title,
			Description: buildDescription(item),
			ProjectID:   ResolveProject(projects, item.ClassName),
			DueString:   strings.TrimPrefix(item.DueDate.Text, "Due: "),
			Priority:    taskPriority,
		}
		_, err := api.CreateTask(ctx, params)
		if err != nil {
			stats.Errors++
			slog.ErrorContext(
				ctx, "failed to create task",
				"title", item.Title,
				"url", item.SourceUrl,
				"err", err,
			)
			return
		}
		stats.Creates++
		slog.DebugContext(ctx, "created task", "title", item.Title)
		return
	}

	// matched and incomplete: only refresh the description, a full rewrite
	// would clobber edits the user made remotely
	description := buildDescription(item)
	if description == "" {
		stats.Skips++
		slog.DebugContext(ctx, "nothing to update", "title", item.Title, "task_id", existing.ID)
		return
	}
	err := api.UpdateTask(ctx, existing.ID, todoist.UpdateTaskParams{Description: description})
	if err != nil {
		stats.Errors++
		slog.ErrorContext(
			ctx, "failed to update task",
			"title", item.Title,
			"task_id", existing.ID,
			"err", err,
		)
		return
	}
	stats.Updates++
	slog.DebugContext(ctx, "updated task", "title", item.Title, "task_id", existing.ID)
}

func buildDescription(item planner.Item) string {
	if item.Description == nil {
		return ""
	}
	return fmt.Sprintf(
		"%s\n\n[Open in Canvas](%s)\nClass: %s\nType: %s",
		*item.Description,
		item.SourceUrl,
		item.ClassName,
		item.Kind,
	)
}
