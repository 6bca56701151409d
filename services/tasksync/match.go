package tasksync

import (
	"strings"

	"github.com/antzucaro/matchr"

	"canvassync/lib/scrapers/canvas/planner"
	"canvassync/lib/textutil"
	"canvassync/lib/todoist"
)

// findExisting locates a previous export of the item among the remote
// tasks. Titles can collide or be renamed by the user, so the source url
// embedded in the description doubles as a stable identity anchor.
func findExisting(tasks []todoist.Task, item planner.Item) *todoist.Task {
	for i := range tasks {
		if tasks[i].Content == item.Title {
			return &tasks[i]
		}
		if item.SourceUrl != "" && strings.Contains(tasks[i].Description, item.SourceUrl) {
			return &tasks[i]
		}
	}
	return nil
}

// ResolveProject maps a portal class name onto a remote project id, or ""
// when no project matches (the item then lands in the service's default
// bucket). When several project names contain the normalized class name the
// closest one by string similarity wins.
func ResolveProject(projects []todoist.Project, className string) string {
	normalized := textutil.NormalizeClassName(className)
	if normalized == "" {
		return ""
	}

	var candidates []todoist.Project
	for _, p := range projects {
		if textutil.MatchClass(p.Name, normalized) {
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		return ""
	}

	best := candidates[0]
	bestScore := matchr.JaroWinkler(strings.ToLower(best.Name), normalized, false)
	for _, p := range candidates[1:] {
		score := matchr.JaroWinkler(strings.ToLower(p.Name), normalized, false)
		if score > bestScore {
			best = p
			bestScore = score
		}
	}
	return best.ID
}
