package tasksync

import (
	"testing"

	"github.com/stretchr/testify/require"

	"canvassync/lib/todoist"
)

func TestResolveProject(t *testing.T) {
	projects := []todoist.Project{
		{ID: "p1", Name: "ATLS Studio Projects"},
		{ID: "p2", Name: "Physics"},
	}

	require.Equal(t, "p1", ResolveProject(projects, "ATLS 5420-001"))
	require.Equal(t, "", ResolveProject(projects, "CS 2270 Section 003"))
	require.Equal(t, "", ResolveProject(projects, ""))
}

func TestResolveProjectPrefersClosestName(t *testing.T) {
	projects := []todoist.Project{
		{ID: "p1", Name: "atls archive (old)"},
		{ID: "p2", Name: "atls"},
	}

	require.Equal(t, "p2", ResolveProject(projects, "ATLS 5420-001"))
}
