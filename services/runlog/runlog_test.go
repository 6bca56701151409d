package runlog

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRecordAndList(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()
	base := time.Date(2025, time.September, 22, 8, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		err = store.Record(ctx, Run{
			StartedAt:   base.Add(time.Duration(i) * time.Hour),
			FinishedAt:  base.Add(time.Duration(i)*time.Hour + time.Minute),
			Discovered:  10 + i,
			Processed:   9 + i,
			Skipped:     1,
			TaskCreates: i,
			DbUpdates:   i,
		})
		require.NoError(t, err)
	}

	runs, err := store.List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// newest first
	require.Equal(t, 12, runs[0].Discovered)
	require.Equal(t, 11, runs[1].Discovered)
	require.Equal(t, 2, runs[0].TaskCreates)
	require.Equal(t, base.Add(2*time.Hour).Unix(), runs[0].StartedAt.Unix())
}

func TestListEmptyStore(t *testing.T) {
	store, err := Open(":memory:")
	require.NoError(t, err)
	defer store.Close()

	runs, err := store.List(context.Background(), 10)
	require.NoError(t, err)
	require.Empty(t, runs)
}
