// Package runlog keeps a local history of sync runs so drops in scraped or
// synced counts can be spotted after the fact.
package runlog

import (
	"context"
	"database/sql"
	_ "embed"
	"time"

	"canvassync/lib/sqliteutil"
)

//go:embed schema.sql
var schema string

type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt time.Time

	Discovered int
	Processed  int
	Skipped    int
	Errors     int

	TaskCreates int
	TaskUpdates int
	TaskErrors  int

	DbCreates int
	DbUpdates int
	DbErrors  int
}

type Store struct {
	db *sql.DB
}

func Open(path string) (*Store, error) {
	db, err := sqliteutil.OpenDB(schema, path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (
			started_at, finished_at,
			discovered, processed, skipped, errors,
			task_creates, task_updates, task_errors,
			db_creates, db_updates, db_errors
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Unix(),
		run.FinishedAt.Unix(),
		run.Discovered,
		run.Processed,
		run.Skipped,
		run.Errors,
		run.TaskCreates,
		run.TaskUpdates,
		run.TaskErrors,
		run.DbCreates,
		run.DbUpdates,
		run.DbErrors,
	)
	return err
}

// List returns the most recent runs, newest first.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at,
			discovered, processed, skipped, errors,
			task_creates, task_updates, task_errors,
			db_creates, db_updates, db_errors
		FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished int64
		err = rows.Scan(
			&run.ID, &started, &finished,
			&run.Discovered, &run.Processed, &run.Skipped, &run.Errors,
			&run.TaskCreates, &run.TaskUpdates, &run.TaskErrors,
			&run.DbCreates, &run.DbUpdates, &run.DbErrors,
		)
		if err != nil {
			return nil, err
		}
		run.StartedAt = time.Unix(started, 0)
		run.FinishedAt = time.Unix(finished, 0)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
