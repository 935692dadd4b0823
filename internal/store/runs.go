package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run records one aggregation run over a series.
type Run struct {
	ID                string
	SeriesID          int64
	MainCharacter     string
	StartedAt         time.Time
	FinishedAt        *time.Time
	EpisodesProcessed int
	EpisodesSkipped   int
	TotalMentions     int
}

// ErrRunNotFound indicates no run exists with the given id.
var ErrRunNotFound = errors.New("run not found")

// StartRun records the beginning of a run and returns its id.
func (s *Store) StartRun(ctx context.Context, seriesID int64, mainCharacter string) (string, error) {
	id := uuid.NewString()
	startedAt := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.execWithRetry(ctx,
		"INSERT INTO runs (id, series_id, main_character, started_at) VALUES (?, ?, ?, ?)",
		id, seriesID, mainCharacter, startedAt,
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// FinishRun records the outcome of a run.
func (s *Store) FinishRun(ctx context.Context, id string, processed, skipped, totalMentions int) error {
	finishedAt := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.execWithRetry(ctx,
		`UPDATE runs
         SET finished_at = ?, episodes_processed = ?, episodes_skipped = ?, total_mentions = ?
         WHERE id = ?`,
		finishedAt, processed, skipped, totalMentions, id,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := "SELECT id, series_id, main_character, started_at, finished_at, episodes_processed, episodes_skipped, total_mentions FROM runs ORDER BY started_at DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw sql.NullString
	)
	if err := rows.Scan(&run.ID, &run.SeriesID, &run.MainCharacter, &startedRaw, &finishedRaw, &run.EpisodesProcessed, &run.EpisodesSkipped, &run.TotalMentions); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	if parsed, err := time.Parse(time.RFC3339Nano, startedRaw); err == nil {
		run.StartedAt = parsed
	}
	if finishedRaw.Valid {
		if parsed, err := time.Parse(time.RFC3339Nano, finishedRaw.String); err == nil {
			run.FinishedAt = &parsed
		}
	}
	return run, nil
}
