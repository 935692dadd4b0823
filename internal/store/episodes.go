package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"maku/internal/registry"
)

// ErrCacheMiss indicates no cached episode list exists for a series.
var ErrCacheMiss = errors.New("episode cache miss")

// SaveEpisodes replaces the cached episode list for a series. Positions
// preserve the order the drama endpoint returned.
func (s *Store) SaveEpisodes(ctx context.Context, seriesID int64, episodes []registry.Episode) error {
	ctx = ensureContext(ctx)
	now := time.Now().UTC().Format(time.RFC3339Nano)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin episode cache tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM episode_cache WHERE series_id = ?", seriesID); err != nil {
		return fmt.Errorf("clear episode cache: %w", err)
	}
	for position, episode := range episodes {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO episode_cache (series_id, position, name, sound_id, fetched_at) VALUES (?, ?, ?, ?, ?)",
			seriesID, position, episode.Name, episode.ID, now,
		); err != nil {
			return fmt.Errorf("insert cached episode: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit episode cache: %w", err)
	}
	return nil
}

// Episodes returns the cached episode list for a series along with the time
// it was fetched. ErrCacheMiss is returned for an unknown series.
func (s *Store) Episodes(ctx context.Context, seriesID int64) ([]registry.Episode, time.Time, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, sound_id, fetched_at FROM episode_cache WHERE series_id = ? ORDER BY position",
		seriesID,
	)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("query episode cache: %w", err)
	}
	defer rows.Close()

	var (
		episodes  []registry.Episode
		fetchedAt time.Time
	)
	for rows.Next() {
		var (
			episode registry.Episode
			rawTime string
		)
		if err := rows.Scan(&episode.Name, &episode.ID, &rawTime); err != nil {
			return nil, time.Time{}, fmt.Errorf("scan cached episode: %w", err)
		}
		if fetchedAt.IsZero() {
			if parsed, parseErr := time.Parse(time.RFC3339Nano, rawTime); parseErr == nil {
				fetchedAt = parsed
			}
		}
		episodes = append(episodes, episode)
	}
	if err := rows.Err(); err != nil {
		return nil, time.Time{}, fmt.Errorf("iterate episode cache: %w", err)
	}
	if len(episodes) == 0 {
		return nil, time.Time{}, ErrCacheMiss
	}
	return episodes, fetchedAt, nil
}

// Fresh reports whether a cached episode list for the series exists and is
// younger than maxAge. A non-positive maxAge never counts as fresh.
func (s *Store) Fresh(ctx context.Context, seriesID int64, maxAge time.Duration) (bool, error) {
	if maxAge <= 0 {
		return false, nil
	}
	_, fetchedAt, err := s.Episodes(ctx, seriesID)
	if errors.Is(err, ErrCacheMiss) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return time.Since(fetchedAt) < maxAge, nil
}
