package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/arkade-games/adastra-server/internal/model"
)

// GetWorld returns the current snapshot, or nil if none has been written yet
func (s *Storage) GetWorld(ctx context.Context) (*model.WorldSnapshot, error) {
	var (
		data      string
		updatedAt sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, updated_at FROM world_state WHERE id = 1`,
	).Scan(&data, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get world: %w", err)
	}
	return &model.WorldSnapshot{
		Data:      model.DecodeObject([]byte(data)),
		UpdatedAt: parseTime(updatedAt),
	}, nil
}

// ReplaceWorld overwrites the singleton snapshot row. INSERT OR REPLACE on
// the fixed id is a single atomic statement, so there is never a window
// with zero rows.
func (s *Storage) ReplaceWorld(ctx context.Context, snapshot *model.WorldSnapshot) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO world_state (id, data, updated_at) VALUES (1, ?, ?)`,
		string(snapshot.Data.Encode()),
		formatTime(snapshot.UpdatedAt),
	); err != nil {
		return fmt.Errorf("replace world: %w", err)
	}
	return nil
}

// Settings operations

func (s *Storage) GetSettingValues(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM game_settings`)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return values, nil
}

func (s *Storage) PutSettingValues(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin put settings: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range values {
		if _, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO game_settings (key, value) VALUES (?, ?)`,
			key, value,
		); err != nil {
			return fmt.Errorf("put setting %s: %w", key, err)
		}
	}

	return tx.Commit()
}

// Stats

func (s *Storage) Stats(ctx context.Context, activeSince time.Time) (model.Stats, error) {
	var stats model.Stats
	queries := []struct {
		query string
		args  []any
		dst   *int
	}{
		{`SELECT COUNT(*) FROM accounts WHERE is_admin = 0`, nil, &stats.TotalPlayers},
		{`SELECT COUNT(DISTINCT account_id) FROM sessions`, nil, &stats.ActiveSessions},
		{`SELECT COUNT(*) FROM players WHERE last_activity > ?`,
			[]any{formatTime(activeSince)}, &stats.RecentlyActive},
		{`SELECT COUNT(*) FROM sessions`, nil, &stats.TotalConnections},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dst); err != nil {
			return model.Stats{}, fmt.Errorf("stats: %w", err)
		}
	}
	return stats, nil
}
