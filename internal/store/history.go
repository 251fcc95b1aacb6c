package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrQuery = errors.New("failed to execute query")

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Refresh is a single recorded refresh outcome. ErrorKind is empty for successful refreshes.
type Refresh struct {
	RefreshID    int64
	PlayerID     uint32
	Name         string
	ReleaseTime  time.Time
	ErrorKind    string
	ErrorCode    int64
	ErrorMessage string
	CreatedOn    time.Time
}

func (r Refresh) Failed() bool {
	return r.ErrorKind != ""
}

type Queries struct {
	db DBTX
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

const recordRefresh = `
INSERT INTO refresh_history (player_id, name, release_time, error_kind, error_code, error_msg, created_on)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING refresh_id`

// RecordRefresh stores a refresh outcome and returns its id.
func (q *Queries) RecordRefresh(ctx context.Context, refresh Refresh) (int64, error) {
	var releaseTime int64
	if !refresh.ReleaseTime.IsZero() {
		releaseTime = refresh.ReleaseTime.Unix()
	}

	createdOn := refresh.CreatedOn
	if createdOn.IsZero() {
		createdOn = time.Now()
	}

	var refreshID int64
	if err := q.db.QueryRowContext(ctx, recordRefresh, int64(refresh.PlayerID), refresh.Name, releaseTime,
		refresh.ErrorKind, refresh.ErrorCode, refresh.ErrorMessage, createdOn.Unix()).Scan(&refreshID); err != nil {
		return 0, errors.Join(err, ErrQuery)
	}

	return refreshID, nil
}

const recentRefreshes = `
SELECT refresh_id, player_id, name, release_time, error_kind, error_code, error_msg, created_on
FROM refresh_history
ORDER BY created_on DESC, refresh_id DESC
LIMIT ?`

// RecentRefreshes returns up to limit refreshes, newest first.
func (q *Queries) RecentRefreshes(ctx context.Context, limit int) ([]Refresh, error) {
	return q.queryRefreshes(ctx, recentRefreshes, limit)
}

const playerRefreshes = `
SELECT refresh_id, player_id, name, release_time, error_kind, error_code, error_msg, created_on
FROM refresh_history
WHERE player_id = ?
ORDER BY created_on DESC, refresh_id DESC
LIMIT ?`

// PlayerRefreshes returns up to limit refreshes of a single player, newest first.
func (q *Queries) PlayerRefreshes(ctx context.Context, playerID uint32, limit int) ([]Refresh, error) {
	return q.queryRefreshes(ctx, playerRefreshes, int64(playerID), limit)
}

const pruneRefreshes = `DELETE FROM refresh_history WHERE created_on < ?`

// PruneRefreshes deletes everything recorded before olderThan, returning the number of rows removed.
func (q *Queries) PruneRefreshes(ctx context.Context, olderThan time.Time) (int64, error) {
	result, err := q.db.ExecContext(ctx, pruneRefreshes, olderThan.Unix())
	if err != nil {
		return 0, errors.Join(err, ErrQuery)
	}

	affected, errAffected := result.RowsAffected()
	if errAffected != nil {
		return 0, errors.Join(errAffected, ErrQuery)
	}

	return affected, nil
}

func (q *Queries) queryRefreshes(ctx context.Context, query string, args ...any) ([]Refresh, error) {
	rows, errRows := q.db.QueryContext(ctx, query, args...)
	if errRows != nil {
		return nil, errors.Join(errRows, ErrQuery)
	}
	defer rows.Close()

	var refreshes []Refresh
	for rows.Next() {
		var (
			refresh     Refresh
			playerID    int64
			releaseTime int64
			createdOn   int64
		)

		if err := rows.Scan(&refresh.RefreshID, &playerID, &refresh.Name, &releaseTime, &refresh.ErrorKind,
			&refresh.ErrorCode, &refresh.ErrorMessage, &createdOn); err != nil {
			return nil, errors.Join(err, ErrQuery)
		}

		refresh.PlayerID = uint32(playerID) //nolint:gosec
		if releaseTime != 0 {
			refresh.ReleaseTime = time.Unix(releaseTime, 0)
		}
		refresh.CreatedOn = time.Unix(createdOn, 0)
		refreshes = append(refreshes, refresh)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Join(err, ErrQuery)
	}

	return refreshes, nil
}
