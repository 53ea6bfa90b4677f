package leaderboarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new leaderboard repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// SaveSnapshot inserts a new snapshot row.
func (r *Impl) SaveSnapshot(ctx context.Context, db bun.IDB, snapshot *Snapshot) error {
	db = r.resolveDB(db)
	if _, err := db.NewInsert().Model(snapshot).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to save leaderboard snapshot: %w", err)
	}
	return nil
}

// GetLatestSnapshot returns the newest snapshot for a period key.
func (r *Impl) GetLatestSnapshot(ctx context.Context, db bun.IDB, periodKey string) (*Snapshot, error) {
	db = r.resolveDB(db)
	snapshot := new(Snapshot)
	err := db.NewSelect().
		Model(snapshot).
		Where("period_key = ?", periodKey).
		OrderExpr("fetched_at DESC, id DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest leaderboard snapshot: %w", err)
	}
	return snapshot, nil
}

// DeleteSnapshotsBefore removes snapshots fetched before cutoff.
func (r *Impl) DeleteSnapshotsBefore(ctx context.Context, db bun.IDB, cutoff time.Time) (int64, error) {
	db = r.resolveDB(db)
	res, err := db.NewDelete().
		Model((*Snapshot)(nil)).
		Where("fetched_at < ?", cutoff).
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to prune leaderboard snapshots: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
