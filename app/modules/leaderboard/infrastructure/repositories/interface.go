package leaderboarddb

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Repository defines the contract for leaderboard snapshot persistence.
type Repository interface {
	// SaveSnapshot inserts a new snapshot row.
	SaveSnapshot(ctx context.Context, db bun.IDB, snapshot *Snapshot) error

	// GetLatestSnapshot returns the newest snapshot for a period key.
	// Returns ErrNotFound when none exists.
	GetLatestSnapshot(ctx context.Context, db bun.IDB, periodKey string) (*Snapshot, error)

	// DeleteSnapshotsBefore removes snapshots fetched before cutoff and returns the count.
	DeleteSnapshotsBefore(ctx context.Context, db bun.IDB, cutoff time.Time) (int64, error)
}
