package leaderboardmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating leaderboard_snapshots table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS leaderboard_snapshots (
					id BIGSERIAL PRIMARY KEY,
					period_key TEXT NOT NULL,
					period_start TIMESTAMPTZ NOT NULL,
					period_end TIMESTAMPTZ NOT NULL,
					tier TEXT NOT NULL,
					entries JSONB NOT NULL,
					fetched_at TIMESTAMPTZ NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_leaderboard_snapshots_period_fetched
					ON leaderboard_snapshots (period_key, fetched_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create leaderboard_snapshots table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping leaderboard_snapshots table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS leaderboard_snapshots;`); err != nil {
			return fmt.Errorf("failed to drop leaderboard_snapshots table: %w", err)
		}
		return nil
	})
}
