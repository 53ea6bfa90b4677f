package trackingmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating visitors and link_clicks tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS visitors (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					session_id TEXT NOT NULL,
					timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_visitors_timestamp ON visitors(timestamp DESC);
			`); err != nil {
				return fmt.Errorf("failed to create visitors table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS link_clicks (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					url TEXT NOT NULL,
					timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_link_clicks_timestamp ON link_clicks(timestamp DESC);
			`); err != nil {
				return fmt.Errorf("failed to create link_clicks table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping tracking tables...")
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS link_clicks;
			DROP TABLE IF EXISTS visitors;
		`)
		return err
	})
}
