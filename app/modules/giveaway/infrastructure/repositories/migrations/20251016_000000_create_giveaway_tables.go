package giveawaymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating giveaway_entries and giveaway_content tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS giveaway_entries (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					email TEXT NOT NULL,
					bc_username TEXT NOT NULL,
					bc_user_id TEXT NOT NULL,
					deposit_amount NUMERIC(12,2) NOT NULL DEFAULT 20 CHECK (deposit_amount >= 20),
					prize TEXT,
					entered_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS uq_giveaway_entries_email ON giveaway_entries(email);
				CREATE UNIQUE INDEX IF NOT EXISTS uq_giveaway_entries_bc_user_id ON giveaway_entries(bc_user_id);
				CREATE INDEX IF NOT EXISTS idx_giveaway_entries_entered_at ON giveaway_entries(entered_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create giveaway_entries table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS giveaway_content (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					type TEXT NOT NULL CHECK (type IN ('rewards', 'rules')),
					title TEXT NOT NULL,
					description TEXT NOT NULL,
					image_url TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_giveaway_content_type ON giveaway_content(type, created_at);
			`); err != nil {
				return fmt.Errorf("failed to create giveaway_content table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping giveaway tables...")
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS giveaway_content;
			DROP TABLE IF EXISTS giveaway_entries;
		`)
		return err
	})
}
