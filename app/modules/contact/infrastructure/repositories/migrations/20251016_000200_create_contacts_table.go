package contactmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating contacts table...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS contacts (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					first_name TEXT NOT NULL,
					last_name TEXT NOT NULL,
					email TEXT NOT NULL,
					phone TEXT NOT NULL DEFAULT '',
					message TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_contacts_created_at ON contacts(created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create contacts table: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping contacts table...")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS contacts;`)
		return err
	})
}
