package contentmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating news, reviews, schedule_events and clips tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS news (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					text TEXT NOT NULL,
					link TEXT,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_news_created_at ON news(created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create news table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS reviews (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					type TEXT NOT NULL CHECK (type IN ('slot', 'casino')),
					title VARCHAR(100) NOT NULL,
					description VARCHAR(1000) NOT NULL,
					image TEXT NOT NULL CHECK (image ~ '^https?://.+$'),
					image_public_id TEXT NOT NULL DEFAULT '',
					rating DOUBLE PRECISION NOT NULL CHECK (rating >= 1 AND rating <= 5),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_reviews_type_created_at ON reviews(type, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create reviews table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS schedule_events (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					title TEXT NOT NULL,
					date TIMESTAMPTZ NOT NULL,
					description TEXT NOT NULL DEFAULT '',
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_schedule_events_date ON schedule_events(date);
			`); err != nil {
				return fmt.Errorf("failed to create schedule_events table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS clips (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					kind TEXT NOT NULL CHECK (kind IN ('short', 'video')),
					title TEXT NOT NULL,
					description TEXT NOT NULL,
					image TEXT NOT NULL,
					image_public_id TEXT NOT NULL,
					video_url TEXT NOT NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE INDEX IF NOT EXISTS idx_clips_kind_created_at ON clips(kind, created_at DESC);
			`); err != nil {
				return fmt.Errorf("failed to create clips table: %w", err)
			}

			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping content tables...")
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS clips;
			DROP TABLE IF EXISTS schedule_events;
			DROP TABLE IF EXISTS reviews;
			DROP TABLE IF EXISTS news;
		`)
		return err
	})
}
