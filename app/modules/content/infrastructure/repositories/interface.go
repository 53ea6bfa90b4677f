package contentdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository persists site content. Every method accepts an optional bun.IDB so callers
// can run it inside a transaction; nil uses the repository connection.
type Repository interface {
	ListNews(ctx context.Context, db bun.IDB) ([]News, error)
	CreateNews(ctx context.Context, db bun.IDB, n *News) error
	DeleteNews(ctx context.Context, db bun.IDB, id uuid.UUID) error

	ListReviews(ctx context.Context, db bun.IDB, reviewType string, limit int) ([]Review, error)
	GetReview(ctx context.Context, db bun.IDB, id uuid.UUID) (*Review, error)
	CreateReview(ctx context.Context, db bun.IDB, r *Review) error
	UpdateReview(ctx context.Context, db bun.IDB, r *Review) error
	DeleteReview(ctx context.Context, db bun.IDB, id uuid.UUID) (*Review, error)

	ListSchedule(ctx context.Context, db bun.IDB) ([]ScheduleEvent, error)
	CreateScheduleEvent(ctx context.Context, db bun.IDB, e *ScheduleEvent) error
	DeleteScheduleEvent(ctx context.Context, db bun.IDB, id uuid.UUID) error

	ListClips(ctx context.Context, db bun.IDB, kind string) ([]Clip, error)
	CreateClip(ctx context.Context, db bun.IDB, c *Clip) error
	// DeleteClip removes and returns the clip so its image can be cleaned up.
	DeleteClip(ctx context.Context, db bun.IDB, kind string, id uuid.UUID) (*Clip, error)
}
