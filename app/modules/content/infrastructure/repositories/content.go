package contentdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new content repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// deleted maps a DELETE result onto ErrNotFound. RETURNING queries surface a missing
// row as sql.ErrNoRows instead of zero rows affected.
func deleted(res sql.Result, err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s: %w", what, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// --- news ---

func (r *Impl) ListNews(ctx context.Context, db bun.IDB) ([]News, error) {
	var out []News
	err := r.resolveDB(db).NewSelect().Model(&out).Order("created_at DESC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list news: %w", err)
	}
	return out, nil
}

func (r *Impl) CreateNews(ctx context.Context, db bun.IDB, n *News) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = time.Now().UTC()
	}
	if _, err := r.resolveDB(db).NewInsert().Model(n).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create news: %w", err)
	}
	return nil
}

func (r *Impl) DeleteNews(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().Model((*News)(nil)).Where("id = ?", id).Exec(ctx)
	return deleted(res, err, "news")
}

// --- reviews ---

func (r *Impl) ListReviews(ctx context.Context, db bun.IDB, reviewType string, limit int) ([]Review, error) {
	var out []Review
	q := r.resolveDB(db).NewSelect().Model(&out).
		Where("type = ?", reviewType).
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return out, nil
}

func (r *Impl) GetReview(ctx context.Context, db bun.IDB, id uuid.UUID) (*Review, error) {
	rv := new(Review)
	err := r.resolveDB(db).NewSelect().Model(rv).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return rv, nil
}

func (r *Impl) CreateReview(ctx context.Context, db bun.IDB, rv *Review) error {
	if rv.ID == uuid.Nil {
		rv.ID = uuid.New()
	}
	now := time.Now().UTC()
	if rv.CreatedAt.IsZero() {
		rv.CreatedAt = now
	}
	rv.UpdatedAt = now
	if _, err := r.resolveDB(db).NewInsert().Model(rv).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *Impl) UpdateReview(ctx context.Context, db bun.IDB, rv *Review) error {
	rv.UpdatedAt = time.Now().UTC()
	res, err := r.resolveDB(db).NewUpdate().
		Model(rv).
		Column("type", "title", "description", "image", "image_public_id", "rating", "updated_at").
		WherePK().
		Returning("*").
		Exec(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update review: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) DeleteReview(ctx context.Context, db bun.IDB, id uuid.UUID) (*Review, error) {
	rv := new(Review)
	res, err := r.resolveDB(db).NewDelete().Model(rv).Where("id = ?", id).Returning("*").Exec(ctx)
	if err := deleted(res, err, "review"); err != nil {
		return nil, err
	}
	return rv, nil
}

// --- schedule ---

func (r *Impl) ListSchedule(ctx context.Context, db bun.IDB) ([]ScheduleEvent, error) {
	var out []ScheduleEvent
	err := r.resolveDB(db).NewSelect().Model(&out).Order("date ASC").Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule: %w", err)
	}
	return out, nil
}

func (r *Impl) CreateScheduleEvent(ctx context.Context, db bun.IDB, e *ScheduleEvent) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	if _, err := r.resolveDB(db).NewInsert().Model(e).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create schedule event: %w", err)
	}
	return nil
}

func (r *Impl) DeleteScheduleEvent(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().Model((*ScheduleEvent)(nil)).Where("id = ?", id).Exec(ctx)
	return deleted(res, err, "schedule event")
}

// --- clips ---

func (r *Impl) ListClips(ctx context.Context, db bun.IDB, kind string) ([]Clip, error) {
	var out []Clip
	err := r.resolveDB(db).NewSelect().Model(&out).
		Where("kind = ?", kind).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list %ss: %w", kind, err)
	}
	return out, nil
}

func (r *Impl) CreateClip(ctx context.Context, db bun.IDB, c *Clip) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := r.resolveDB(db).NewInsert().Model(c).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create %s: %w", c.Kind, err)
	}
	return nil
}

func (r *Impl) DeleteClip(ctx context.Context, db bun.IDB, kind string, id uuid.UUID) (*Clip, error) {
	c := new(Clip)
	res, err := r.resolveDB(db).NewDelete().Model(c).
		Where("id = ?", id).
		Where("kind = ?", kind).
		Returning("*").
		Exec(ctx)
	if err := deleted(res, err, kind); err != nil {
		return nil, err
	}
	return c, nil
}
