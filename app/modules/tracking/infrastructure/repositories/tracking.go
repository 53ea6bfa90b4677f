package trackingdb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository stores visitor sessions and link clicks.
type Repository interface {
	CreateVisitor(ctx context.Context, db bun.IDB, v *Visitor) error
	ListVisitors(ctx context.Context, db bun.IDB) ([]Visitor, error)
	CreateLinkClick(ctx context.Context, db bun.IDB, c *LinkClick) error
	ListLinkClicks(ctx context.Context, db bun.IDB) ([]LinkClick, error)
}

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateVisitor(ctx context.Context, db bun.IDB, v *Visitor) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now().UTC()
	}
	if _, err := r.resolveDB(db).NewInsert().Model(v).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record visitor: %w", err)
	}
	return nil
}

func (r *Impl) ListVisitors(ctx context.Context, db bun.IDB) ([]Visitor, error) {
	out := []Visitor{}
	if err := r.resolveDB(db).NewSelect().Model(&out).Order("timestamp DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list visitors: %w", err)
	}
	return out, nil
}

func (r *Impl) CreateLinkClick(ctx context.Context, db bun.IDB, c *LinkClick) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Timestamp.IsZero() {
		c.Timestamp = time.Now().UTC()
	}
	if _, err := r.resolveDB(db).NewInsert().Model(c).Exec(ctx); err != nil {
		return fmt.Errorf("failed to record link click: %w", err)
	}
	return nil
}

func (r *Impl) ListLinkClicks(ctx context.Context, db bun.IDB) ([]LinkClick, error) {
	out := []LinkClick{}
	if err := r.resolveDB(db).NewSelect().Model(&out).Order("timestamp DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list link clicks: %w", err)
	}
	return out, nil
}
