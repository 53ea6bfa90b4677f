package contactdb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a contact does not exist.
var ErrNotFound = errors.New("contact not found")

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new contact repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) CreateContact(ctx context.Context, db bun.IDB, c *Contact) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	if _, err := r.resolveDB(db).NewInsert().Model(c).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

// ListContacts returns all submissions, newest first.
func (r *Impl) ListContacts(ctx context.Context, db bun.IDB) ([]Contact, error) {
	out := []Contact{}
	if err := r.resolveDB(db).NewSelect().Model(&out).Order("created_at DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	return out, nil
}

func (r *Impl) DeleteContact(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().Model((*Contact)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
