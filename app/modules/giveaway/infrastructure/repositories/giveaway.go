package giveawaydb

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

// NewRepository creates a new giveaway repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

// resolveDB returns the provided db handle, falling back to the repository's
// default connection if db is nil.
func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// EntryExists reports whether email or bcUserID is already registered.
func (r *Impl) EntryExists(ctx context.Context, db bun.IDB, email, bcUserID string) (bool, error) {
	db = r.resolveDB(db)
	exists, err := db.NewSelect().
		Model((*Entry)(nil)).
		WhereOr("email = ?", email).
		WhereOr("bc_user_id = ?", bcUserID).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check giveaway entry: %w", err)
	}
	return exists, nil
}

// CreateEntry inserts a registration.
func (r *Impl) CreateEntry(ctx context.Context, db bun.IDB, entry *Entry) error {
	db = r.resolveDB(db)
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.EnteredAt.IsZero() {
		entry.EnteredAt = time.Now().UTC()
	}
	_, err := db.NewInsert().Model(entry).Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to create giveaway entry: %w", err)
	}
	return nil
}

// GetEntryByEmail retrieves a registration by email.
func (r *Impl) GetEntryByEmail(ctx context.Context, db bun.IDB, email string) (*Entry, error) {
	db = r.resolveDB(db)
	entry := new(Entry)
	err := db.NewSelect().
		Model(entry).
		Where("email = ?", email).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get giveaway entry: %w", err)
	}
	return entry, nil
}

// SetPrize stores prize for email when none is recorded yet.
func (r *Impl) SetPrize(ctx context.Context, db bun.IDB, email, prize string) error {
	db = r.resolveDB(db)
	result, err := db.NewUpdate().
		Model((*Entry)(nil)).
		Set("prize = ?", prize).
		Where("email = ?", email).
		Where("prize IS NULL").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record prize: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 1 {
		return nil
	}

	// Nothing updated: either the entry is missing or it has already spun.
	if _, err := r.GetEntryByEmail(ctx, db, email); err != nil {
		return err
	}
	return ErrPrizeAlreadySet
}

// ListEntries returns every registration, newest first.
func (r *Impl) ListEntries(ctx context.Context, db bun.IDB) ([]Entry, error) {
	db = r.resolveDB(db)
	var entries []Entry
	err := db.NewSelect().
		Model(&entries).
		OrderExpr("entered_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list giveaway entries: %w", err)
	}
	return entries, nil
}

// ListContent returns the blocks of one type, oldest first.
func (r *Impl) ListContent(ctx context.Context, db bun.IDB, contentType string) ([]Content, error) {
	db = r.resolveDB(db)
	var content []Content
	err := db.NewSelect().
		Model(&content).
		Where("type = ?", contentType).
		OrderExpr("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list giveaway content: %w", err)
	}
	return content, nil
}

// CreateContent inserts a block.
func (r *Impl) CreateContent(ctx context.Context, db bun.IDB, content *Content) error {
	db = r.resolveDB(db)
	if content.ID == uuid.Nil {
		content.ID = uuid.New()
	}
	now := time.Now().UTC()
	content.CreatedAt = now
	content.UpdatedAt = now
	if _, err := db.NewInsert().Model(content).Exec(ctx); err != nil {
		return fmt.Errorf("failed to create giveaway content: %w", err)
	}
	return nil
}

// DeleteContent removes a block.
func (r *Impl) DeleteContent(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	db = r.resolveDB(db)
	result, err := db.NewDelete().
		Model((*Content)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete giveaway content: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}
