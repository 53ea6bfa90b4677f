package giveawaydb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for giveaway persistence.
type Repository interface {
	// EntryExists reports whether email or bcUserID is already registered.
	EntryExists(ctx context.Context, db bun.IDB, email, bcUserID string) (bool, error)

	// CreateEntry inserts a registration. ErrDuplicate is returned on a unique violation.
	CreateEntry(ctx context.Context, db bun.IDB, entry *Entry) error

	// GetEntryByEmail retrieves a registration by its normalized email.
	GetEntryByEmail(ctx context.Context, db bun.IDB, email string) (*Entry, error)

	// SetPrize stores prize for email when none is set yet. ErrPrizeAlreadySet is returned
	// when the entry exists but already has a prize.
	SetPrize(ctx context.Context, db bun.IDB, email, prize string) error

	// ListEntries returns every registration, newest first.
	ListEntries(ctx context.Context, db bun.IDB) ([]Entry, error)

	// ListContent returns the blocks of one type, oldest first.
	ListContent(ctx context.Context, db bun.IDB, contentType string) ([]Content, error)

	// CreateContent inserts a block.
	CreateContent(ctx context.Context, db bun.IDB, content *Content) error

	// DeleteContent removes a block.
	DeleteContent(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
