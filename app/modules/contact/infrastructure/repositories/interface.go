package contactdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository stores contact submissions.
type Repository interface {
	CreateContact(ctx context.Context, db bun.IDB, c *Contact) error
	ListContacts(ctx context.Context, db bun.IDB) ([]Contact, error)
	DeleteContact(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
