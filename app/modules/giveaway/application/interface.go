package giveawayservice

import (
	"context"

	"github.com/google/uuid"
	giveawaydomain "github.com/sh4ner/streamerpulse/app/modules/giveaway/domain"
	giveawaydb "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories"
)

// ContentItem is the public view of a giveaway content block.
type ContentItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
}

// Service defines the giveaway use cases.
type Service interface {
	SubmitEntry(ctx context.Context, sub giveawaydomain.Submission) (*giveawaydb.Entry, error)
	RecordSpin(ctx context.Context, spin giveawaydomain.SpinResult) (string, error)
	ListContent(ctx context.Context, contentType string) ([]ContentItem, error)
	ListEntries(ctx context.Context) ([]giveawaydb.Entry, error)
	ExportEntries(ctx context.Context) ([]byte, error)
	CreateContent(ctx context.Context, in giveawaydomain.ContentInput) (*giveawaydb.Content, error)
	DeleteContent(ctx context.Context, id uuid.UUID) error
}
