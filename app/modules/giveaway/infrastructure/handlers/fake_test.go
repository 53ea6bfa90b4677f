package giveawayhandlers

import (
	"context"

	"github.com/google/uuid"
	giveawayservice "github.com/sh4ner/streamerpulse/app/modules/giveaway/application"
	giveawaydomain "github.com/sh4ner/streamerpulse/app/modules/giveaway/domain"
	giveawaydb "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories"
)

// ------------------------
// Fake Service
// ------------------------

type FakeService struct {
	SubmitEntryFunc   func(ctx context.Context, sub giveawaydomain.Submission) (*giveawaydb.Entry, error)
	RecordSpinFunc    func(ctx context.Context, spin giveawaydomain.SpinResult) (string, error)
	ListContentFunc   func(ctx context.Context, contentType string) ([]giveawayservice.ContentItem, error)
	ListEntriesFunc   func(ctx context.Context) ([]giveawaydb.Entry, error)
	ExportEntriesFunc func(ctx context.Context) ([]byte, error)
	CreateContentFunc func(ctx context.Context, in giveawaydomain.ContentInput) (*giveawaydb.Content, error)
	DeleteContentFunc func(ctx context.Context, id uuid.UUID) error
}

func (f *FakeService) SubmitEntry(ctx context.Context, sub giveawaydomain.Submission) (*giveawaydb.Entry, error) {
	if f.SubmitEntryFunc != nil {
		return f.SubmitEntryFunc(ctx, sub)
	}
	return &giveawaydb.Entry{}, nil
}

func (f *FakeService) RecordSpin(ctx context.Context, spin giveawaydomain.SpinResult) (string, error) {
	if f.RecordSpinFunc != nil {
		return f.RecordSpinFunc(ctx, spin)
	}
	return spin.Prize, nil
}

func (f *FakeService) ListContent(ctx context.Context, contentType string) ([]giveawayservice.ContentItem, error) {
	if f.ListContentFunc != nil {
		return f.ListContentFunc(ctx, contentType)
	}
	return []giveawayservice.ContentItem{}, nil
}

func (f *FakeService) ListEntries(ctx context.Context) ([]giveawaydb.Entry, error) {
	if f.ListEntriesFunc != nil {
		return f.ListEntriesFunc(ctx)
	}
	return nil, nil
}

func (f *FakeService) ExportEntries(ctx context.Context) ([]byte, error) {
	if f.ExportEntriesFunc != nil {
		return f.ExportEntriesFunc(ctx)
	}
	return []byte("PK"), nil
}

func (f *FakeService) CreateContent(ctx context.Context, in giveawaydomain.ContentInput) (*giveawaydb.Content, error) {
	if f.CreateContentFunc != nil {
		return f.CreateContentFunc(ctx, in)
	}
	return &giveawaydb.Content{Type: in.Type, Title: in.Title}, nil
}

func (f *FakeService) DeleteContent(ctx context.Context, id uuid.UUID) error {
	if f.DeleteContentFunc != nil {
		return f.DeleteContentFunc(ctx, id)
	}
	return nil
}

var _ giveawayservice.Service = (*FakeService)(nil)
