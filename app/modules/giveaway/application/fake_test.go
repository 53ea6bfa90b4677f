package giveawayservice

import (
	"context"

	"github.com/google/uuid"
	giveawaydb "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Giveaway Repo
// ------------------------

type FakeGiveawayRepo struct {
	trace []string

	EntryExistsFunc     func(ctx context.Context, db bun.IDB, email, bcUserID string) (bool, error)
	CreateEntryFunc     func(ctx context.Context, db bun.IDB, entry *giveawaydb.Entry) error
	GetEntryByEmailFunc func(ctx context.Context, db bun.IDB, email string) (*giveawaydb.Entry, error)
	SetPrizeFunc        func(ctx context.Context, db bun.IDB, email, prize string) error
	ListEntriesFunc     func(ctx context.Context, db bun.IDB) ([]giveawaydb.Entry, error)
	ListContentFunc     func(ctx context.Context, db bun.IDB, contentType string) ([]giveawaydb.Content, error)
	CreateContentFunc   func(ctx context.Context, db bun.IDB, content *giveawaydb.Content) error
	DeleteContentFunc   func(ctx context.Context, db bun.IDB, id uuid.UUID) error
}

func NewFakeGiveawayRepo() *FakeGiveawayRepo {
	return &FakeGiveawayRepo{trace: []string{}}
}

func (f *FakeGiveawayRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeGiveawayRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeGiveawayRepo) EntryExists(ctx context.Context, db bun.IDB, email, bcUserID string) (bool, error) {
	f.record("EntryExists")
	if f.EntryExistsFunc != nil {
		return f.EntryExistsFunc(ctx, db, email, bcUserID)
	}
	return false, nil
}

func (f *FakeGiveawayRepo) CreateEntry(ctx context.Context, db bun.IDB, entry *giveawaydb.Entry) error {
	f.record("CreateEntry")
	if f.CreateEntryFunc != nil {
		return f.CreateEntryFunc(ctx, db, entry)
	}
	return nil
}

func (f *FakeGiveawayRepo) GetEntryByEmail(ctx context.Context, db bun.IDB, email string) (*giveawaydb.Entry, error) {
	f.record("GetEntryByEmail")
	if f.GetEntryByEmailFunc != nil {
		return f.GetEntryByEmailFunc(ctx, db, email)
	}
	return nil, giveawaydb.ErrNotFound
}

func (f *FakeGiveawayRepo) SetPrize(ctx context.Context, db bun.IDB, email, prize string) error {
	f.record("SetPrize")
	if f.SetPrizeFunc != nil {
		return f.SetPrizeFunc(ctx, db, email, prize)
	}
	return nil
}

func (f *FakeGiveawayRepo) ListEntries(ctx context.Context, db bun.IDB) ([]giveawaydb.Entry, error) {
	f.record("ListEntries")
	if f.ListEntriesFunc != nil {
		return f.ListEntriesFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeGiveawayRepo) ListContent(ctx context.Context, db bun.IDB, contentType string) ([]giveawaydb.Content, error) {
	f.record("ListContent")
	if f.ListContentFunc != nil {
		return f.ListContentFunc(ctx, db, contentType)
	}
	return nil, nil
}

func (f *FakeGiveawayRepo) CreateContent(ctx context.Context, db bun.IDB, content *giveawaydb.Content) error {
	f.record("CreateContent")
	if f.CreateContentFunc != nil {
		return f.CreateContentFunc(ctx, db, content)
	}
	return nil
}

func (f *FakeGiveawayRepo) DeleteContent(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteContent")
	if f.DeleteContentFunc != nil {
		return f.DeleteContentFunc(ctx, db, id)
	}
	return nil
}

var _ giveawaydb.Repository = (*FakeGiveawayRepo)(nil)
