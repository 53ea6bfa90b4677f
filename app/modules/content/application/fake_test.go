package contentservice

import (
	"context"

	"github.com/google/uuid"
	contentdb "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories"
	mediaservice "github.com/sh4ner/streamerpulse/app/modules/media/application"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Content Repo
// ------------------------

type FakeContentRepo struct {
	trace []string

	ListNewsFunc            func(ctx context.Context, db bun.IDB) ([]contentdb.News, error)
	CreateNewsFunc          func(ctx context.Context, db bun.IDB, n *contentdb.News) error
	DeleteNewsFunc          func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	ListReviewsFunc         func(ctx context.Context, db bun.IDB, reviewType string, limit int) ([]contentdb.Review, error)
	GetReviewFunc           func(ctx context.Context, db bun.IDB, id uuid.UUID) (*contentdb.Review, error)
	CreateReviewFunc        func(ctx context.Context, db bun.IDB, r *contentdb.Review) error
	UpdateReviewFunc        func(ctx context.Context, db bun.IDB, r *contentdb.Review) error
	DeleteReviewFunc        func(ctx context.Context, db bun.IDB, id uuid.UUID) (*contentdb.Review, error)
	ListScheduleFunc        func(ctx context.Context, db bun.IDB) ([]contentdb.ScheduleEvent, error)
	CreateScheduleEventFunc func(ctx context.Context, db bun.IDB, e *contentdb.ScheduleEvent) error
	DeleteScheduleEventFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) error
	ListClipsFunc           func(ctx context.Context, db bun.IDB, kind string) ([]contentdb.Clip, error)
	CreateClipFunc          func(ctx context.Context, db bun.IDB, c *contentdb.Clip) error
	DeleteClipFunc          func(ctx context.Context, db bun.IDB, kind string, id uuid.UUID) (*contentdb.Clip, error)
}

func NewFakeContentRepo() *FakeContentRepo {
	return &FakeContentRepo{trace: []string{}}
}

func (f *FakeContentRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeContentRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeContentRepo) ListNews(ctx context.Context, db bun.IDB) ([]contentdb.News, error) {
	f.record("ListNews")
	if f.ListNewsFunc != nil {
		return f.ListNewsFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeContentRepo) CreateNews(ctx context.Context, db bun.IDB, n *contentdb.News) error {
	f.record("CreateNews")
	if f.CreateNewsFunc != nil {
		return f.CreateNewsFunc(ctx, db, n)
	}
	return nil
}

func (f *FakeContentRepo) DeleteNews(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteNews")
	if f.DeleteNewsFunc != nil {
		return f.DeleteNewsFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeContentRepo) ListReviews(ctx context.Context, db bun.IDB, reviewType string, limit int) ([]contentdb.Review, error) {
	f.record("ListReviews")
	if f.ListReviewsFunc != nil {
		return f.ListReviewsFunc(ctx, db, reviewType, limit)
	}
	return nil, nil
}

func (f *FakeContentRepo) GetReview(ctx context.Context, db bun.IDB, id uuid.UUID) (*contentdb.Review, error) {
	f.record("GetReview")
	if f.GetReviewFunc != nil {
		return f.GetReviewFunc(ctx, db, id)
	}
	return nil, contentdb.ErrNotFound
}

func (f *FakeContentRepo) CreateReview(ctx context.Context, db bun.IDB, r *contentdb.Review) error {
	f.record("CreateReview")
	if f.CreateReviewFunc != nil {
		return f.CreateReviewFunc(ctx, db, r)
	}
	return nil
}

func (f *FakeContentRepo) UpdateReview(ctx context.Context, db bun.IDB, r *contentdb.Review) error {
	f.record("UpdateReview")
	if f.UpdateReviewFunc != nil {
		return f.UpdateReviewFunc(ctx, db, r)
	}
	return nil
}

func (f *FakeContentRepo) DeleteReview(ctx context.Context, db bun.IDB, id uuid.UUID) (*contentdb.Review, error) {
	f.record("DeleteReview")
	if f.DeleteReviewFunc != nil {
		return f.DeleteReviewFunc(ctx, db, id)
	}
	return &contentdb.Review{ID: id}, nil
}

func (f *FakeContentRepo) ListSchedule(ctx context.Context, db bun.IDB) ([]contentdb.ScheduleEvent, error) {
	f.record("ListSchedule")
	if f.ListScheduleFunc != nil {
		return f.ListScheduleFunc(ctx, db)
	}
	return nil, nil
}

func (f *FakeContentRepo) CreateScheduleEvent(ctx context.Context, db bun.IDB, e *contentdb.ScheduleEvent) error {
	f.record("CreateScheduleEvent")
	if f.CreateScheduleEventFunc != nil {
		return f.CreateScheduleEventFunc(ctx, db, e)
	}
	return nil
}

func (f *FakeContentRepo) DeleteScheduleEvent(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteScheduleEvent")
	if f.DeleteScheduleEventFunc != nil {
		return f.DeleteScheduleEventFunc(ctx, db, id)
	}
	return nil
}

func (f *FakeContentRepo) ListClips(ctx context.Context, db bun.IDB, kind string) ([]contentdb.Clip, error) {
	f.record("ListClips")
	if f.ListClipsFunc != nil {
		return f.ListClipsFunc(ctx, db, kind)
	}
	return nil, nil
}

func (f *FakeContentRepo) CreateClip(ctx context.Context, db bun.IDB, c *contentdb.Clip) error {
	f.record("CreateClip")
	if f.CreateClipFunc != nil {
		return f.CreateClipFunc(ctx, db, c)
	}
	return nil
}

func (f *FakeContentRepo) DeleteClip(ctx context.Context, db bun.IDB, kind string, id uuid.UUID) (*contentdb.Clip, error) {
	f.record("DeleteClip")
	if f.DeleteClipFunc != nil {
		return f.DeleteClipFunc(ctx, db, kind, id)
	}
	return &contentdb.Clip{ID: id, Kind: kind}, nil
}

var _ contentdb.Repository = (*FakeContentRepo)(nil)

// ------------------------
// Fake Images
// ------------------------

type FakeImages struct {
	UploadImageFunc func(ctx context.Context, dataURI, sub string) (*mediaservice.Upload, error)
	Deleted         []string
}

func (f *FakeImages) UploadImage(ctx context.Context, dataURI, sub string) (*mediaservice.Upload, error) {
	if f.UploadImageFunc != nil {
		return f.UploadImageFunc(ctx, dataURI, sub)
	}
	return &mediaservice.Upload{URL: "https://res.example/streamerpulse/" + sub + "/new.png", PublicID: "streamerpulse/" + sub + "/new"}, nil
}

func (f *FakeImages) DeleteImage(ctx context.Context, publicID, reason string) {
	if publicID != "" {
		f.Deleted = append(f.Deleted, publicID)
	}
}
