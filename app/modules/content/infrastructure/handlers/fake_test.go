package contenthandlers

import (
	"context"

	"github.com/google/uuid"
	contentservice "github.com/sh4ner/streamerpulse/app/modules/content/application"
	contentdomain "github.com/sh4ner/streamerpulse/app/modules/content/domain"
	contentdb "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories"
)

// FakeService returns zero values unless a Func is set.
type FakeService struct {
	ListNewsFunc            func(ctx context.Context) ([]contentdb.News, error)
	CreateNewsFunc          func(ctx context.Context, in contentdomain.NewsInput) (*contentdb.News, error)
	DeleteNewsFunc          func(ctx context.Context, id uuid.UUID) error
	ListReviewsFunc         func(ctx context.Context, reviewType string) ([]contentdb.Review, error)
	CreateReviewFunc        func(ctx context.Context, in contentdomain.ReviewInput) (*contentdb.Review, error)
	UpdateReviewFunc        func(ctx context.Context, id uuid.UUID, in contentdomain.ReviewInput) (*contentdb.Review, error)
	DeleteReviewFunc        func(ctx context.Context, id uuid.UUID) error
	ListScheduleFunc        func(ctx context.Context) ([]contentdb.ScheduleEvent, error)
	CreateScheduleEventFunc func(ctx context.Context, in contentdomain.ScheduleInput) (*contentdb.ScheduleEvent, error)
	DeleteScheduleEventFunc func(ctx context.Context, id uuid.UUID) error
	ListClipsFunc           func(ctx context.Context, kind contentdomain.ClipKind) ([]contentdb.Clip, error)
	CreateClipFunc          func(ctx context.Context, kind contentdomain.ClipKind, in contentdomain.ClipInput) (*contentdb.Clip, error)
	DeleteClipFunc          func(ctx context.Context, kind contentdomain.ClipKind, id uuid.UUID) error
}

var _ contentservice.Service = (*FakeService)(nil)

func (f *FakeService) ListNews(ctx context.Context) ([]contentdb.News, error) {
	if f.ListNewsFunc != nil {
		return f.ListNewsFunc(ctx)
	}
	return []contentdb.News{}, nil
}

func (f *FakeService) CreateNews(ctx context.Context, in contentdomain.NewsInput) (*contentdb.News, error) {
	if f.CreateNewsFunc != nil {
		return f.CreateNewsFunc(ctx, in)
	}
	return &contentdb.News{Text: in.Text}, nil
}

func (f *FakeService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	if f.DeleteNewsFunc != nil {
		return f.DeleteNewsFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) ListReviews(ctx context.Context, reviewType string) ([]contentdb.Review, error) {
	if f.ListReviewsFunc != nil {
		return f.ListReviewsFunc(ctx, reviewType)
	}
	return []contentdb.Review{}, nil
}

func (f *FakeService) CreateReview(ctx context.Context, in contentdomain.ReviewInput) (*contentdb.Review, error) {
	if f.CreateReviewFunc != nil {
		return f.CreateReviewFunc(ctx, in)
	}
	return &contentdb.Review{Title: in.Title}, nil
}

func (f *FakeService) UpdateReview(ctx context.Context, id uuid.UUID, in contentdomain.ReviewInput) (*contentdb.Review, error) {
	if f.UpdateReviewFunc != nil {
		return f.UpdateReviewFunc(ctx, id, in)
	}
	return &contentdb.Review{ID: id, Title: in.Title}, nil
}

func (f *FakeService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	if f.DeleteReviewFunc != nil {
		return f.DeleteReviewFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) ListSchedule(ctx context.Context) ([]contentdb.ScheduleEvent, error) {
	if f.ListScheduleFunc != nil {
		return f.ListScheduleFunc(ctx)
	}
	return []contentdb.ScheduleEvent{}, nil
}

func (f *FakeService) CreateScheduleEvent(ctx context.Context, in contentdomain.ScheduleInput) (*contentdb.ScheduleEvent, error) {
	if f.CreateScheduleEventFunc != nil {
		return f.CreateScheduleEventFunc(ctx, in)
	}
	return &contentdb.ScheduleEvent{Title: in.Title}, nil
}

func (f *FakeService) DeleteScheduleEvent(ctx context.Context, id uuid.UUID) error {
	if f.DeleteScheduleEventFunc != nil {
		return f.DeleteScheduleEventFunc(ctx, id)
	}
	return nil
}

func (f *FakeService) ListClips(ctx context.Context, kind contentdomain.ClipKind) ([]contentdb.Clip, error) {
	if f.ListClipsFunc != nil {
		return f.ListClipsFunc(ctx, kind)
	}
	return []contentdb.Clip{}, nil
}

func (f *FakeService) CreateClip(ctx context.Context, kind contentdomain.ClipKind, in contentdomain.ClipInput) (*contentdb.Clip, error) {
	if f.CreateClipFunc != nil {
		return f.CreateClipFunc(ctx, kind, in)
	}
	return &contentdb.Clip{Kind: string(kind)}, nil
}

func (f *FakeService) DeleteClip(ctx context.Context, kind contentdomain.ClipKind, id uuid.UUID) error {
	if f.DeleteClipFunc != nil {
		return f.DeleteClipFunc(ctx, kind, id)
	}
	return nil
}
