package contentservice

import (
	"context"

	"github.com/google/uuid"
	contentdomain "github.com/sh4ner/streamerpulse/app/modules/content/domain"
	contentdb "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories"
	mediaservice "github.com/sh4ner/streamerpulse/app/modules/media/application"
)

// Images is the part of the media service content needs.
type Images interface {
	UploadImage(ctx context.Context, dataURI, sub string) (*mediaservice.Upload, error)
	DeleteImage(ctx context.Context, publicID, reason string)
}

// Service defines the contract for site content operations.
type Service interface {
	ListNews(ctx context.Context) ([]contentdb.News, error)
	CreateNews(ctx context.Context, in contentdomain.NewsInput) (*contentdb.News, error)
	DeleteNews(ctx context.Context, id uuid.UUID) error

	ListReviews(ctx context.Context, reviewType string) ([]contentdb.Review, error)
	CreateReview(ctx context.Context, in contentdomain.ReviewInput) (*contentdb.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, in contentdomain.ReviewInput) (*contentdb.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error

	ListSchedule(ctx context.Context) ([]contentdb.ScheduleEvent, error)
	CreateScheduleEvent(ctx context.Context, in contentdomain.ScheduleInput) (*contentdb.ScheduleEvent, error)
	DeleteScheduleEvent(ctx context.Context, id uuid.UUID) error

	ListClips(ctx context.Context, kind contentdomain.ClipKind) ([]contentdb.Clip, error)
	CreateClip(ctx context.Context, kind contentdomain.ClipKind, in contentdomain.ClipInput) (*contentdb.Clip, error)
	DeleteClip(ctx context.Context, kind contentdomain.ClipKind, id uuid.UUID) error
}
