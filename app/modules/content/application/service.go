package contentservice

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	contentdomain "github.com/sh4ner/streamerpulse/app/modules/content/domain"
	contentdb "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories"
	mediadomain "github.com/sh4ner/streamerpulse/app/modules/media/domain"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// reviewFolder is the media subfolder for inline review images.
const reviewFolder = "reviews"

// ContentService implements the Service interface.
type ContentService struct {
	repo   contentdb.Repository
	images Images
	dates  *contentdomain.DateParser
	logger *slog.Logger
	tracer trace.Tracer
	db     *bun.DB
	now    func() time.Time
}

// NewContentService creates a new ContentService. db may be nil, in which case
// operations run without a transaction.
func NewContentService(repo contentdb.Repository, images Images, logger *slog.Logger, tracer trace.Tracer, db *bun.DB) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		repo:   repo,
		images: images,
		dates:  contentdomain.NewDateParser(),
		logger: logger,
		tracer: tracer,
		db:     db,
		now:    time.Now,
	}
}

func notFound(err error) error {
	if errors.Is(err, contentdb.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

// --- news ---

func (s *ContentService) ListNews(ctx context.Context) ([]contentdb.News, error) {
	return withTelemetry(s, ctx, "ListNews", "", func(ctx context.Context) ([]contentdb.News, error) {
		return s.repo.ListNews(ctx, nil)
	})
}

func (s *ContentService) CreateNews(ctx context.Context, in contentdomain.NewsInput) (*contentdb.News, error) {
	in = in.Normalize()
	return withTelemetry(s, ctx, "CreateNews", "", func(ctx context.Context) (*contentdb.News, error) {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		n := &contentdb.News{Text: in.Text}
		if in.Link != "" {
			link := in.Link
			n.Link = &link
		}
		if err := s.repo.CreateNews(ctx, nil, n); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "News item created", "id", n.ID)
		return n, nil
	})
}

func (s *ContentService) DeleteNews(ctx context.Context, id uuid.UUID) error {
	_, err := withTelemetry(s, ctx, "DeleteNews", id.String(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, notFound(s.repo.DeleteNews(ctx, nil, id))
	})
	return err
}

// --- reviews ---

func (s *ContentService) ListReviews(ctx context.Context, reviewType string) ([]contentdb.Review, error) {
	return withTelemetry(s, ctx, "ListReviews", reviewType, func(ctx context.Context) ([]contentdb.Review, error) {
		rt, err := contentdomain.ParseReviewType(reviewType)
		if err != nil {
			return nil, err
		}
		return s.repo.ListReviews(ctx, nil, string(rt), contentdomain.ReviewListLimit)
	})
}

// resolveImage uploads an inline image and returns its hosted URL and public id.
func (s *ContentService) resolveImage(ctx context.Context, image string) (string, string, error) {
	if !mediadomain.IsDataURI(image) {
		return image, "", nil
	}
	up, err := s.images.UploadImage(ctx, image, reviewFolder)
	if err != nil {
		return "", "", err
	}
	return up.URL, up.PublicID, nil
}

func (s *ContentService) CreateReview(ctx context.Context, in contentdomain.ReviewInput) (*contentdb.Review, error) {
	in = in.Normalize()
	return withTelemetry(s, ctx, "CreateReview", in.Type, func(ctx context.Context) (*contentdb.Review, error) {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		url, publicID, err := s.resolveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}
		rv := &contentdb.Review{
			Type:          in.Type,
			Title:         in.Title,
			Description:   in.Description,
			Image:         url,
			ImagePublicID: publicID,
			Rating:        float64(in.Rating),
		}
		if err := s.repo.CreateReview(ctx, nil, rv); err != nil {
			s.images.DeleteImage(ctx, publicID, "review insert failed")
			return nil, err
		}
		s.logger.InfoContext(ctx, "Review created", "id", rv.ID, "type", rv.Type)
		return rv, nil
	})
}

// UpdateReview replaces every field. A replaced uploaded image is removed from the media host.
func (s *ContentService) UpdateReview(ctx context.Context, id uuid.UUID, in contentdomain.ReviewInput) (*contentdb.Review, error) {
	in = in.Normalize()
	return withTelemetry(s, ctx, "UpdateReview", id.String(), func(ctx context.Context) (*contentdb.Review, error) {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		url, publicID, err := s.resolveImage(ctx, in.Image)
		if err != nil {
			return nil, err
		}

		var rv *contentdb.Review
		var stale string
		err = runInTx(s, ctx, func(ctx context.Context, db bun.IDB) error {
			existing, err := s.repo.GetReview(ctx, db, id)
			if err != nil {
				return err
			}
			if publicID == "" && url == existing.Image {
				publicID = existing.ImagePublicID
			}
			if existing.ImagePublicID != "" && existing.ImagePublicID != publicID {
				stale = existing.ImagePublicID
			}

			existing.Type = in.Type
			existing.Title = in.Title
			existing.Description = in.Description
			existing.Image = url
			existing.ImagePublicID = publicID
			existing.Rating = float64(in.Rating)
			if err := s.repo.UpdateReview(ctx, db, existing); err != nil {
				return err
			}
			rv = existing
			return nil
		})
		if err != nil {
			if publicID != "" && mediadomain.IsDataURI(in.Image) {
				s.images.DeleteImage(ctx, publicID, "review update failed")
			}
			return nil, notFound(err)
		}

		s.images.DeleteImage(ctx, stale, "review image replaced")
		s.logger.InfoContext(ctx, "Review updated", "id", rv.ID)
		return rv, nil
	})
}

func (s *ContentService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	_, err := withTelemetry(s, ctx, "DeleteReview", id.String(), func(ctx context.Context) (struct{}, error) {
		rv, err := s.repo.DeleteReview(ctx, nil, id)
		if err != nil {
			return struct{}{}, notFound(err)
		}
		s.images.DeleteImage(ctx, rv.ImagePublicID, "review deleted")
		return struct{}{}, nil
	})
	return err
}

// --- schedule ---

func (s *ContentService) ListSchedule(ctx context.Context) ([]contentdb.ScheduleEvent, error) {
	return withTelemetry(s, ctx, "ListSchedule", "", func(ctx context.Context) ([]contentdb.ScheduleEvent, error) {
		return s.repo.ListSchedule(ctx, nil)
	})
}

func (s *ContentService) CreateScheduleEvent(ctx context.Context, in contentdomain.ScheduleInput) (*contentdb.ScheduleEvent, error) {
	in = in.Normalize()
	return withTelemetry(s, ctx, "CreateScheduleEvent", in.Title, func(ctx context.Context) (*contentdb.ScheduleEvent, error) {
		if err := in.Validate(); err != nil {
			return nil, err
		}
		date, err := s.dates.Parse(in.Date, in.Timezone, s.now())
		if err != nil {
			return nil, err
		}
		e := &contentdb.ScheduleEvent{Title: in.Title, Date: date, Description: in.Description}
		if err := s.repo.CreateScheduleEvent(ctx, nil, e); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "Event scheduled", "id", e.ID, "date", e.Date)
		return e, nil
	})
}

func (s *ContentService) DeleteScheduleEvent(ctx context.Context, id uuid.UUID) error {
	_, err := withTelemetry(s, ctx, "DeleteScheduleEvent", id.String(), func(ctx context.Context) (struct{}, error) {
		return struct{}{}, notFound(s.repo.DeleteScheduleEvent(ctx, nil, id))
	})
	return err
}

// --- shorts and videos ---

func (s *ContentService) ListClips(ctx context.Context, kind contentdomain.ClipKind) ([]contentdb.Clip, error) {
	return withTelemetry(s, ctx, "ListClips", string(kind), func(ctx context.Context) ([]contentdb.Clip, error) {
		if !kind.IsValid() {
			return nil, contentdomain.ErrInvalidClipKind
		}
		return s.repo.ListClips(ctx, nil, string(kind))
	})
}

func (s *ContentService) CreateClip(ctx context.Context, kind contentdomain.ClipKind, in contentdomain.ClipInput) (*contentdb.Clip, error) {
	in = in.Normalize()
	return withTelemetry(s, ctx, "CreateClip", string(kind), func(ctx context.Context) (*contentdb.Clip, error) {
		if !kind.IsValid() {
			return nil, contentdomain.ErrInvalidClipKind
		}
		if err := in.Validate(); err != nil {
			return nil, err
		}
		c := &contentdb.Clip{
			Kind:          string(kind),
			Title:         in.Title,
			Description:   in.Description,
			Image:         in.Image,
			ImagePublicID: in.ImagePublicID,
			VideoURL:      in.VideoURL,
		}
		if err := s.repo.CreateClip(ctx, nil, c); err != nil {
			return nil, err
		}
		s.logger.InfoContext(ctx, "Clip created", "kind", kind, "id", c.ID)
		return c, nil
	})
}

// DeleteClip removes the row first; image cleanup never blocks the delete.
func (s *ContentService) DeleteClip(ctx context.Context, kind contentdomain.ClipKind, id uuid.UUID) error {
	_, err := withTelemetry(s, ctx, "DeleteClip", id.String(), func(ctx context.Context) (struct{}, error) {
		if !kind.IsValid() {
			return struct{}{}, contentdomain.ErrInvalidClipKind
		}
		c, err := s.repo.DeleteClip(ctx, nil, string(kind), id)
		if err != nil {
			return struct{}{}, notFound(err)
		}
		s.images.DeleteImage(ctx, c.ImagePublicID, string(kind)+" deleted")
		return struct{}{}, nil
	})
	return err
}

// withTelemetry wraps a service operation with tracing and panic recovery.
func withTelemetry[T any](
	s *ContentService,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	var span trace.Span
	if s.tracer != nil {
		ctx, span = s.tracer.Start(ctx, "ContentService."+operationName, trace.WithAttributes(
			attribute.String("operation", operationName),
			attribute.String("identifier", identifier),
		))
	} else {
		span = trace.SpanFromContext(ctx)
	}
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				"operation", operationName,
				"identifier", identifier,
				"error", err,
			)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
	}()

	return op(ctx)
}

// runInTx runs fn inside a transaction when a database handle is configured.
func runInTx(s *ContentService, ctx context.Context, fn func(ctx context.Context, db bun.IDB) error) error {
	if s.db == nil {
		return fn(ctx, nil)
	}
	return s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		return fn(ctx, tx)
	})
}
