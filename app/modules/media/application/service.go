package mediaservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"

	mediadomain "github.com/sh4ner/streamerpulse/app/modules/media/domain"
	"github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/cloudinary"
	mediaqueue "github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/queue"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var ErrQueueDisabled = errors.New("media queue is disabled")

// Host is the remote image store.
type Host interface {
	Upload(ctx context.Context, file, folder string) (*cloudinary.UploadResult, error)
	Destroy(ctx context.Context, publicID string) error
}

// Scheduler defers deletions to the job queue.
type Scheduler interface {
	ScheduleDelete(ctx context.Context, publicID, reason string) error
	ListJobs(ctx context.Context, limit int) ([]mediaqueue.JobInfo, error)
}

// Upload is a stored image.
type Upload struct {
	URL      string `json:"url"`
	PublicID string `json:"public_id"`
}

// Service manages images on the media host.
type Service interface {
	// UploadImage validates a data URI and stores it under the configured folder, or a
	// subfolder of it when sub is set.
	UploadImage(ctx context.Context, dataURI, sub string) (*Upload, error)
	// DeleteImage removes an image. Failures are logged, never returned to the caller,
	// since the owning record is already gone.
	DeleteImage(ctx context.Context, publicID, reason string)
	ListJobs(ctx context.Context, limit int) ([]mediaqueue.JobInfo, error)
}

// MediaService implements Service. scheduler may be nil, in which case deletions run
// inline.
type MediaService struct {
	host      Host
	scheduler Scheduler
	folder    string
	logger    *slog.Logger
	tracer    trace.Tracer
}

func NewMediaService(host Host, scheduler Scheduler, folder string, logger *slog.Logger, tracer trace.Tracer) *MediaService {
	return &MediaService{
		host:      host,
		scheduler: scheduler,
		folder:    folder,
		logger:    logger,
		tracer:    tracer,
	}
}

func (s *MediaService) UploadImage(ctx context.Context, dataURI, sub string) (*Upload, error) {
	ctx, span := s.tracer.Start(ctx, "MediaService.UploadImage")
	defer span.End()

	img, err := mediadomain.ParseDataURI(dataURI)
	if err != nil {
		return nil, err
	}

	folder := s.folder
	if sub != "" {
		folder = path.Join(folder, sub)
	}

	span.SetAttributes(
		attribute.String("media.format", img.Format),
		attribute.Int("media.bytes", len(img.Data)),
	)
	s.logger.InfoContext(ctx, "Uploading image", "format", img.Format, "bytes", len(img.Data), "folder", folder)

	res, err := s.host.Upload(ctx, dataURI, folder)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	s.logger.InfoContext(ctx, "Image uploaded", "url", res.URL, "public_id", res.PublicID)
	return &Upload{URL: res.URL, PublicID: res.PublicID}, nil
}

func (s *MediaService) DeleteImage(ctx context.Context, publicID, reason string) {
	if publicID == "" {
		return
	}

	if s.scheduler != nil {
		if err := s.scheduler.ScheduleDelete(ctx, publicID, reason); err == nil {
			return
		}
		// Fall through to an inline attempt when the queue rejects the job.
	}

	if err := s.host.Destroy(ctx, publicID); err != nil {
		s.logger.ErrorContext(ctx, "Failed to delete image", "public_id", publicID, "reason", reason, "error", err)
		return
	}
	s.logger.InfoContext(ctx, "Image deleted", "public_id", publicID, "reason", reason)
}

func (s *MediaService) ListJobs(ctx context.Context, limit int) ([]mediaqueue.JobInfo, error) {
	if s.scheduler == nil {
		return nil, ErrQueueDisabled
	}
	return s.scheduler.ListJobs(ctx, limit)
}
