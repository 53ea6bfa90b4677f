package trackingservice

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	trackingdb "github.com/sh4ner/streamerpulse/app/modules/tracking/infrastructure/repositories"
	"go.opentelemetry.io/otel/trace"
)

var (
	ErrSessionIDRequired = errors.New("session ID is required")
	ErrURLRequired       = errors.New("URL is required")
)

// Service records anonymous engagement events.
type Service interface {
	TrackVisitor(ctx context.Context, sessionID string) error
	TrackLinkClick(ctx context.Context, url string) error
	ListVisitors(ctx context.Context) ([]trackingdb.Visitor, error)
	ListLinkClicks(ctx context.Context) ([]trackingdb.LinkClick, error)
}

// TrackingService implements Service and counts events by kind.
type TrackingService struct {
	repo   trackingdb.Repository
	logger *slog.Logger
	tracer trace.Tracer
	events *prometheus.CounterVec
}

// NewTrackingService registers streamerpulse_tracking_events_total on reg when reg is non-nil.
func NewTrackingService(repo trackingdb.Repository, logger *slog.Logger, tracer trace.Tracer, reg prometheus.Registerer) (*TrackingService, error) {
	events := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "streamerpulse",
		Subsystem: "tracking",
		Name:      "events_total",
		Help:      "Tracked visitor sessions and link clicks.",
	}, []string{"kind"})
	if reg != nil {
		if err := reg.Register(events); err != nil {
			return nil, err
		}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TrackingService{repo: repo, logger: logger, tracer: tracer, events: events}, nil
}

func (s *TrackingService) TrackVisitor(ctx context.Context, sessionID string) error {
	ctx, span := s.tracer.Start(ctx, "TrackingService.TrackVisitor")
	defer span.End()

	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ErrSessionIDRequired
	}
	if err := s.repo.CreateVisitor(ctx, nil, &trackingdb.Visitor{SessionID: sessionID}); err != nil {
		span.RecordError(err)
		return err
	}
	s.events.WithLabelValues("visitor").Inc()
	return nil
}

func (s *TrackingService) TrackLinkClick(ctx context.Context, url string) error {
	ctx, span := s.tracer.Start(ctx, "TrackingService.TrackLinkClick")
	defer span.End()

	url = strings.TrimSpace(url)
	if url == "" {
		return ErrURLRequired
	}
	if err := s.repo.CreateLinkClick(ctx, nil, &trackingdb.LinkClick{URL: url}); err != nil {
		span.RecordError(err)
		return err
	}
	s.events.WithLabelValues("link_click").Inc()
	s.logger.DebugContext(ctx, "Link click tracked", "url", url)
	return nil
}

func (s *TrackingService) ListVisitors(ctx context.Context) ([]trackingdb.Visitor, error) {
	return s.repo.ListVisitors(ctx, nil)
}

func (s *TrackingService) ListLinkClicks(ctx context.Context) ([]trackingdb.LinkClick, error) {
	return s.repo.ListLinkClicks(ctx, nil)
}
