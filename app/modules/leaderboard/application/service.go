package leaderboardservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	leaderboardmetrics "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/metrics"
	leaderboarddb "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories"
	"github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/upstream"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service is the leaderboard application API.
type Service interface {
	// GetLeaderboard returns the cached or freshly aggregated leaderboard for a period key.
	GetLeaderboard(ctx context.Context, periodKey string) (Result, error)
	// ClearCache forces every period cache back to COLD.
	ClearCache(ctx context.Context)
	// RefreshAll re-runs aggregation for every tracked period.
	RefreshAll(ctx context.Context)
	// CacheStates reports the state of every tracked period.
	CacheStates() map[string]State
	// LatestSnapshot returns the most recent persisted cycle for a period.
	LatestSnapshot(ctx context.Context, periodKey string) (*leaderboarddb.Snapshot, error)
	// RenderChart draws the period's leaderboard as a PNG bar chart.
	RenderChart(ctx context.Context, periodKey string) ([]byte, error)
	// ProxyPage forwards a single raw page request to the upstream API.
	ProxyPage(ctx context.Context, req upstream.PageRequest) ([]byte, error)
}

// Options configures the LeaderboardService.
type Options struct {
	CacheTTL          time.Duration
	CycleTimeout      time.Duration
	SnapshotRetention time.Duration
	APIURL            string
	Origin            string
	Palette           ChartPalette
}

// LeaderboardService implements Service.
type LeaderboardService struct {
	aggregator *Aggregator
	resolver   leaderboarddomain.PeriodResolver
	repo       leaderboarddb.Repository
	proxy      upstream.Doer
	logger     *slog.Logger
	tracer     trace.Tracer
	metrics    leaderboardmetrics.Metrics
	opts       Options
	now        func() time.Time

	mu     sync.Mutex
	caches map[string]*Cache
}

// NewLeaderboardService creates a new LeaderboardService.
func NewLeaderboardService(
	aggregator *Aggregator,
	resolver leaderboarddomain.PeriodResolver,
	repo leaderboarddb.Repository,
	proxy upstream.Doer,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics leaderboardmetrics.Metrics,
	opts Options,
) *LeaderboardService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = leaderboardmetrics.NewNoop()
	}
	if opts.Palette == (ChartPalette{}) {
		opts.Palette = DefaultPalette()
	}
	return &LeaderboardService{
		aggregator: aggregator,
		resolver:   resolver,
		repo:       repo,
		proxy:      proxy,
		logger:     logger,
		tracer:     tracer,
		metrics:    metrics,
		opts:       opts,
		now:        time.Now,
		caches:     make(map[string]*Cache),
	}
}

// cacheFor returns the cache for a period key, creating it on first use.
func (s *LeaderboardService) cacheFor(periodKey string) (*Cache, error) {
	if _, err := s.resolver.Resolve(periodKey, s.now()); err != nil {
		return nil, err
	}
	if periodKey == "" {
		periodKey = leaderboarddomain.PeriodCurrent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.caches[periodKey]; ok {
		return c, nil
	}
	c := NewCache(func(ctx context.Context) (Result, error) {
		// The window is resolved per load so "current" follows the calendar.
		period, err := s.resolver.Resolve(periodKey, s.now())
		if err != nil {
			return Result{}, err
		}
		return s.aggregator.Run(ctx, period), nil
	}, CacheOptions{
		TTL:         s.opts.CacheTTL,
		LoadTimeout: s.opts.CycleTimeout,
		Now:         func() time.Time { return s.now() },
		Logger:      s.logger,
	})
	s.caches[periodKey] = c
	return c, nil
}

// GetLeaderboard returns the leaderboard for periodKey.
func (s *LeaderboardService) GetLeaderboard(ctx context.Context, periodKey string) (Result, error) {
	if periodKey == "" {
		periodKey = leaderboarddomain.PeriodCurrent
	}
	return withTelemetry(s, ctx, "GetLeaderboard", periodKey, func(ctx context.Context) (Result, error) {
		cache, err := s.cacheFor(periodKey)
		if err != nil {
			return Result{}, err
		}

		state := cache.State()
		result, hit, err := cache.Get(ctx)
		switch {
		case hit:
			s.metrics.RecordCacheRead(ctx, periodKey, "hit")
		case state == StateStale:
			s.metrics.RecordCacheRead(ctx, periodKey, "stale")
		default:
			s.metrics.RecordCacheRead(ctx, periodKey, "miss")
		}
		return result, err
	})
}

// ClearCache forces every period cache back to COLD.
func (s *LeaderboardService) ClearCache(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.caches {
		c.Clear()
	}
	s.logger.InfoContext(ctx, "Leaderboard cache cleared", "periods", len(s.caches))
}

// RefreshAll refreshes the current period and every other tracked period.
func (s *LeaderboardService) RefreshAll(ctx context.Context) {
	// Registers "current" so the first tick warms it before any read.
	if _, err := s.cacheFor(leaderboarddomain.PeriodCurrent); err != nil {
		s.logger.ErrorContext(ctx, "Failed to prepare current period cache", "error", err)
		return
	}

	s.mu.Lock()
	caches := make(map[string]*Cache, len(s.caches))
	for k, c := range s.caches {
		caches[k] = c
	}
	s.mu.Unlock()

	for key, c := range caches {
		if _, err := c.Refresh(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Background refresh failed", "period", key, "error", err)
		}
	}
}

// CacheStates reports the state of every tracked period.
func (s *LeaderboardService) CacheStates() map[string]State {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]State, len(s.caches))
	for k, c := range s.caches {
		out[k] = c.State()
	}
	return out
}

// RunRefreshLoop refreshes on every interval tick until ctx is cancelled. The first
// refresh happens immediately.
func (s *LeaderboardService) RunRefreshLoop(ctx context.Context, interval time.Duration) {
	s.logger.InfoContext(ctx, "Starting leaderboard refresh loop", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.RefreshAll(ctx)
		s.pruneSnapshots(ctx)

		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "Leaderboard refresh loop stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *LeaderboardService) pruneSnapshots(ctx context.Context) {
	if s.repo == nil || s.opts.SnapshotRetention <= 0 {
		return
	}
	n, err := s.repo.DeleteSnapshotsBefore(ctx, nil, s.now().Add(-s.opts.SnapshotRetention))
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to prune leaderboard snapshots", "error", err)
		return
	}
	if n > 0 {
		s.logger.InfoContext(ctx, "Pruned leaderboard snapshots", "deleted", n)
	}
}

// LatestSnapshot returns the most recent persisted cycle for a period.
func (s *LeaderboardService) LatestSnapshot(ctx context.Context, periodKey string) (*leaderboarddb.Snapshot, error) {
	return withTelemetry(s, ctx, "LatestSnapshot", periodKey, func(ctx context.Context) (*leaderboarddb.Snapshot, error) {
		if periodKey == "" {
			periodKey = leaderboarddomain.PeriodCurrent
		}
		if _, err := s.resolver.Resolve(periodKey, s.now()); err != nil {
			return nil, err
		}
		if s.repo == nil {
			return nil, ErrNoSnapshot
		}
		snap, err := s.repo.GetLatestSnapshot(ctx, nil, periodKey)
		if err != nil {
			if errors.Is(err, leaderboarddb.ErrNotFound) {
				return nil, ErrNoSnapshot
			}
			return nil, fmt.Errorf("failed to load snapshot: %w", err)
		}
		return snap, nil
	})
}

// RenderChart draws the period's leaderboard as a PNG bar chart.
func (s *LeaderboardService) RenderChart(ctx context.Context, periodKey string) ([]byte, error) {
	return withTelemetry(s, ctx, "RenderChart", periodKey, func(ctx context.Context) ([]byte, error) {
		result, err := s.GetLeaderboard(ctx, periodKey)
		if err != nil {
			return nil, err
		}
		return GenerateWagerChart(result.Entries, s.opts.Palette)
	})
}

// ProxyPage forwards one raw page request and returns the upstream body.
func (s *LeaderboardService) ProxyPage(ctx context.Context, req upstream.PageRequest) ([]byte, error) {
	return withTelemetry(s, ctx, "ProxyPage", req.InvitationCode, func(ctx context.Context) ([]byte, error) {
		if req.InvitationCode == "" || req.AccessKey == "" || req.BeginTimestamp == 0 || req.EndTimestamp == 0 {
			return nil, ErrProxyFieldsMissing
		}
		if req.PageNo == 0 {
			req.PageNo = 1
		}
		body, err := json.Marshal(req)
		if err != nil {
			return nil, fmt.Errorf("failed to encode proxy request: %w", err)
		}
		header := http.Header{}
		header.Set("Content-Type", "application/json")
		if s.opts.Origin != "" {
			header.Set("Origin", s.opts.Origin)
		}
		resp, err := s.proxy.Fetch(ctx, upstream.Request{Method: http.MethodPost, URL: s.opts.APIURL, Header: header, Body: body})
		if err != nil {
			return nil, err
		}
		return resp.Body, nil
	})
}

// withTelemetry wraps a service operation with tracing and panic recovery.
func withTelemetry[T any](
	s *LeaderboardService,
	ctx context.Context,
	operationName string,
	identifier string,
	op func(ctx context.Context) (T, error),
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
		attribute.String("identifier", identifier),
	))
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
