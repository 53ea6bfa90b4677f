package mediaqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/uptrace/bun"
)

// QueueService defines the media job scheduling contract.
type QueueService interface {
	// ScheduleDelete enqueues removal of an image from the media host.
	ScheduleDelete(ctx context.Context, publicID, reason string) error
	// ListJobs returns the most recent media jobs, newest first.
	ListJobs(ctx context.Context, limit int) ([]JobInfo, error)
	// HealthCheck verifies the queue tables are reachable.
	HealthCheck(ctx context.Context) error
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

var _ QueueService = (*Service)(nil)

// Service handles media job scheduling using River.
type Service struct {
	client  *river.Client[pgx.Tx]
	pool    *pgxpool.Pool
	logger  *slog.Logger
	db      bun.IDB
	metrics Metrics
}

// NewService creates a River client on its own pgx pool. River requires pgx, not database/sql.
func NewService(ctx context.Context, db bun.IDB, logger *slog.Logger, dsn string, maxWorkers int, destroyer Destroyer, metrics Metrics) (*Service, error) {
	ctxLogger := logger.With("component", "river_queue", "queue", QueueName)

	start := time.Now()
	metrics.RecordOperationAttempt(ctx, "initialize_service", "river")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	workers := river.NewWorkers()
	river.AddWorker(workers, NewDeleteWorker(ctxLogger, destroyer, metrics))

	riverClient, err := river.NewClient(riverpgxv5.New(pool), &river.Config{
		Queues: map[string]river.QueueConfig{
			QueueName: {MaxWorkers: maxWorkers},
		},
		Workers: workers,
	})
	if err != nil {
		pool.Close()
		metrics.RecordOperationFailure(ctx, "initialize_service", "river")
		return nil, fmt.Errorf("failed to create River client: %w", err)
	}

	metrics.RecordOperationSuccess(ctx, "initialize_service", "river")
	metrics.RecordOperationDuration(ctx, "initialize_service", "river", time.Since(start))
	ctxLogger.InfoContext(ctx, "Media queue service initialized")

	return &Service{
		client:  riverClient,
		pool:    pool,
		logger:  ctxLogger,
		db:      db,
		metrics: metrics,
	}, nil
}

func (s *Service) Start(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Starting media queue service")
	if err := s.client.Start(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "start_service", "river")
		return fmt.Errorf("failed to start River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "start_service", "river")
	return nil
}

// Stop drains running jobs and closes the pool.
func (s *Service) Stop(ctx context.Context) error {
	s.logger.InfoContext(ctx, "Stopping media queue service")
	defer s.pool.Close()

	if err := s.client.Stop(ctx); err != nil {
		s.metrics.RecordOperationFailure(ctx, "stop_service", "river")
		return fmt.Errorf("failed to stop River client: %w", err)
	}
	s.metrics.RecordOperationSuccess(ctx, "stop_service", "river")
	return nil
}

func (s *Service) ScheduleDelete(ctx context.Context, publicID, reason string) error {
	start := time.Now()
	s.metrics.RecordOperationAttempt(ctx, "schedule_delete", "river")

	res, err := s.client.Insert(ctx, DeleteJob{PublicID: publicID, Reason: reason}, &river.InsertOpts{
		Queue:       QueueName,
		MaxAttempts: 5,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to schedule media deletion", "public_id", publicID, "error", err)
		s.metrics.RecordOperationFailure(ctx, "schedule_delete", "river")
		return fmt.Errorf("failed to schedule media deletion: %w", err)
	}

	s.metrics.RecordOperationSuccess(ctx, "schedule_delete", "river")
	s.metrics.RecordOperationDuration(ctx, "schedule_delete", "river", time.Since(start))
	s.logger.InfoContext(ctx, "Media deletion scheduled", "public_id", publicID, "job_id", res.Job.ID)
	return nil
}

func (s *Service) ListJobs(ctx context.Context, limit int) ([]JobInfo, error) {
	if limit <= 0 {
		limit = 50
	}

	type riverJobRow struct {
		ID          int64          `bun:"id"`
		Kind        string         `bun:"kind"`
		State       string         `bun:"state"`
		Args        map[string]any `bun:"args,type:jsonb"`
		CreatedAt   time.Time      `bun:"created_at"`
		Attempt     int16          `bun:"attempt"`
		MaxAttempts int16          `bun:"max_attempts"`
	}

	var rows []riverJobRow
	err := s.db.NewSelect().
		Table("river_job").
		Column("id", "kind", "state", "args", "created_at", "attempt", "max_attempts").
		Where("kind = ?", DeleteJob{}.Kind()).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx, &rows)
	if err != nil {
		return nil, fmt.Errorf("failed to query media jobs: %w", err)
	}

	out := make([]JobInfo, len(rows))
	for i, r := range rows {
		publicID, _ := r.Args["public_id"].(string)
		out[i] = JobInfo{
			ID:          r.ID,
			Kind:        r.Kind,
			PublicID:    publicID,
			State:       r.State,
			CreatedAt:   r.CreatedAt.UTC().Format(time.RFC3339),
			Attempt:     int(r.Attempt),
			MaxAttempts: int(r.MaxAttempts),
		}
	}
	return out, nil
}

func (s *Service) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("river client is nil")
	}
	if err := s.pool.Ping(ctx); err != nil {
		return fmt.Errorf("queue service health check failed: %w", err)
	}
	return nil
}
