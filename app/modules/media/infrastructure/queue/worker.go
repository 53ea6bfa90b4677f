package mediaqueue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/riverqueue/river"
)

// Destroyer deletes images on the media host.
type Destroyer interface {
	Destroy(ctx context.Context, publicID string) error
}

// DeleteWorker executes media_delete jobs.
type DeleteWorker struct {
	river.WorkerDefaults[DeleteJob]
	logger    *slog.Logger
	destroyer Destroyer
	metrics   Metrics
}

func NewDeleteWorker(logger *slog.Logger, destroyer Destroyer, metrics Metrics) *DeleteWorker {
	return &DeleteWorker{logger: logger, destroyer: destroyer, metrics: metrics}
}

func (w *DeleteWorker) Timeout(*river.Job[DeleteJob]) time.Duration {
	return 30 * time.Second
}

// Work returns the destroy error so River retries with its default backoff.
func (w *DeleteWorker) Work(ctx context.Context, job *river.Job[DeleteJob]) error {
	start := time.Now()
	w.metrics.RecordOperationAttempt(ctx, "media_delete", "river")

	if job.Args.PublicID == "" {
		w.logger.WarnContext(ctx, "Skipping media_delete job without public id")
		return nil
	}

	attempt := 0
	if job.JobRow != nil {
		attempt = job.Attempt
	}

	if err := w.destroyer.Destroy(ctx, job.Args.PublicID); err != nil {
		w.logger.ErrorContext(ctx, "Failed to delete media",
			"public_id", job.Args.PublicID,
			"attempt", attempt,
			"error", err,
		)
		w.metrics.RecordOperationFailure(ctx, "media_delete", "river")
		return fmt.Errorf("failed to delete %s: %w", job.Args.PublicID, err)
	}

	w.metrics.RecordOperationSuccess(ctx, "media_delete", "river")
	w.metrics.RecordOperationDuration(ctx, "media_delete", "river", time.Since(start))
	w.logger.InfoContext(ctx, "Media deleted",
		"public_id", job.Args.PublicID,
		"reason", job.Args.Reason,
		"attempt", attempt,
	)
	return nil
}
