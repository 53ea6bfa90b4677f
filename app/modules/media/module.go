package media

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	mediaservice "github.com/sh4ner/streamerpulse/app/modules/media/application"
	"github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/cloudinary"
	mediahandlers "github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/handlers"
	mediaqueue "github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/queue"
	mediarouter "github.com/sh4ner/streamerpulse/app/modules/media/infrastructure/router"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Module represents the media module.
type Module struct {
	MediaService  mediaservice.Service
	queue         *mediaqueue.Service
	cancelFunc    context.CancelFunc
	observability observability.Observability
}

// NewMediaModule wires the media host client, the optional River queue and the upload routes.
// The queue is only started when queue.enabled is set and a database is configured.
func NewMediaModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db bun.IDB,
	httpRouter chi.Router,
	admin, uploadLimit func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "media.NewMediaModule initializing", "queue_enabled", cfg.Queue.Enabled)

	host, err := cloudinary.NewClient(cloudinary.Config{
		BaseURL:   cfg.Media.BaseURL,
		CloudName: cfg.Media.CloudName,
		APIKey:    cfg.Media.APIKey,
		APISecret: cfg.Media.APISecret,
	}, &http.Client{
		Timeout:   30 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, err
	}

	m := &Module{observability: obs}

	var scheduler mediaservice.Scheduler
	if cfg.Queue.Enabled && db != nil && cfg.Postgres.DSN != "" {
		metrics := mediaqueue.NewPrometheusMetrics(obs.Registry.Prometheus)
		q, err := mediaqueue.NewService(ctx, db, logger, cfg.Postgres.DSN, cfg.Queue.MaxWorkers, host, metrics)
		if err != nil {
			return nil, fmt.Errorf("failed to create media queue: %w", err)
		}
		m.queue = q
		scheduler = q
	}

	service := mediaservice.NewMediaService(host, scheduler, cfg.Media.Folder, logger, tracer)
	m.MediaService = service

	if httpRouter != nil {
		if admin == nil {
			admin = passthrough
		}
		if uploadLimit == nil {
			uploadLimit = passthrough
		}
		mediarouter.RegisterRoutes(httpRouter, mediahandlers.NewMediaHandlers(service, logger, tracer), admin, uploadLimit)
	}

	return m, nil
}

// Run starts the queue workers, if any, and blocks until the module is closed.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting media module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.queue != nil {
		if err := m.queue.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Media queue failed to start, deletions will run inline", "error", err)
		}
	}

	<-ctx.Done()

	if m.queue != nil {
		stopCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
		defer stop()
		if err := m.queue.Stop(stopCtx); err != nil {
			logger.Error("Failed to stop media queue", "error", err)
		}
	}
	logger.Info("Media module goroutine stopped")
}

// Close cancels the module goroutine.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping media module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }
