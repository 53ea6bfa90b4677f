package tracking

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	trackingservice "github.com/sh4ner/streamerpulse/app/modules/tracking/application"
	trackinghandlers "github.com/sh4ner/streamerpulse/app/modules/tracking/infrastructure/handlers"
	trackingdb "github.com/sh4ner/streamerpulse/app/modules/tracking/infrastructure/repositories"
	trackingrouter "github.com/sh4ner/streamerpulse/app/modules/tracking/infrastructure/router"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/uptrace/bun"
)

// Module records visitor sessions and outbound link clicks.
type Module struct {
	TrackingService trackingservice.Service
	cancelFunc      context.CancelFunc
	observability   observability.Observability
}

func NewTrackingModule(
	ctx context.Context,
	obs observability.Observability,
	db bun.IDB,
	httpRouter chi.Router,
	admin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "tracking.NewTrackingModule initializing")

	service, err := trackingservice.NewTrackingService(trackingdb.NewRepository(db), logger, obs.Registry.Tracer, obs.Registry.Prometheus)
	if err != nil {
		return nil, fmt.Errorf("failed to register tracking metrics: %w", err)
	}

	if httpRouter != nil {
		if admin == nil {
			admin = passthrough
		}
		trackingrouter.RegisterRoutes(httpRouter, trackinghandlers.NewTrackingHandlers(service, logger), admin)
	}

	return &Module{TrackingService: service, observability: obs}, nil
}

// Run blocks until the module is closed.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	m.observability.Provider.Logger.InfoContext(ctx, "Tracking module goroutine stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }
