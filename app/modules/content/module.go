package content

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	contentservice "github.com/sh4ner/streamerpulse/app/modules/content/application"
	contenthandlers "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/handlers"
	contentdb "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/repositories"
	contentrouter "github.com/sh4ner/streamerpulse/app/modules/content/infrastructure/router"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/uptrace/bun"
)

// Module owns news, reviews, the stream schedule and clips.
type Module struct {
	ContentService contentservice.Service
	cancelFunc     context.CancelFunc
	observability  observability.Observability
}

// NewContentModule wires the content repository, service and routes. images handles
// review and clip thumbnails.
func NewContentModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	images contentservice.Images,
	httpRouter chi.Router,
	admin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "content.NewContentModule initializing")

	repo := contentdb.NewRepository(db)
	service := contentservice.NewContentService(repo, images, logger, tracer, db)

	if httpRouter != nil {
		if admin == nil {
			admin = passthrough
		}
		handlers := contenthandlers.NewContentHandlers(service, logger, tracer)
		contentrouter.RegisterRoutes(httpRouter, handlers, admin)
	}

	return &Module{
		ContentService: service,
		observability:  obs,
	}, nil
}

// Run blocks until the module is closed.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting content module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Content module goroutine stopped")
}

// Close shuts down the content module.
func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	m.observability.Provider.Logger.Info("Content module stopped")
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }
