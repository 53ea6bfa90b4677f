package contact

import (
	"context"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	contactservice "github.com/sh4ner/streamerpulse/app/modules/contact/application"
	contacthandlers "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/handlers"
	contactdb "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/repositories"
	contactrouter "github.com/sh4ner/streamerpulse/app/modules/contact/infrastructure/router"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/uptrace/bun"
)

// Module represents the contact form module.
type Module struct {
	ContactService contactservice.Service
	cancelFunc     context.CancelFunc
	observability  observability.Observability
}

func NewContactModule(
	ctx context.Context,
	obs observability.Observability,
	db bun.IDB,
	httpRouter chi.Router,
	admin, submitLimit func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	logger.InfoContext(ctx, "contact.NewContactModule initializing")

	service := contactservice.NewContactService(contactdb.NewRepository(db), logger, obs.Registry.Tracer)

	if httpRouter != nil {
		if admin == nil {
			admin = passthrough
		}
		if submitLimit == nil {
			submitLimit = passthrough
		}
		contactrouter.RegisterRoutes(httpRouter, contacthandlers.NewContactHandlers(service, logger), admin, submitLimit)
	}

	return &Module{ContactService: service, observability: obs}, nil
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
	m.observability.Provider.Logger.InfoContext(ctx, "Contact module goroutine stopped")
}

func (m *Module) Close() error {
	if m.cancelFunc != nil {
		m.cancelFunc()
	}
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }
