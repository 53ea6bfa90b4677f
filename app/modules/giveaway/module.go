package giveaway

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	giveawayservice "github.com/sh4ner/streamerpulse/app/modules/giveaway/application"
	giveawayhandlers "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/handlers"
	giveawaydb "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/repositories"
	giveawayrouter "github.com/sh4ner/streamerpulse/app/modules/giveaway/infrastructure/router"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
)

// Module represents the giveaway module.
type Module struct {
	GiveawayService giveawayservice.Service
	cancelFunc      context.CancelFunc
	observability   observability.Observability
}

// NewGiveawayModule creates and initializes a new giveaway module.
func NewGiveawayModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db *bun.DB,
	httpRouter chi.Router,
	admin, submitLimit func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer

	logger.InfoContext(ctx, "giveaway.NewGiveawayModule initializing")

	deposit, err := decimal.NewFromString(cfg.Giveaway.DepositAmount)
	if err != nil {
		return nil, fmt.Errorf("invalid giveaway deposit amount %q: %w", cfg.Giveaway.DepositAmount, err)
	}

	// 1. Initialize Repository
	repo := giveawaydb.NewRepository(db)

	// 2. Initialize Service
	service := giveawayservice.NewGiveawayService(repo, logger, tracer, db, deposit)

	// 3. Initialize Handlers and routes
	if httpRouter != nil {
		if admin == nil {
			admin = passthrough
		}
		if submitLimit == nil {
			submitLimit = passthrough
		}
		handlers := giveawayhandlers.NewGiveawayHandlers(service, logger, tracer)
		giveawayrouter.RegisterRoutes(httpRouter, handlers, admin, submitLimit)
	}

	return &Module{
		GiveawayService: service,
		observability:   obs,
	}, nil
}

// Run blocks until the module is closed.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting giveaway module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Giveaway module goroutine stopped")
}

// Close shuts down the giveaway module.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping giveaway module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Giveaway module stopped")
	return nil
}

func passthrough(next http.Handler) http.Handler { return next }
