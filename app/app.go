package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	"github.com/sh4ner/streamerpulse/app/modules/auth"
	authhandlers "github.com/sh4ner/streamerpulse/app/modules/auth/infrastructure/handlers"
	"github.com/sh4ner/streamerpulse/app/modules/contact"
	"github.com/sh4ner/streamerpulse/app/modules/content"
	"github.com/sh4ner/streamerpulse/app/modules/giveaway"
	"github.com/sh4ner/streamerpulse/app/modules/leaderboard"
	"github.com/sh4ner/streamerpulse/app/modules/media"
	"github.com/sh4ner/streamerpulse/app/modules/tracking"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Upload and submission endpoints allow 10 requests per IP per 15 minutes.
const (
	limitRequests = 10
	limitWindow   = 15 * time.Minute
)

// module is the lifecycle every feature module implements.
type module interface {
	Run(ctx context.Context, wg *sync.WaitGroup)
	Close() error
}

// App holds the shared infrastructure and every feature module.
type App struct {
	Config        *config.Config
	Observability observability.Observability
	DB            *bun.DB
	NATS          *nats.Conn
	Router        chi.Router

	AuthModule        *auth.Module
	LeaderboardModule *leaderboard.Module
	GiveawayModule    *giveaway.Module
	MediaModule       *media.Module
	ContentModule     *content.Module
	ContactModule     *contact.Module
	TrackingModule    *tracking.Module

	server *http.Server
	wg     sync.WaitGroup
}

// NewApp connects to Postgres (and NATS when configured) and wires every module onto one router.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:    cfg.Observability.ServiceName,
		Environment:    cfg.Observability.Environment,
		Version:        cfg.Observability.Version,
		LogLevel:       cfg.Observability.LogLevel,
		MetricsAddress: cfg.Observability.MetricsAddress,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize observability: %w", err)
	}
	logger := obs.Provider.Logger

	app := &App{Config: cfg, Observability: obs}

	if cfg.Postgres.DSN != "" {
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(cfg.Postgres.DSN)))
		app.DB = bun.NewDB(sqldb, pgdialect.New())
		if err := app.DB.PingContext(ctx); err != nil {
			app.DB.Close()
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		logger.InfoContext(ctx, "Connected to postgres")
	} else {
		logger.WarnContext(ctx, "No postgres DSN configured; leaderboard runs without snapshots")
	}

	if cfg.NATS.URL != "" {
		nc, err := nats.Connect(cfg.NATS.URL,
			nats.Name(cfg.Observability.ServiceName),
			nats.MaxReconnects(-1),
			nats.Timeout(10*time.Second),
		)
		if err != nil {
			// Refresh events are optional; serve without them.
			logger.ErrorContext(ctx, "Failed to connect to NATS", "url", cfg.NATS.URL, "error", err)
		} else {
			app.NATS = nc
		}
	}

	if err := app.initModules(ctx); err != nil {
		app.closeConnections()
		return nil, err
	}

	app.server = &http.Server{
		Addr:         cfg.HTTP.Address,
		Handler:      otelhttp.NewHandler(app.Router, "streamerpulse"),
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}
	return app, nil
}

func (app *App) initModules(ctx context.Context) error {
	cfg := app.Config
	obs := app.Observability
	logger := obs.Provider.Logger

	authModule, err := auth.NewModule(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize auth module: %w", err)
	}
	app.AuthModule = authModule
	admin := authModule.Admin()

	uploadLimit := authhandlers.RateLimitMiddleware(
		authhandlers.NewWindowLimiter(limitRequests, limitWindow),
		"Too many upload requests, please try again later.",
	)
	submitLimit := authhandlers.RateLimitMiddleware(
		authhandlers.NewWindowLimiter(limitRequests, limitWindow),
		"Too many requests, please try again later.",
	)

	r := newRouter(logger, obs.Registry.HTTPMetrics, authModule.CORS())
	app.Router = r

	var db bun.IDB
	if app.DB != nil {
		db = app.DB
	}

	if app.LeaderboardModule, err = leaderboard.NewLeaderboardModule(ctx, cfg, obs, db, app.NATS, r, admin); err != nil {
		return fmt.Errorf("failed to initialize leaderboard module: %w", err)
	}
	if app.MediaModule, err = media.NewMediaModule(ctx, cfg, obs, db, r, admin, uploadLimit); err != nil {
		return fmt.Errorf("failed to initialize media module: %w", err)
	}

	// The remaining modules are document stores and need the database.
	if app.DB == nil {
		logger.WarnContext(ctx, "Content, giveaway, contact and tracking routes disabled without postgres")
		return nil
	}

	if app.GiveawayModule, err = giveaway.NewGiveawayModule(ctx, cfg, obs, app.DB, r, admin, submitLimit); err != nil {
		return fmt.Errorf("failed to initialize giveaway module: %w", err)
	}
	if app.ContentModule, err = content.NewContentModule(ctx, cfg, obs, app.DB, app.MediaModule.MediaService, r, admin); err != nil {
		return fmt.Errorf("failed to initialize content module: %w", err)
	}
	if app.ContactModule, err = contact.NewContactModule(ctx, obs, app.DB, r, admin, submitLimit); err != nil {
		return fmt.Errorf("failed to initialize contact module: %w", err)
	}
	if app.TrackingModule, err = tracking.NewTrackingModule(ctx, obs, app.DB, r, admin); err != nil {
		return fmt.Errorf("failed to initialize tracking module: %w", err)
	}
	return nil
}

func (app *App) modules() []module {
	var out []module
	if app.LeaderboardModule != nil {
		out = append(out, app.LeaderboardModule)
	}
	if app.MediaModule != nil {
		out = append(out, app.MediaModule)
	}
	if app.GiveawayModule != nil {
		out = append(out, app.GiveawayModule)
	}
	if app.ContentModule != nil {
		out = append(out, app.ContentModule)
	}
	if app.ContactModule != nil {
		out = append(out, app.ContactModule)
	}
	if app.TrackingModule != nil {
		out = append(out, app.TrackingModule)
	}
	return out
}

// Run starts every module and serves HTTP until ctx is cancelled or the listener fails.
func (app *App) Run(ctx context.Context) error {
	logger := app.Observability.Provider.Logger

	for _, m := range app.modules() {
		app.wg.Add(1)
		go m.Run(ctx, &app.wg)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.InfoContext(ctx, "HTTP server listening", "address", app.server.Addr)
		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		return nil
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}
}

// Close stops the HTTP server, the modules and the shared connections in that order.
func (app *App) Close(ctx context.Context) error {
	logger := app.Observability.Provider.Logger
	var errs []error

	if app.server != nil {
		if err := app.server.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http server: %w", err))
		}
	}

	for _, m := range app.modules() {
		if err := m.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		logger.WarnContext(ctx, "Timed out waiting for modules to stop")
	}

	app.closeConnections()

	if err := app.Observability.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *App) closeConnections() {
	if app.NATS != nil {
		if err := app.NATS.Drain(); err != nil {
			app.NATS.Close()
		}
	}
	if app.DB != nil {
		_ = app.DB.Close()
	}
}
