package leaderboard

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/nats-io/nats.go"
	leaderboardservice "github.com/sh4ner/streamerpulse/app/modules/leaderboard/application"
	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	leaderboardevents "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/events"
	leaderboardhandlers "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/handlers"
	leaderboardmetrics "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/metrics"
	leaderboarddb "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories"
	leaderboardrouter "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/router"
	"github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/upstream"
	"github.com/sh4ner/streamerpulse/app/observability"
	"github.com/sh4ner/streamerpulse/config"
	"github.com/shopspring/decimal"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Module represents the leaderboard module.
type Module struct {
	LeaderboardService *leaderboardservice.LeaderboardService
	config             *config.Config
	cancelFunc         context.CancelFunc
	observability      observability.Observability
}

// NewLeaderboardModule wires the aggregator, cache and HTTP routes. nc may be nil, in which
// case refresh notifications are not published.
func NewLeaderboardModule(
	ctx context.Context,
	cfg *config.Config,
	obs observability.Observability,
	db bun.IDB,
	nc *nats.Conn,
	httpRouter chi.Router,
	admin func(http.Handler) http.Handler,
) (*Module, error) {
	logger := obs.Provider.Logger
	tracer := obs.Registry.Tracer
	lbCfg := cfg.Leaderboard

	logger.InfoContext(ctx, "leaderboard.NewLeaderboardModule initializing",
		"accounts", len(lbCfg.Accounts),
		"period", lbCfg.Period,
	)

	metrics, err := leaderboardmetrics.NewPrometheus(obs.Registry.Prometheus)
	if err != nil {
		return nil, fmt.Errorf("failed to register leaderboard metrics: %w", err)
	}

	schedule, err := RewardSchedule(lbCfg)
	if err != nil {
		return nil, err
	}
	resolver, err := PeriodResolver(lbCfg)
	if err != nil {
		return nil, err
	}
	snapshot, err := LoadSnapshot(lbCfg)
	if err != nil {
		return nil, err
	}

	client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)}
	fetcher := upstream.NewFetcher(client, RetryPolicy(lbCfg), logger, metrics)
	collector := upstream.NewCollector(fetcher, upstream.CollectorConfig{
		APIURL:   lbCfg.APIURL,
		Origin:   lbCfg.Origin,
		PageSize: lbCfg.PageSize,
		MaxPages: lbCfg.MaxPages,
	}, logger, tracer, metrics)

	var repo leaderboarddb.Repository
	if db != nil {
		repo = leaderboarddb.NewRepository(db)
	}

	var publisher leaderboardevents.Publisher = leaderboardevents.NopPublisher{}
	if nc != nil {
		natsPublisher, err := leaderboardevents.NewNATSPublisher(nc, cfg.NATS.SubjectPrefix, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create leaderboard publisher: %w", err)
		}
		logger.InfoContext(ctx, "Publishing leaderboard refreshes", "subject", natsPublisher.Subject())
		publisher = natsPublisher
	}

	accounts := make([]leaderboarddomain.AccountCredential, 0, len(lbCfg.Accounts))
	for _, a := range lbCfg.Accounts {
		accounts = append(accounts, leaderboarddomain.AccountCredential{
			InvitationCode: a.InvitationCode,
			AccessKey:      a.AccessKey,
		})
	}

	aggregator := leaderboardservice.NewAggregator(collector, repo, publisher, logger, tracer, metrics,
		leaderboardservice.AggregatorConfig{
			Accounts: accounts,
			Rank: leaderboarddomain.RankOptions{
				Schedule:   schedule,
				ImageURL:   lbCfg.ImageURL,
				MaxEntries: lbCfg.MaxEntries,
			},
			Snapshot: snapshot.Entries,
		})

	service := leaderboardservice.NewLeaderboardService(aggregator, resolver, repo, fetcher, logger, tracer, metrics,
		leaderboardservice.Options{
			CacheTTL:          lbCfg.CacheTTL,
			CycleTimeout:      lbCfg.CycleTimeout,
			SnapshotRetention: lbCfg.SnapshotKeep,
			APIURL:            lbCfg.APIURL,
			Origin:            lbCfg.Origin,
		})

	if httpRouter != nil {
		handlers := leaderboardhandlers.NewLeaderboardHandlers(service, lbCfg.ImageURL, logger, tracer)
		leaderboardrouter.RegisterRoutes(httpRouter, handlers, admin)
	}

	return &Module{
		LeaderboardService: service,
		config:             cfg,
		observability:      obs,
	}, nil
}

// Run starts the background refresher and blocks until ctx is cancelled or Close is called.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.observability.Provider.Logger
	logger.InfoContext(ctx, "Starting leaderboard module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	m.LeaderboardService.RunRefreshLoop(ctx, m.config.Leaderboard.RefreshInterval)
	logger.InfoContext(ctx, "Leaderboard module goroutine stopped")
}

// Close stops the background refresher.
func (m *Module) Close() error {
	logger := m.observability.Provider.Logger
	logger.Info("Stopping leaderboard module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	logger.Info("Leaderboard module stopped")
	return nil
}

// RetryPolicy maps the retry config onto the fetcher policy.
func RetryPolicy(cfg config.LeaderboardConfig) upstream.RetryPolicy {
	return upstream.RetryPolicy{
		MaxAttempts:    cfg.Retry.MaxAttempts,
		Backoff:        cfg.Retry.Backoff,
		Multiplier:     cfg.Retry.Multiplier,
		MaxBackoff:     cfg.Retry.MaxBackoff,
		Jitter:         cfg.Retry.Jitter,
		AttemptTimeout: cfg.Retry.AttemptTimeout,
	}
}

// RewardSchedule builds the prize table, falling back to the default when none is configured.
func RewardSchedule(cfg config.LeaderboardConfig) (leaderboarddomain.RewardSchedule, error) {
	if len(cfg.RewardTiers) == 0 {
		return leaderboarddomain.DefaultRewardSchedule(), nil
	}
	tiers := make([]leaderboarddomain.RewardTier, 0, len(cfg.RewardTiers))
	for _, t := range cfg.RewardTiers {
		amount, err := decimal.NewFromString(t.Amount)
		if err != nil {
			return leaderboarddomain.RewardSchedule{}, fmt.Errorf("invalid reward amount %q for ranks %d-%d: %w", t.Amount, t.From, t.To, err)
		}
		tiers = append(tiers, leaderboarddomain.RewardTier{From: t.From, To: t.To, Amount: amount})
	}
	schedule, err := leaderboarddomain.NewRewardSchedule(tiers)
	if err != nil {
		return leaderboarddomain.RewardSchedule{}, fmt.Errorf("invalid reward tiers: %w", err)
	}
	return schedule, nil
}

// PeriodResolver builds the resolver for the configured period mode.
func PeriodResolver(cfg config.LeaderboardConfig) (leaderboarddomain.PeriodResolver, error) {
	switch cfg.Period {
	case "", "monthly":
		return leaderboarddomain.PeriodResolver{}, nil
	case "fixed":
		if cfg.PeriodStart.IsZero() || !cfg.PeriodEnd.After(cfg.PeriodStart) {
			return leaderboarddomain.PeriodResolver{}, fmt.Errorf("fixed period needs period_start before period_end")
		}
		return leaderboarddomain.PeriodResolver{Fixed: leaderboarddomain.Period{
			Key:   leaderboarddomain.PeriodCurrent,
			Start: cfg.PeriodStart.UTC(),
			End:   cfg.PeriodEnd.UTC(),
		}}, nil
	default:
		return leaderboarddomain.PeriodResolver{}, fmt.Errorf("unsupported leaderboard period mode %q", cfg.Period)
	}
}

// LoadSnapshot reads the fallback board from SnapshotFile, or the compiled-in copy.
func LoadSnapshot(cfg config.LeaderboardConfig) (leaderboarddomain.Snapshot, error) {
	if cfg.SnapshotFile == "" {
		return leaderboarddomain.EmbeddedSnapshot(cfg.ImageURL)
	}
	data, err := os.ReadFile(cfg.SnapshotFile)
	if err != nil {
		return leaderboarddomain.Snapshot{}, fmt.Errorf("failed to read snapshot file: %w", err)
	}
	return leaderboarddomain.ParseSnapshot(data, cfg.ImageURL)
}
