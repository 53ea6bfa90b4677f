package leaderboardservice

import (
	"context"
	"log/slog"
	"time"

	leaderboarddomain "github.com/sh4ner/streamerpulse/app/modules/leaderboard/domain"
	leaderboardevents "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/events"
	leaderboardmetrics "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/metrics"
	leaderboarddb "github.com/sh4ner/streamerpulse/app/modules/leaderboard/infrastructure/repositories"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// AccountCollector gathers one account's wager records for a window.
type AccountCollector interface {
	CollectAccount(ctx context.Context, cred leaderboarddomain.AccountCredential, start, end time.Time) []leaderboarddomain.WagerRecord
}

// Result is the outcome of one aggregation cycle.
type Result struct {
	Period    leaderboarddomain.Period
	Entries   []leaderboarddomain.LeaderboardEntry
	Tier      leaderboarddomain.Tier
	FetchedAt time.Time
}

// AggregatorConfig holds the static inputs of a cycle.
type AggregatorConfig struct {
	Accounts []leaderboarddomain.AccountCredential
	Rank     leaderboarddomain.RankOptions
	Snapshot []leaderboarddomain.LeaderboardEntry
}

// Aggregator runs aggregation cycles: collect every account, rank, fall back, persist, notify.
type Aggregator struct {
	collector AccountCollector
	repo      leaderboarddb.Repository
	publisher leaderboardevents.Publisher
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   leaderboardmetrics.Metrics
	cfg       AggregatorConfig
	now       func() time.Time
}

// NewAggregator creates an Aggregator. repo and publisher may be nil.
func NewAggregator(
	collector AccountCollector,
	repo leaderboarddb.Repository,
	publisher leaderboardevents.Publisher,
	logger *slog.Logger,
	tracer trace.Tracer,
	metrics leaderboardmetrics.Metrics,
	cfg AggregatorConfig,
) *Aggregator {
	if publisher == nil {
		publisher = leaderboardevents.NopPublisher{}
	}
	if metrics == nil {
		metrics = leaderboardmetrics.NewNoop()
	}
	return &Aggregator{
		collector: collector,
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		tracer:    tracer,
		metrics:   metrics,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Run performs one aggregation cycle for period. It always yields a non-empty result.
func (a *Aggregator) Run(ctx context.Context, period leaderboarddomain.Period) Result {
	ctx, span := a.tracer.Start(ctx, "leaderboard.aggregate", trace.WithAttributes(
		attribute.String("period", period.Key),
		attribute.Int("accounts", len(a.cfg.Accounts)),
	))
	defer span.End()

	start := a.now()

	perAccount := make([][]leaderboarddomain.WagerRecord, len(a.cfg.Accounts))
	g, gctx := errgroup.WithContext(ctx)
	for i, cred := range a.cfg.Accounts {
		g.Go(func() error {
			perAccount[i] = a.collector.CollectAccount(gctx, cred, period.Start, period.End)
			return nil
		})
	}
	_ = g.Wait()

	// Concatenate in account order so ties resolve the same way every cycle.
	var live []leaderboarddomain.WagerRecord
	for _, records := range perAccount {
		live = append(live, records...)
	}

	entries, tier := leaderboarddomain.SelectSource(live, a.cfg.Snapshot, a.cfg.Rank)
	result := Result{Period: period, Entries: entries, Tier: tier, FetchedAt: a.now().UTC()}

	span.SetAttributes(attribute.String("tier", string(tier)), attribute.Int("records", len(live)))
	a.metrics.RecordCycle(ctx, string(tier), a.now().Sub(start))
	if tier != leaderboarddomain.TierLive {
		a.logger.WarnContext(ctx, "Live aggregation empty, serving fallback tier",
			"period", period.Key,
			"tier", tier,
		)
	}

	a.persist(ctx, result)
	a.publish(ctx, result)

	a.logger.InfoContext(ctx, "Aggregation cycle complete",
		"period", period.Key,
		"tier", tier,
		"records", len(live),
		"entries", len(entries),
		"duration", a.now().Sub(start),
	)
	return result
}

func (a *Aggregator) persist(ctx context.Context, result Result) {
	if a.repo == nil {
		return
	}
	err := a.repo.SaveSnapshot(ctx, nil, &leaderboarddb.Snapshot{
		PeriodKey:   result.Period.Key,
		PeriodStart: result.Period.Start,
		PeriodEnd:   result.Period.End,
		Tier:        string(result.Tier),
		Entries:     result.Entries,
		FetchedAt:   result.FetchedAt,
	})
	if err != nil {
		a.metrics.RecordSnapshotWrite(ctx, "failure")
		a.logger.ErrorContext(ctx, "Failed to persist leaderboard snapshot", "period", result.Period.Key, "error", err)
		return
	}
	a.metrics.RecordSnapshotWrite(ctx, "success")
}

func (a *Aggregator) publish(ctx context.Context, result Result) {
	err := a.publisher.PublishRefreshed(ctx, leaderboardevents.RefreshedPayload{
		PeriodKey:   result.Period.Key,
		PeriodStart: result.Period.Start,
		PeriodEnd:   result.Period.End,
		Tier:        result.Tier,
		FetchedAt:   result.FetchedAt,
		Entries:     result.Entries,
	})
	if err != nil {
		a.metrics.RecordEventPublish(ctx, "failure")
		a.logger.ErrorContext(ctx, "Failed to publish leaderboard refresh", "period", result.Period.Key, "error", err)
		return
	}
	a.metrics.RecordEventPublish(ctx, "success")
}
