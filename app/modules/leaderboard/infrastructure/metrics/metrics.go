package leaderboardmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics covers the aggregation pipeline from upstream fetches to cache reads.
type Metrics interface {
	RecordFetchAttempt(ctx context.Context, outcome string)
	RecordPage(ctx context.Context, account, outcome string)
	RecordRecordsCollected(ctx context.Context, account string, count int)
	RecordCycle(ctx context.Context, tier string, duration time.Duration)
	RecordCacheRead(ctx context.Context, period, result string)
	RecordSnapshotWrite(ctx context.Context, outcome string)
	RecordEventPublish(ctx context.Context, outcome string)
}

type prometheusMetrics struct {
	fetchAttempts    *prometheus.CounterVec
	pages            *prometheus.CounterVec
	recordsCollected *prometheus.GaugeVec
	cycleDuration    *prometheus.HistogramVec
	cacheReads       *prometheus.CounterVec
	snapshotWrites   *prometheus.CounterVec
	eventPublishes   *prometheus.CounterVec
}

// NewPrometheus registers the leaderboard collectors on reg.
func NewPrometheus(reg prometheus.Registerer) (Metrics, error) {
	m := &prometheusMetrics{
		fetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamerpulse",
			Subsystem: "leaderboard",
			Name:      "upstream_fetch_attempts_total",
			Help:      "Upstream HTTP attempts by outcome.",
		}, []string{"outcome"}),
		pages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamerpulse",
			Subsystem: "leaderboard",
			Name:      "pages_total",
			Help:      "Upstream pages processed per account by outcome.",
		}, []string{"account", "outcome"}),
		recordsCollected: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "streamerpulse",
			Subsystem: "leaderboard",
			Name:      "records_collected",
			Help:      "Visible wager records gathered for an account in the last cycle.",
		}, []string{"account"}),
		cycleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "streamerpulse",
			Subsystem: "leaderboard",
			Name:      "cycle_duration_seconds",
			Help:      "Duration of aggregation cycles by the tier that was served.",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120},
		}, []string{"tier"}),
		cacheReads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamerpulse",
			Subsystem: "leaderboard",
			Name:      "cache_reads_total",
			Help:      "Cache reads by period and result (hit, miss, stale).",
		}, []string{"period", "result"}),
		snapshotWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamerpulse",
			Subsystem: "leaderboard",
			Name:      "snapshot_writes_total",
			Help:      "Persisted leaderboard snapshots by outcome.",
		}, []string{"outcome"}),
		eventPublishes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamerpulse",
			Subsystem: "leaderboard",
			Name:      "event_publishes_total",
			Help:      "Refresh notifications published by outcome.",
		}, []string{"outcome"}),
	}

	for _, c := range []prometheus.Collector{
		m.fetchAttempts, m.pages, m.recordsCollected, m.cycleDuration,
		m.cacheReads, m.snapshotWrites, m.eventPublishes,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *prometheusMetrics) RecordFetchAttempt(_ context.Context, outcome string) {
	m.fetchAttempts.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) RecordPage(_ context.Context, account, outcome string) {
	m.pages.WithLabelValues(account, outcome).Inc()
}

func (m *prometheusMetrics) RecordRecordsCollected(_ context.Context, account string, count int) {
	m.recordsCollected.WithLabelValues(account).Set(float64(count))
}

func (m *prometheusMetrics) RecordCycle(_ context.Context, tier string, duration time.Duration) {
	m.cycleDuration.WithLabelValues(tier).Observe(duration.Seconds())
}

func (m *prometheusMetrics) RecordCacheRead(_ context.Context, period, result string) {
	m.cacheReads.WithLabelValues(period, result).Inc()
}

func (m *prometheusMetrics) RecordSnapshotWrite(_ context.Context, outcome string) {
	m.snapshotWrites.WithLabelValues(outcome).Inc()
}

func (m *prometheusMetrics) RecordEventPublish(_ context.Context, outcome string) {
	m.eventPublishes.WithLabelValues(outcome).Inc()
}

type noop struct{}

// NewNoop returns a Metrics that discards everything.
func NewNoop() Metrics { return noop{} }

func (noop) RecordFetchAttempt(context.Context, string)          {}
func (noop) RecordPage(context.Context, string, string)          {}
func (noop) RecordRecordsCollected(context.Context, string, int) {}
func (noop) RecordCycle(context.Context, string, time.Duration)  {}
func (noop) RecordCacheRead(context.Context, string, string)     {}
func (noop) RecordSnapshotWrite(context.Context, string)         {}
func (noop) RecordEventPublish(context.Context, string)          {}
