package mediaqueue

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records queue operations.
type Metrics interface {
	RecordOperationAttempt(ctx context.Context, operation, service string)
	RecordOperationSuccess(ctx context.Context, operation, service string)
	RecordOperationFailure(ctx context.Context, operation, service string)
	RecordOperationDuration(ctx context.Context, operation, service string, duration time.Duration)
}

type prometheusMetrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the queue collectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) Metrics {
	m := &prometheusMetrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "streamerpulse",
			Subsystem: "media_queue",
			Name:      "operations_total",
			Help:      "Media queue operations by outcome.",
		}, []string{"operation", "service", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "streamerpulse",
			Subsystem: "media_queue",
			Name:      "operation_duration_seconds",
			Help:      "Duration of successful media queue operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "service"}),
	}
	reg.MustRegister(m.operations, m.duration)
	return m
}

func (m *prometheusMetrics) RecordOperationAttempt(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(operation, service, "attempt").Inc()
}

func (m *prometheusMetrics) RecordOperationSuccess(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(operation, service, "success").Inc()
}

func (m *prometheusMetrics) RecordOperationFailure(_ context.Context, operation, service string) {
	m.operations.WithLabelValues(operation, service, "failure").Inc()
}

func (m *prometheusMetrics) RecordOperationDuration(_ context.Context, operation, service string, d time.Duration) {
	m.duration.WithLabelValues(operation, service).Observe(d.Seconds())
}

// NopMetrics discards everything.
type NopMetrics struct{}

func (NopMetrics) RecordOperationAttempt(context.Context, string, string)                 {}
func (NopMetrics) RecordOperationSuccess(context.Context, string, string)                 {}
func (NopMetrics) RecordOperationFailure(context.Context, string, string)                 {}
func (NopMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}
