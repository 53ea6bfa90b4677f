// Package observability builds the logger, tracer provider and Prometheus registry shared by
// every module.
package observability

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Config holds the observability settings.
type Config struct {
	ServiceName    string
	Environment    string
	Version        string
	LogLevel       string
	MetricsAddress string
	OTLPEndpoint   string
}

// Provider holds the logging and tracing backends.
type Provider struct {
	Logger         *slog.Logger
	TracerProvider trace.TracerProvider
	shutdown       func(context.Context) error
}

// Registry holds the metric registry and the service tracer.
type Registry struct {
	Prometheus  *prometheus.Registry
	Tracer      trace.Tracer
	HTTPMetrics *HTTPMetrics
}

// Observability bundles everything a module needs to log, trace and record metrics.
type Observability struct {
	Provider *Provider
	Registry *Registry

	metricsServer *http.Server
}

// Init builds the observability stack. When MetricsAddress is set a /metrics listener is
// started; when OTLPEndpoint is set spans are exported over gRPC.
func Init(ctx context.Context, cfg Config) (Observability, error) {
	logger := NewLogger(os.Stdout, cfg.LogLevel, cfg.Environment).With(
		"service", cfg.ServiceName,
		"env", cfg.Environment,
		"version", cfg.Version,
	)

	var tp trace.TracerProvider = noop.NewTracerProvider()
	shutdown := func(context.Context) error { return nil }
	if cfg.OTLPEndpoint != "" {
		exporter, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.OTLPEndpoint),
			otlptracegrpc.WithInsecure(),
		)
		if err != nil {
			return Observability{}, fmt.Errorf("failed to create trace exporter: %w", err)
		}
		sdkProvider := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", cfg.ServiceName),
				attribute.String("service.version", cfg.Version),
				attribute.String("deployment.environment", cfg.Environment),
			)),
		)
		tp = sdkProvider
		shutdown = sdkProvider.Shutdown
	}
	otel.SetTracerProvider(tp)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics, err := NewHTTPMetrics(reg)
	if err != nil {
		return Observability{}, err
	}

	obs := Observability{
		Provider: &Provider{Logger: logger, TracerProvider: tp, shutdown: shutdown},
		Registry: &Registry{
			Prometheus:  reg,
			Tracer:      tp.Tracer(cfg.ServiceName),
			HTTPMetrics: httpMetrics,
		},
	}

	if cfg.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
		obs.metricsServer = &http.Server{
			Addr:              cfg.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info("Metrics server listening", "address", cfg.MetricsAddress)
			if err := obs.metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("Metrics server stopped", "error", err)
			}
		}()
	}

	return obs, nil
}

// NewTestObservability returns a discard logger, a noop tracer and a fresh registry.
func NewTestObservability() Observability {
	reg := prometheus.NewRegistry()
	httpMetrics, _ := NewHTTPMetrics(reg)
	tp := noop.NewTracerProvider()
	return Observability{
		Provider: &Provider{
			Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
			TracerProvider: tp,
			shutdown:       func(context.Context) error { return nil },
		},
		Registry: &Registry{Prometheus: reg, Tracer: tp.Tracer("test"), HTTPMetrics: httpMetrics},
	}
}

// Shutdown flushes spans and stops the metrics listener.
func (o Observability) Shutdown(ctx context.Context) error {
	var errs []error
	if o.metricsServer != nil {
		if err := o.metricsServer.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("metrics server: %w", err))
		}
	}
	if o.Provider != nil && o.Provider.shutdown != nil {
		if err := o.Provider.shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("tracer provider: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewLogger returns a JSON logger outside development and a text logger in development.
func NewLogger(w io.Writer, level, environment string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}
	if strings.EqualFold(environment, "development") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
