package config

import (
	"context"
	"errors"
	"io"
	"os"
	"time"

	otlpruntime "go.opentelemetry.io/contrib/instrumentation/runtime"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/mpapenbr/rally-championship/log"
	"github.com/mpapenbr/rally-championship/version"
)

type Telemetry struct {
	tp *sdktrace.TracerProvider
	mp *sdkmetric.MeterProvider
}

type (
	TelemetryOption func(c *telemetryConfig)
	telemetryConfig struct {
		endpoint     string
		out          io.Writer
		interval     time.Duration
		runtimeStats bool
	}
)

// WithEndpoint exports via OTLP/gRPC to the given address instead of
// writing to a stream.
func WithEndpoint(addr string) TelemetryOption {
	return func(c *telemetryConfig) {
		c.endpoint = addr
	}
}

func WithWriter(out io.Writer) TelemetryOption {
	return func(c *telemetryConfig) {
		c.out = out
	}
}

func WithMetricInterval(d time.Duration) TelemetryOption {
	return func(c *telemetryConfig) {
		c.interval = d
	}
}

func WithRuntimeMetrics(enable bool) TelemetryOption {
	return func(c *telemetryConfig) {
		c.runtimeStats = enable
	}
}

// SetupTelemetry installs global trace and meter providers. Without an
// endpoint the data is written to stderr (or the configured writer).
// Call Shutdown to flush pending data.
func SetupTelemetry(ctx context.Context, opts ...TelemetryOption) (*Telemetry, error) {
	cfg := &telemetryConfig{out: os.Stderr, interval: 30 * time.Second}
	for _, opt := range opts {
		opt(cfg)
	}
	res, err := resource.Merge(resource.Default(),
		resource.NewSchemaless(
			attribute.String("service.name", "rcs"),
			attribute.String("service.version", version.Version),
		))
	if err != nil {
		return nil, err
	}

	traceExporter, metricExporter, err := newExporters(ctx, cfg)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter,
			sdkmetric.WithInterval(cfg.interval))),
		sdkmetric.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)
	if cfg.runtimeStats {
		if err := otlpruntime.Start(
			otlpruntime.WithMeterProvider(mp),
			otlpruntime.WithMinimumReadMemStatsInterval(time.Second)); err != nil {
			log.Warn("Could not start runtime metrics", log.ErrorField(err))
		}
	}
	log.Debug("telemetry initialized", log.String("endpoint", cfg.endpoint))
	return &Telemetry{tp: tp, mp: mp}, nil
}

//nolint:whitespace // can't make both editor and linter happy
func newExporters(ctx context.Context, cfg *telemetryConfig) (
	sdktrace.SpanExporter, sdkmetric.Exporter, error,
) {
	if cfg.endpoint != "" {
		te, err := otlptracegrpc.New(ctx,
			otlptracegrpc.WithEndpoint(cfg.endpoint),
			otlptracegrpc.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		me, err := otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.endpoint),
			otlpmetricgrpc.WithInsecure())
		if err != nil {
			return nil, nil, err
		}
		return te, me, nil
	}
	te, err := stdouttrace.New(stdouttrace.WithWriter(cfg.out))
	if err != nil {
		return nil, nil, err
	}
	me, err := stdoutmetric.New(stdoutmetric.WithWriter(cfg.out))
	if err != nil {
		return nil, nil, err
	}
	return te, me, nil
}

func (t *Telemetry) Shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := errors.Join(t.tp.Shutdown(ctx), t.mp.Shutdown(ctx))
	if err != nil {
		log.Warn("telemetry shutdown", log.ErrorField(err))
	}
}
