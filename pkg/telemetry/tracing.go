// Package telemetry provides OpenTelemetry tracing for skill invocations and
// model calls.
package telemetry

import (
	"context"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

// Config represents the configuration for the telemetry system
type Config struct {
	Enabled        bool    `mapstructure:"enabled"`
	ServiceName    string  `mapstructure:"service_name"`
	ServiceVersion string  `mapstructure:"service_version"`
	SamplerType    string  `mapstructure:"sampler"` // always, never, ratio
	SamplerRatio   float64 `mapstructure:"ratio"`
}

// InitTracer installs the global tracer provider. The returned function must be
// called before the process exits to flush pending spans.
func InitTracer(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if !cfg.Enabled {
		return func(context.Context) error { return nil }, nil
	}

	if cfg.ServiceName == "" {
		cfg.ServiceName = defaultTracerName
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(cfg.ServiceVersion),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create resource")
	}

	// Endpoint and headers come from OTEL_EXPORTER_OTLP_* environment variables
	traceExporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create trace exporter")
	}

	tracerProvider := trace.NewTracerProvider(
		trace.WithResource(res),
		trace.WithSpanProcessor(trace.NewBatchSpanProcessor(
			traceExporter,
			trace.WithMaxExportBatchSize(512),
			trace.WithBatchTimeout(1*time.Second),
		)),
		trace.WithSampler(getSampler(cfg)),
	)

	otel.SetTracerProvider(tracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	shutdownFuncs := []func(context.Context) error{
		tracerProvider.Shutdown,
		traceExporter.Shutdown,
	}
	return func(ctx context.Context) error {
		var result *multierror.Error
		for _, fn := range shutdownFuncs {
			if err := fn(ctx); err != nil {
				result = multierror.Append(result, err)
			}
		}
		return result.ErrorOrNil()
	}, nil
}

func getSampler(cfg Config) trace.Sampler {
	switch cfg.SamplerType {
	case "never":
		return trace.NeverSample()
	case "ratio":
		return trace.ParentBased(trace.TraceIDRatioBased(cfg.SamplerRatio))
	case "always":
		fallthrough
	default:
		return trace.AlwaysSample()
	}
}
