package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const (
	ServiceName = "aadhaar-dataset-processor"
	TracerName  = "aadhaarcli"
)

// OTelConfig holds OpenTelemetry configuration for the batch pipeline.
// Only tracing is carried: a run-to-completion job has no scrape surface
// for a metrics endpoint.
type OTelConfig struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	// Writer receives exported spans; defaults to the trace log file.
	Writer io.Writer
}

// OTelProviders holds the initialized tracing provider and tracer.
type OTelProviders struct {
	TracerProvider *sdktrace.TracerProvider
	Tracer         trace.Tracer
}

// InitializeOTel sets up tracing with the stdout span exporter.
// Returns nil providers when tracing is disabled.
func InitializeOTel(cfg *OTelConfig, logger *slog.Logger) (*OTelProviders, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}

	res, err := resource.Merge(resource.Default(), resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.ServiceVersion),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create otel resource: %w", err)
	}

	opts := []stdouttrace.Option{stdouttrace.WithPrettyPrint()}
	if cfg.Writer != nil {
		opts = append(opts, stdouttrace.WithWriter(cfg.Writer))
	}
	exporter, err := stdouttrace.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)

	logger.Info("OpenTelemetry tracing initialized",
		slog.String("service", cfg.ServiceName),
		slog.String("version", cfg.ServiceVersion))

	return &OTelProviders{
		TracerProvider: tp,
		Tracer:         tp.Tracer(TracerName),
	}, nil
}

// Shutdown flushes and stops the tracer provider.
func (p *OTelProviders) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	return p.TracerProvider.Shutdown(ctx)
}
