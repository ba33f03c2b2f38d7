// Package tracing installs the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Shutdown flushes and stops the provider.
type Shutdown func(context.Context) error

func noop(context.Context) error { return nil }

// Init installs a tracer provider that writes spans to w. When disabled the
// global no-op provider stays in place and Init returns a no-op Shutdown.
func Init(ctx context.Context, logger *slog.Logger, serviceName string, enabled bool, w io.Writer) Shutdown {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
	if !enabled {
		return noop
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		attribute.String("service.name", serviceName),
	))
	if err != nil {
		logger.WarnContext(ctx, "otel resource init failed (continuing)", "error", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		logger.WarnContext(ctx, "otel exporter init failed, tracing disabled", "error", err)
		return noop
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	logger.InfoContext(ctx, "otel tracing initialized", "service", serviceName)
	return tp.Shutdown
}
