// Package tracing configures OpenTelemetry for the evaluation service.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Setup installs a tracer provider and returns the service tracer together
// with a shutdown function to flush spans on exit. An empty endpoint keeps
// tracing local: spans are created but exported nowhere, so handlers can
// start spans unconditionally.
func Setup(logger *zap.Logger, serviceName, version, endpoint string) (trace.Tracer, func(context.Context) error, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(version),
		),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create tracing resource: %w", err)
	}

	var exporter sdktrace.SpanExporter
	if endpoint != "" {
		exporter, err = otlptracehttp.New(context.Background(),
			otlptracehttp.WithEndpoint(endpoint),
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		logger.Info("exporting traces over OTLP",
			zap.String("op", "tracing.Setup"),
			zap.String("endpoint", endpoint),
		)
	} else {
		exporter = noopExporter{}
		logger.Debug("tracing endpoint not configured, spans will not be exported",
			zap.String("op", "tracing.Setup"),
		)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return otel.Tracer(serviceName), provider.Shutdown, nil
}

// noopExporter satisfies the exporter contract without sending spans
// anywhere, for runs without a collector.
type noopExporter struct{}

func (noopExporter) ExportSpans(context.Context, []sdktrace.ReadOnlySpan) error { return nil }

func (noopExporter) Shutdown(context.Context) error { return nil }
