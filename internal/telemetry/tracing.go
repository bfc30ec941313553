package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.21.0"
)

type Options struct {
	ServiceName    string
	ServiceVersion string
	// Export spans to Output (stdout when nil). With Export off spans are
	// still created, so trace ids reach the logs.
	Export      bool
	PrettyPrint bool
	Output      io.Writer
}

// InitTracing installs a global tracer provider and the W3C propagator.
func InitTracing(opts Options) (*trace.TracerProvider, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(opts.ServiceVersion),
	)

	providerOpts := []trace.TracerProviderOption{trace.WithResource(res)}

	if opts.Export {
		exporterOpts := []stdouttrace.Option{}
		if opts.PrettyPrint {
			exporterOpts = append(exporterOpts, stdouttrace.WithPrettyPrint())
		}
		if opts.Output != nil {
			exporterOpts = append(exporterOpts, stdouttrace.WithWriter(opts.Output))
		}
		exporter, err := stdouttrace.New(exporterOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
		}
		providerOpts = append(providerOpts, trace.WithBatcher(exporter))
	}

	tp := trace.NewTracerProvider(providerOpts...)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp, nil
}

func ShutdownTracing(ctx context.Context, tp *trace.TracerProvider) error {
	return tp.Shutdown(ctx)
}
