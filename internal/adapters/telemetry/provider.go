package telemetry

import (
	"context"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/nanoindent/internal/core/domain"
	"go.trai.ch/zerr"
)

// Shutdown flushes and stops a tracer provider.
type Shutdown func(context.Context) error

// Setup installs the global tracer provider selected by settings. Spans from the stdout
// exporter are written to w. With no exporter the global provider is left untouched.
func Setup(settings domain.TelemetrySettings, w io.Writer) (Shutdown, error) {
	switch settings.TraceExporter {
	case "", domain.TraceExporterNone:
		return func(context.Context) error { return nil }, nil
	case domain.TraceExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return nil, zerr.Wrap(err, "create stdout trace exporter")
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exporter),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		return tp.Shutdown, nil
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, "unknown trace exporter"), "exporter", settings.TraceExporter)
	}
}
