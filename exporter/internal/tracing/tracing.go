package tracing

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Supported values of exporter.tracing.
const (
	ModeNone   = "none"
	ModeStdout = "stdout"
)

// ServiceName is reported as service.name on every exported span.
const ServiceName = "siemens9330-exporter"

// Setup configures global tracing for mode and returns a shutdown func that
// flushes buffered spans. The shutdown func is never nil.
func Setup(mode string, w io.Writer) (func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	switch mode {
	case ModeNone, "":
		return noop, nil
	case ModeStdout:
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w))
		if err != nil {
			return noop, fmt.Errorf("tracing: stdout exporter: %w", err)
		}
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithBatcher(exp),
			sdktrace.WithResource(resource.NewSchemaless(
				attribute.String("service.name", ServiceName),
			)),
		)
		otel.SetTracerProvider(tp)
		return tp.Shutdown, nil
	default:
		return noop, fmt.Errorf("tracing: unknown mode %q", mode)
	}
}
