// Package telemetry implements the Tracer port on the OpenTelemetry API.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/bale/internal/core/ports"
)

var _ ports.Tracer = (*OTelTracer)(nil)

// OTelTracer opens spans through the global OTel tracer provider. Without a
// configured SDK the provider is a no-op, so instrumentation costs nothing
// until an embedding process installs an exporter.
type OTelTracer struct {
	tracer trace.Tracer
}

// NewOTelTracer creates a tracer with the given instrumentation name.
func NewOTelTracer(name string) *OTelTracer {
	return &OTelTracer{tracer: otel.Tracer(name)}
}

// StartSpan opens a span and returns the function that ends it.
func (t *OTelTracer) StartSpan(ctx context.Context, name string) (context.Context, ports.EndSpan) {
	ctx, span := t.tracer.Start(ctx, name)
	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}
