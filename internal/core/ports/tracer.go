package ports

import "context"

// EndSpan finishes a span, recording err when non-nil.
type EndSpan func(err error)

// Tracer opens spans around engine invocations.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// StartSpan opens a span with the given name and returns the derived
	// context together with the function that closes the span.
	StartSpan(ctx context.Context, name string) (context.Context, EndSpan)
}
