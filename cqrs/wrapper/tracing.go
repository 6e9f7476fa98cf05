package wrapper

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/result"
)

const tracerName = "github.com/rise-and-shine/mediator/cqrs"

// TracingWrapper starts a span around every handled message.
type TracingWrapper[M, R any] struct {
	tracer trace.Tracer
	kind   string
	next   cqrs.Handler[M, R]
}

// NewTracingWrapper creates a TracingWrapper using the global tracer provider.
// The span is named after the message's operation id; failures are recorded on it.
func NewTracingWrapper[M, R any]() cqrs.WrapFunc[M, R] {
	return func(next cqrs.Handler[M, R]) cqrs.Handler[M, R] {
		return &TracingWrapper[M, R]{
			tracer: otel.Tracer(tracerName),
			kind:   messageKind[M](),
			next:   next,
		}
	}
}

func (w *TracingWrapper[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	ctx, span := w.tracer.Start(ctx, operationID(msg),
		trace.WithAttributes(attribute.String("cqrs.message_kind", w.kind)),
	)
	defer span.End()

	res := w.next.Handle(ctx, msg)

	if err := res.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return res
}
