package wrapper

import (
	"context"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/meta"
	"github.com/rise-and-shine/mediator/result"
	"github.com/rise-and-shine/mediator/tracing"
)

// MetaInjectWrapper puts request metadata into the context for downstream
// wrappers, loggers and the handler itself.
type MetaInjectWrapper[M, R any] struct {
	kind string
	next cqrs.Handler[M, R]
}

// NewMetaInjectWrapper creates a MetaInjectWrapper. A trace id already present
// in the context is kept.
func NewMetaInjectWrapper[M, R any]() cqrs.WrapFunc[M, R] {
	return func(next cqrs.Handler[M, R]) cqrs.Handler[M, R] {
		return &MetaInjectWrapper[M, R]{kind: messageKind[M](), next: next}
	}
}

func (w *MetaInjectWrapper[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	metadata := map[meta.ContextKey]string{ //nolint:exhaustive // we are not using all keys
		meta.ServiceName:    meta.GetServiceName(),
		meta.ServiceVersion: meta.GetServiceVersion(),
		meta.OperationID:    operationID(msg),
		meta.MessageKind:    w.kind,
	}
	if _, err := meta.ShouldGetMeta(ctx, meta.TraceID); err != nil {
		metadata[meta.TraceID] = tracing.GetStartingTraceID(ctx)
	}

	ctx = meta.InjectMetaToContext(ctx, metadata)

	return w.next.Handle(ctx, msg)
}
