package wrapper

import (
	"context"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/result"
	"github.com/rise-and-shine/mediator/val"
)

// ValidationWrapper rejects messages failing their `validate` struct tags
// before the handler runs.
type ValidationWrapper[M, R any] struct {
	next cqrs.Handler[M, R]
}

// NewValidationWrapper creates a ValidationWrapper. Invalid messages produce a
// failure with code val.CodeValidationFailed listing the offending fields.
func NewValidationWrapper[M, R any]() cqrs.WrapFunc[M, R] {
	return func(next cqrs.Handler[M, R]) cqrs.Handler[M, R] {
		return &ValidationWrapper[M, R]{next: next}
	}
}

func (w *ValidationWrapper[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	if err := val.ValidateSchema(msg); err != nil {
		return result.Failure[R](err)
	}
	return w.next.Handle(ctx, msg)
}
