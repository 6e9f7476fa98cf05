package wrapper

import (
	"context"
	"time"

	"github.com/rise-and-shine/mediator/cqrs"
	"github.com/rise-and-shine/mediator/result"
)

// TimeoutWrapper bounds the handler's context with a deadline.
type TimeoutWrapper[M, R any] struct {
	timeout time.Duration
	next    cqrs.Handler[M, R]
}

func NewTimeoutWrapper[M, R any](timeout time.Duration) cqrs.WrapFunc[M, R] {
	return func(next cqrs.Handler[M, R]) cqrs.Handler[M, R] {
		return &TimeoutWrapper[M, R]{timeout: timeout, next: next}
	}
}

func (w *TimeoutWrapper[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	return w.next.Handle(ctx, msg)
}
