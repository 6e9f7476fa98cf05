// Package cqrs provides the Command Query Responsibility Segregation building blocks
// used by the mediator.
//
// Messages declare their shape by embedding a marker from the query or command
// subpackage. Handlers return a result.Result envelope and can be decorated with
// wrappers for cross-cutting concerns such as tracing, logging and recovery.
package cqrs

import (
	"context"

	"github.com/rise-and-shine/mediator/result"
)

// Handler handles a message of type M and produces a result of type R.
// query.Handler, command.Handler and command.VoidHandler share this method set.
type Handler[M, R any] interface {
	Handle(ctx context.Context, msg M) result.Result[R]
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[M, R any] func(ctx context.Context, msg M) result.Result[R]

func (f HandlerFunc[M, R]) Handle(ctx context.Context, msg M) result.Result[R] {
	return f(ctx, msg)
}

// WrapFunc decorates a handler.
type WrapFunc[M, R any] func(Handler[M, R]) Handler[M, R]

// Chain applies wraps to h in the given order. The last wrap becomes the outermost
// one and runs first.
func Chain[M, R any](h Handler[M, R], wraps ...WrapFunc[M, R]) Handler[M, R] {
	for _, wrap := range wraps {
		if wrap != nil {
			h = wrap(h)
		}
	}
	return h
}
