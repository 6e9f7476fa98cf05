// Package dispatch routes queries and commands to their registered handlers.
//
// Typed calls know the message and result types statically and look the
// handler up directly:
//
//	res, err := dispatch.Query[users.GetUserByID, users.UserDTO](ctx, d, users.GetUserByID{ID: 7})
//
// Send accepts any message and classifies it at runtime by the shape its type
// declares, checked in the order query, command, void command:
//
//	res, err := dispatch.Send[users.UserDTO](ctx, d, msg)
//
// A returned error means the call could not be routed: a missing handler or a
// value that is not a message. Handler outcomes, including business failures,
// are always carried in the result.
package dispatch

import (
	"context"
	"fmt"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/registry"
	"github.com/rise-and-shine/mediator/result"
)

// Resolver looks up the handler registered for a contract. *registry.Registry
// implements it. Implementations must be safe for concurrent use.
type Resolver interface {
	Resolve(ctx context.Context, c registry.Contract) (registry.Handler, error)
}

// Dispatcher holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	resolver Resolver
	strict   bool
	logger   logger.Logger
}

// New creates a Dispatcher resolving handlers through resolver.
func New(resolver Resolver, opts ...Option) *Dispatcher {
	o := buildOptions(opts)
	return &Dispatcher{
		resolver: resolver,
		strict:   o.strict,
		logger:   o.logger,
	}
}

// Go doesn't support generic methods, so the typed calls are package functions.

// Query sends q to its handler and returns the handler's result unchanged.
func Query[Q query.Query[R], R any](ctx context.Context, d *Dispatcher, q Q) (result.Result[R], error) {
	c := registry.QueryContract[Q, R]()

	h, err := d.resolver.Resolve(ctx, c)
	if err != nil {
		return result.Failure[R](err), err
	}

	typed, ok := h.Instance().(query.Handler[Q, R])
	if !ok {
		err = invalidHandlerContract(h, c)
		return result.Failure[R](err), err
	}

	return typed.Handle(ctx, q), nil
}

// Command sends cmd to its handler and returns the handler's result unchanged.
func Command[C command.Command[R], R any](ctx context.Context, d *Dispatcher, cmd C) (result.Result[R], error) {
	c := registry.CommandContract[C, R]()

	h, err := d.resolver.Resolve(ctx, c)
	if err != nil {
		return result.Failure[R](err), err
	}

	typed, ok := h.Instance().(command.Handler[C, R])
	if !ok {
		err = invalidHandlerContract(h, c)
		return result.Failure[R](err), err
	}

	return typed.Handle(ctx, cmd), nil
}

// VoidCommand sends cmd to its handler and returns the handler's result unchanged.
func VoidCommand[C command.Void](ctx context.Context, d *Dispatcher, cmd C) (result.Result[result.Empty], error) {
	c := registry.VoidCommandContract[C]()

	h, err := d.resolver.Resolve(ctx, c)
	if err != nil {
		return result.Fail(err), err
	}

	typed, ok := h.Instance().(command.VoidHandler[C])
	if !ok {
		err = invalidHandlerContract(h, c)
		return result.Fail(err), err
	}

	return typed.Handle(ctx, cmd), nil
}

func invalidHandlerContract(h registry.Handler, c registry.Contract) error {
	return errx.New("[dispatch]: resolved handler does not implement the requested contract",
		errx.WithCode(CodeInvalidHandlerContract),
		errx.WithDetails(errx.D{
			"contract": c.String(),
			"handler":  fmt.Sprintf("%T", h.Instance()),
		}),
	)
}
