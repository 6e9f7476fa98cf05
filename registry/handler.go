package registry

import (
	"context"
	"fmt"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/result"
)

// Handler is a resolved handler. Instance returns the typed handler with its
// wrappers applied; Invoke calls it with a message whose static type is unknown.
type Handler interface {
	Contract() Contract
	Instance() any
	Invoke(ctx context.Context, msg any) (result.Outcome, error)
}

// Lifetime controls how handler instances are shared.
type Lifetime uint8

const (
	// Singleton handlers are created once and shared by every call.
	Singleton Lifetime = iota + 1
	// Scoped handlers are created once per scope, see WithScope. Outside of a
	// scope every resolve creates a fresh instance.
	Scoped
)

func (l Lifetime) String() string {
	switch l {
	case Singleton:
		return "singleton"
	case Scoped:
		return "scoped"
	default:
		return "unknown"
	}
}

// invoker calls instance with msg. It is bound at registration time, while the
// static message and result types are still known.
type invoker func(ctx context.Context, instance, msg any) (result.Outcome, error)

type entry struct {
	contract Contract
	lifetime Lifetime
	instance any
	factory  func() any
	invoke   invoker
}

type boundHandler struct {
	entry    *entry
	instance any
}

func (h boundHandler) Contract() Contract {
	return h.entry.contract
}

func (h boundHandler) Instance() any {
	return h.instance
}

func (h boundHandler) Invoke(ctx context.Context, msg any) (result.Outcome, error) {
	return h.entry.invoke(ctx, h.instance, msg)
}

func invokeQuery[Q query.Query[R], R any](ctx context.Context, instance, msg any) (result.Outcome, error) {
	q, ok := msg.(Q)
	if !ok {
		return nil, messageTypeMismatch[Q](msg)
	}
	h, ok := instance.(query.Handler[Q, R])
	if !ok {
		return nil, invalidHandler(instance, QueryContract[Q, R]())
	}
	return h.Handle(ctx, q), nil
}

func invokeCommand[C command.Command[R], R any](ctx context.Context, instance, msg any) (result.Outcome, error) {
	c, ok := msg.(C)
	if !ok {
		return nil, messageTypeMismatch[C](msg)
	}
	h, ok := instance.(command.Handler[C, R])
	if !ok {
		return nil, invalidHandler(instance, CommandContract[C, R]())
	}
	return h.Handle(ctx, c), nil
}

func invokeVoidCommand[C command.Void](ctx context.Context, instance, msg any) (result.Outcome, error) {
	c, ok := msg.(C)
	if !ok {
		return nil, messageTypeMismatch[C](msg)
	}
	h, ok := instance.(command.VoidHandler[C])
	if !ok {
		return nil, invalidHandler(instance, VoidCommandContract[C]())
	}
	return h.Handle(ctx, c), nil
}

func invokeEvent[E event.Event](ctx context.Context, instance, msg any) (result.Outcome, error) {
	e, ok := msg.(E)
	if !ok {
		return nil, messageTypeMismatch[E](msg)
	}
	h, ok := instance.(event.Handler[E])
	if !ok {
		return nil, invalidHandler(instance, EventContract[E]())
	}
	if err := h.Handle(ctx, e); err != nil {
		return result.Fail(err), nil
	}
	return result.Ok(), nil
}

func messageTypeMismatch[M any](msg any) error {
	var want M
	return errx.New("[registry]: handler invoked with a message of another type",
		errx.WithCode(CodeMessageTypeMismatch),
		errx.WithDetails(errx.D{
			"expected": fmt.Sprintf("%T", want),
			"actual":   fmt.Sprintf("%T", msg),
		}))
}

func invalidHandler(instance any, c Contract) error {
	return errx.New("[registry]: handler does not implement its contract",
		errx.WithCode(CodeInvalidHandler),
		errx.WithDetails(errx.D{
			"contract": c.String(),
			"handler":  fmt.Sprintf("%T", instance),
		}))
}
