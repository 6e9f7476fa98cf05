package dispatch

import (
	"context"
	"fmt"
	"reflect"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/query"
	"github.com/rise-and-shine/mediator/registry"
	"github.com/rise-and-shine/mediator/result"
)

// Send classifies msg, resolves its handler and invokes it.
//
// When the handler's result type is V its result is returned unchanged. A void
// command yields a success with the zero V, or the handler's failure. Any other
// result type is a caller mistake: the handler's failure is returned as is,
// while a success becomes a failure carrying result.ErrNone. In strict mode
// that success is reported as an error with code RESULT_TYPE_MISMATCH instead.
func Send[V any](ctx context.Context, d *Dispatcher, msg any) (result.Result[V], error) {
	c, err := classify(msg)
	if err != nil {
		return result.Failure[V](err), err
	}

	h, err := d.resolver.Resolve(ctx, c)
	if err != nil {
		err = errx.Wrap(err,
			errx.WithCode(CodeHandlerResolution),
			errx.WithDetails(errx.D{"contract": c.String()}),
		)
		return result.Failure[V](err), err
	}

	out, err := h.Invoke(ctx, msg)
	if err != nil {
		return result.Failure[V](err), err
	}

	return unwrap[V](ctx, d, c, out)
}

// Sender binds Send to a dispatcher and a value type.
type Sender[V any] struct {
	d *Dispatcher
}

// NewSender creates a Sender for results of type V.
func NewSender[V any](d *Dispatcher) Sender[V] {
	return Sender[V]{d: d}
}

// Send is Send[V] on the bound dispatcher.
func (s Sender[V]) Send(ctx context.Context, msg any) (result.Result[V], error) {
	return Send[V](ctx, s.d, msg)
}

// classify derives the contract of msg from the first shape it declares.
func classify(msg any) (registry.Contract, error) {
	if v := reflect.ValueOf(msg); v.Kind() == reflect.Pointer && v.IsNil() {
		return registry.Contract{}, invalidShape(msg)
	}

	switch m := msg.(type) {
	case query.Message:
		return registry.Contract{
			Kind:    registry.KindQuery,
			Message: reflect.TypeOf(msg),
			Result:  m.QueryResultType(),
		}, nil
	case command.Message:
		return registry.Contract{
			Kind:    registry.KindCommand,
			Message: reflect.TypeOf(msg),
			Result:  m.CommandResultType(),
		}, nil
	case command.Void:
		return registry.Contract{
			Kind:    registry.KindVoidCommand,
			Message: reflect.TypeOf(msg),
		}, nil
	default:
		return registry.Contract{}, invalidShape(msg)
	}
}

func invalidShape(msg any) error {
	return errx.New("[dispatch]: value is not a query or a command",
		errx.WithCode(CodeInvalidMessageShape),
		errx.WithDetails(errx.D{"type": fmt.Sprintf("%T", msg)}),
	)
}

func unwrap[V any](
	ctx context.Context,
	d *Dispatcher,
	c registry.Contract,
	out result.Outcome,
) (result.Result[V], error) {
	if res, ok := out.(result.Result[V]); ok {
		return res, nil
	}

	if c.Kind == registry.KindVoidCommand {
		if out.IsSuccess() {
			var zero V
			return result.Success(zero), nil
		}
		return result.Failure[V](out.Err()), nil
	}

	if !out.IsSuccess() {
		return result.Failure[V](out.Err()), nil
	}

	mismatch := errx.New("[dispatch]: handler result type differs from the requested one",
		errx.WithCode(CodeResultTypeMismatch),
		errx.WithDetails(errx.D{
			"contract":  c.String(),
			"requested": fmt.Sprint(reflect.TypeFor[V]()),
		}),
	)
	if d.strict {
		return result.Failure[V](mismatch), mismatch
	}

	d.logger.WithContext(ctx).Warnx(mismatch)
	return result.Failure[V](result.ErrNone), nil
}
