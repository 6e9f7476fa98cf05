package dispatch

import (
	"context"
	"errors"
	"reflect"

	"github.com/code19m/errx"

	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/logger"
	"github.com/rise-and-shine/mediator/registry"
)

// EventResolver lists the handlers registered for an event type.
// *registry.Registry implements it.
type EventResolver interface {
	ResolveAll(ctx context.Context, eventType reflect.Type) []registry.Handler
}

// EventDispatcher delivers domain events to every handler registered for them.
type EventDispatcher struct {
	resolver EventResolver
	logger   logger.Logger
}

// NewEventDispatcher creates an EventDispatcher resolving handlers through resolver.
func NewEventDispatcher(resolver EventResolver, opts ...Option) *EventDispatcher {
	o := buildOptions(opts)
	return &EventDispatcher{
		resolver: resolver,
		logger:   o.logger.Named("events"),
	}
}

// Dispatch delivers events in order. Each event goes to all of its handlers in
// registration order, even when some of them fail. Failures are joined into one
// error with code EVENT_HANDLER_FAILED.
func (d *EventDispatcher) Dispatch(ctx context.Context, events ...event.Event) error {
	var errs []error

	for _, e := range events {
		if e == nil {
			continue
		}

		log := d.logger.WithContext(ctx).With("event", e.EventName())

		handlers := d.resolver.ResolveAll(ctx, reflect.TypeOf(e))
		if len(handlers) == 0 {
			log.Debug("[dispatch]: no handlers registered for event")
			continue
		}

		for _, h := range handlers {
			out, err := h.Invoke(ctx, e)
			if err == nil && !out.IsSuccess() {
				err = out.Err()
			}
			if err != nil {
				log.With("contract", h.Contract().String()).Warnx(err)
				errs = append(errs, err)
			}
		}
	}

	if len(errs) == 0 {
		return nil
	}

	return errx.Wrap(errors.Join(errs...), errx.WithCode(CodeEventHandlerFailed))
}
