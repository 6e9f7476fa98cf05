// Package event defines domain events and their handlers.
//
// Unlike queries and commands, an event may have any number of handlers, and
// handlers report plain errors instead of result envelopes.
package event

import "context"

// Event is a domain event.
type Event interface {
	// EventName returns a stable name used in logs and traces.
	EventName() string
}

// Handler reacts to events of type E.
type Handler[E Event] interface {
	Handle(ctx context.Context, e E) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[E Event] func(ctx context.Context, e E) error

func (f HandlerFunc[E]) Handle(ctx context.Context, e E) error {
	return f(ctx, e)
}
