// Package command defines the command message shapes and their handler contracts.
//
// Commands represent operations that change state. A command either produces a
// value (embed Of[R]) or produces nothing (embed NoResult).
package command

import (
	"context"
	"reflect"

	"github.com/rise-and-shine/mediator/result"
)

// Message is satisfied by every command producing a value, whatever its type.
type Message interface {
	// CommandResultType returns the declared result type.
	CommandResultType() reflect.Type
}

// Command is satisfied by commands producing R. Only types embedding Of[R] satisfy it.
type Command[R any] interface {
	Message
	commandResult() R
}

// Void is satisfied by commands that produce no value.
type Void interface {
	voidCommand()
}

// Of is the marker that declares a command producing R.
type Of[R any] struct{}

func (Of[R]) CommandResultType() reflect.Type {
	return reflect.TypeFor[R]()
}

func (Of[R]) commandResult() (r R) {
	return r
}

// NoResult is the marker that declares a command without a result.
type NoResult struct{}

func (NoResult) voidCommand() {}

// Handler handles commands of type C producing R.
type Handler[C, R any] interface {
	Handle(ctx context.Context, cmd C) result.Result[R]
}

// VoidHandler handles commands of type C that produce no value.
type VoidHandler[C any] interface {
	Handle(ctx context.Context, cmd C) result.Result[result.Empty]
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[C, R any] func(ctx context.Context, cmd C) result.Result[R]

func (f HandlerFunc[C, R]) Handle(ctx context.Context, cmd C) result.Result[R] {
	return f(ctx, cmd)
}

// VoidHandlerFunc adapts a function to the VoidHandler interface.
type VoidHandlerFunc[C any] func(ctx context.Context, cmd C) result.Result[result.Empty]

func (f VoidHandlerFunc[C]) Handle(ctx context.Context, cmd C) result.Result[result.Empty] {
	return f(ctx, cmd)
}
