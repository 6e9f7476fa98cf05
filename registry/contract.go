package registry

import (
	"reflect"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/event"
	"github.com/rise-and-shine/mediator/cqrs/query"
)

// Kind is the shape of a message.
type Kind uint8

const (
	KindQuery Kind = iota + 1
	KindCommand
	KindVoidCommand
	KindEvent
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindCommand:
		return "command"
	case KindVoidCommand:
		return "void_command"
	case KindEvent:
		return "event"
	default:
		return "unknown"
	}
}

// Contract identifies a handler: the message shape, the message type and the
// result type. Result is nil for void commands and events.
type Contract struct {
	Kind    Kind
	Message reflect.Type
	Result  reflect.Type
}

// QueryContract returns the contract of handlers for queries Q producing R.
func QueryContract[Q query.Query[R], R any]() Contract {
	return Contract{Kind: KindQuery, Message: reflect.TypeFor[Q](), Result: reflect.TypeFor[R]()}
}

// CommandContract returns the contract of handlers for commands C producing R.
func CommandContract[C command.Command[R], R any]() Contract {
	return Contract{Kind: KindCommand, Message: reflect.TypeFor[C](), Result: reflect.TypeFor[R]()}
}

// VoidCommandContract returns the contract of handlers for commands C without a result.
func VoidCommandContract[C command.Void]() Contract {
	return Contract{Kind: KindVoidCommand, Message: reflect.TypeFor[C]()}
}

// EventContract returns the contract of handlers for events E.
func EventContract[E event.Event]() Contract {
	return Contract{Kind: KindEvent, Message: reflect.TypeFor[E]()}
}

func (c Contract) String() string {
	s := c.Kind.String() + " " + typeName(c.Message)
	if c.Result != nil {
		s += " -> " + typeName(c.Result)
	}
	return s
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

//nolint:gochecknoglobals // immutable interface types used for shape detection
var (
	queryMessageType   = reflect.TypeFor[query.Message]()
	commandMessageType = reflect.TypeFor[command.Message]()
	voidCommandType    = reflect.TypeFor[command.Void]()
)

// ShapesOf returns the shapes declared by t in dispatch priority order: query,
// command, void command. A well-formed message type declares exactly one.
func ShapesOf(t reflect.Type) []Kind {
	if t == nil {
		return nil
	}

	var kinds []Kind
	if t.Implements(queryMessageType) {
		kinds = append(kinds, KindQuery)
	}
	if t.Implements(commandMessageType) {
		kinds = append(kinds, KindCommand)
	}
	if t.Implements(voidCommandType) {
		kinds = append(kinds, KindVoidCommand)
	}
	return kinds
}
