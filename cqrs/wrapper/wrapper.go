// Package wrapper provides middleware for CQRS handlers.
//
// Every wrapper is a cqrs.WrapFunc and works for queries, commands and void
// commands alike. Wrappers are applied at registration:
//
//	registry.AddQuery(b, handler,
//		wrapper.NewValidationWrapper[GetUser, UserDTO](),
//		wrapper.NewLoggerWrapper[GetUser, UserDTO](log),
//		wrapper.NewTracingWrapper[GetUser, UserDTO](),
//		wrapper.NewMetaInjectWrapper[GetUser, UserDTO](),
//	)
//
// The last wrapper listed runs first.
package wrapper

import (
	"fmt"
	"reflect"

	"github.com/rise-and-shine/mediator/cqrs/command"
	"github.com/rise-and-shine/mediator/cqrs/query"
)

// Named lets a message override the operation name used in logs, spans and alerts.
type Named interface {
	OperationID() string
}

// operationID returns the operation name of msg: its OperationID if it has
// one, otherwise the qualified type name such as "users.GetUserByID".
func operationID[M any](msg M) string {
	if n, ok := any(msg).(Named); ok {
		return n.OperationID()
	}
	return typeName[M]()
}

func typeName[M any]() string {
	return fmt.Sprint(reflect.TypeFor[M]())
}

// messageKind returns the shape M declares.
func messageKind[M any]() string {
	var msg M
	switch any(msg).(type) {
	case query.Message:
		return "query"
	case command.Message:
		return "command"
	case command.Void:
		return "void_command"
	default:
		return "unknown"
	}
}
