// Package query defines the query message shape and its handler contract.
//
// Queries are read-only requests producing a value. A message type becomes a query
// by embedding Of[R]:
//
//	type GetUserByID struct {
//	    query.Of[UserDTO]
//	    ID int
//	}
package query

import (
	"context"
	"reflect"

	"github.com/rise-and-shine/mediator/result"
)

// Message is satisfied by every query regardless of its result type.
type Message interface {
	// QueryResultType returns the declared result type.
	QueryResultType() reflect.Type
}

// Query is satisfied by queries producing R. Only types embedding Of[R] satisfy it.
type Query[R any] interface {
	Message
	queryResult() R
}

// Of is the marker that declares a query producing R.
type Of[R any] struct{}

func (Of[R]) QueryResultType() reflect.Type {
	return reflect.TypeFor[R]()
}

func (Of[R]) queryResult() (r R) {
	return r
}

// Handler handles queries of type Q.
type Handler[Q, R any] interface {
	Handle(ctx context.Context, q Q) result.Result[R]
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc[Q, R any] func(ctx context.Context, q Q) result.Result[R]

func (f HandlerFunc[Q, R]) Handle(ctx context.Context, q Q) result.Result[R] {
	return f(ctx, q)
}
