// Package result defines the envelope every handler returns.
//
// A Result is either a success carrying a value or a failure carrying an error.
// Business failures always travel inside a Result; Go errors returned next to a
// Result are reserved for wiring problems such as a missing handler.
package result

import (
	"errors"

	"github.com/code19m/errx"
)

// ErrNone is the empty error marker. It is stored by Failure when no error is given
// and used by the dispatcher when it cannot describe a failure any better.
var ErrNone = errors.New("result: no error information")

// Empty is the value type of results produced by commands without a result.
type Empty = struct{}

// Outcome is the type-erased view of a Result.
type Outcome interface {
	IsSuccess() bool
	Err() error
}

// Result is a success or failure envelope. The zero value is a success holding the
// zero value of T.
type Result[T any] struct {
	value T
	err   error
}

// Success returns a successful result holding value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value}
}

// Failure returns a failed result. A nil err is replaced by ErrNone.
func Failure[T any](err error) Result[T] {
	if err == nil {
		err = ErrNone
	}
	return Result[T]{err: err}
}

// Ok returns a successful result without a value.
func Ok() Result[Empty] {
	return Result[Empty]{}
}

// Fail returns a failed result without a value.
func Fail(err error) Result[Empty] {
	return Failure[Empty](err)
}

func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

func (r Result[T]) IsFailure() bool {
	return r.err != nil
}

// Value returns the carried value. It is the zero value of T for failures.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the failure error or nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Unwrap returns the value and the error.
func (r Result[T]) Unwrap() (T, error) {
	return r.value, r.err
}

// ValueOr returns the value on success and fallback otherwise.
func (r Result[T]) ValueOr(fallback T) T {
	if r.err != nil {
		return fallback
	}
	return r.value
}

// Code returns the errx code of the failure. It is empty on success and for
// failures that do not carry an errx error.
func (r Result[T]) Code() string {
	if r.err == nil {
		return ""
	}

	var e errx.ErrorX
	if errors.As(r.err, &e) {
		return e.Code()
	}
	return ""
}

// Map applies fn to the value of a successful result. Failures are carried over.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Result[U]{err: r.err}
	}
	return Success(fn(r.value))
}
