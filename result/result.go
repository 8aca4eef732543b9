// Package result provides the uniform success/failure container returned by
// every client operation. Expected operational failures (transport errors,
// non-2xx responses) travel inside a Result; unwrapping the wrong variant is
// a programmer error and panics with a *ResultError.
package result

import "fmt"

// ResultError reports misuse of a Result accessor: Unwrap on a failure or
// UnwrapErr on a success.
type ResultError struct {
	Op      string
	Message string
}

func (e *ResultError) Error() string {
	return fmt.Sprintf("result: %s called on %s", e.Op, e.Message)
}

// Result is a two-variant container: a success carrying a value or a failure
// carrying an error.
type Result[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok wraps a value in a success result.
func Ok[T any](value T) Result[T] {
	return Result[T]{value: value, ok: true}
}

// Err wraps an error in a failure result. The error must be non-nil: a
// failure carrying nothing to report is programmer misuse and panics with a
// *ResultError, so UnwrapErr never hands callers a nil error.
func Err[T any](err error) Result[T] {
	if err == nil {
		panic(&ResultError{Op: "Err", Message: "nil error"})
	}
	return Result[T]{err: err}
}

// IsOk reports whether the result is the success variant.
func (r Result[T]) IsOk() bool {
	return r.ok
}

// Unwrap returns the carried value. It panics with a *ResultError when called
// on a failure; check IsOk first or use Get.
func (r Result[T]) Unwrap() T {
	if !r.ok {
		panic(&ResultError{Op: "Unwrap", Message: fmt.Sprintf("failure result (%v)", r.err)})
	}
	return r.value
}

// UnwrapErr returns the carried error. It panics with a *ResultError when
// called on a success.
func (r Result[T]) UnwrapErr() error {
	if r.ok {
		panic(&ResultError{Op: "UnwrapErr", Message: "success result"})
	}
	return r.err
}

// Get is the safe accessor: the carried value and whether it is valid.
func (r Result[T]) Get() (T, bool) {
	return r.value, r.ok
}

// UnwrapOr returns the carried value on success, or def on failure.
func (r Result[T]) UnwrapOr(def T) T {
	if !r.ok {
		return def
	}
	return r.value
}
