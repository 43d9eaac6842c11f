package value

import "errors"

var (
	// ErrReadOnly is returned by every mutation attempt on a wrapped value.
	// Templates are read-only views over their input scope.
	ErrReadOnly = errors.New("wrapped values are read-only")

	// ErrTypeMismatch is returned when structural access is attempted on an
	// inner value whose type does not support it.
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrNotCallable is returned when invocation syntax is used on an inner
	// value that is not callable, or when a named method does not exist.
	ErrNotCallable = errors.New("value is not callable")
)
