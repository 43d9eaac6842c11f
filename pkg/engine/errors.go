package engine

import "errors"

var (
	// ErrNotFound is returned when a template name matches no known suffix
	// convention on the configured resolver.
	ErrNotFound = errors.New("template not found")

	// ErrMaxDepth is returned when extension or include nesting exceeds the
	// engine's depth guard. Template graphs with cycles hit this instead of
	// exhausting the call stack.
	ErrMaxDepth = errors.New("maximum composition depth exceeded")
)
