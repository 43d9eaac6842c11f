// Package engine drives template rendering: it resolves logical template
// names to bodies and escape modes through name-suffix conventions, merges the
// global scope with the active render-context stack, wraps every scope entry
// as an escaped value and executes template bodies against a buffered View.
// The composition controller implements the extends/include protocol on top
// of the same stack.
package engine
