// Package views re-exports the engine, proxy and builder surface so callers
// can depend on a single import path. The implementations live under pkg/.
package views

import (
	"github.com/goliatone/go-views/pkg/engine"
	"github.com/goliatone/go-views/pkg/value"
)

// Engine is the rendering frontend; see pkg/engine.
type Engine = engine.Engine

// View is the receiver template bodies execute against.
type View = engine.View

// Body is one executable template body.
type Body = engine.Body

// Resolver maps concrete template names to bodies.
type Resolver = engine.Resolver

// Registry is the in-memory Resolver implementation.
type Registry = engine.Registry

// Option configures an Engine before construction.
type Option = engine.Option

// Value is the escaped-value proxy wrapped around every scope entry.
type Value = value.Value

// Mode selects the default stringification behavior of a wrapped value.
type Mode = value.Mode

// Escape modes re-exported for callers of the root package.
const (
	ModeHTML = value.ModeHTML
	ModeRaw  = value.ModeRaw
)

// Reserved variable names re-exported for callers of the root package.
const (
	ContentsVar = engine.ContentsVar
	TimeZoneVar = engine.TimeZoneVar
)

// New constructs an Engine around the given template resolver.
func New(resolver Resolver, opts ...Option) (*Engine, error) {
	return engine.New(resolver, opts...)
}

// NewRegistry constructs an empty template registry.
func NewRegistry() *Registry {
	return engine.NewRegistry()
}

// WithMaxDepth overrides the engine's composition depth guard.
func WithMaxDepth(depth int) Option {
	return engine.WithMaxDepth(depth)
}

// WithMinify minifies the final output of top-level HTML renders.
func WithMinify() Option {
	return engine.WithMinify()
}

// Wrap constructs an escaped value; see pkg/value.
func Wrap(name string, inner any, mode Mode, globals value.Globals) *Value {
	return value.Wrap(name, inner, mode, globals)
}

// HTMLEscape stringifies v and escapes the five HTML-significant characters.
func HTMLEscape(v any) string {
	return value.EscapeHTML(v)
}

// Error conditions re-exported for callers of the root package.
var (
	ErrNotFound     = engine.ErrNotFound
	ErrMaxDepth     = engine.ErrMaxDepth
	ErrReadOnly     = value.ErrReadOnly
	ErrTypeMismatch = value.ErrTypeMismatch
	ErrNotCallable  = value.ErrNotCallable
)
