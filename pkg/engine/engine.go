package engine

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-views/pkg/value"
)

// Reserved variable names consulted by the engine and the value proxy.
const (
	// ContentsVar holds the child's rendered output during extension
	// composition. It is always present in the parent's scope and cannot be
	// overridden by extend variables.
	ContentsVar = "_contents"

	// TimeZoneVar, when set in the global scope, is consulted by date
	// formatting on wrapped values.
	TimeZoneVar = "_timeZone"
)

const defaultMaxDepth = 64

// Option configures an Engine before construction.
type Option func(*config)

type config struct {
	maxDepth int
	minify   bool
}

// WithMaxDepth overrides the composition depth guard. Nesting (extension
// chains plus includes) beyond the limit fails with ErrMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(cfg *config) {
		if depth > 0 {
			cfg.maxDepth = depth
		}
	}
}

// WithMinify minifies the final output of top-level HTML renders. Raw-mode
// renders and nested composition steps are left untouched.
func WithMinify() Option {
	return func(cfg *config) {
		cfg.minify = true
	}
}

// Engine is the rendering frontend. The global scope persists for the life of
// the engine; the render-context stack is reset per top-level render call.
// One render call at a time: the stack is mutated by push/pop, so concurrent
// entry from independent goroutines requires external serialization.
type Engine struct {
	resolver Resolver
	maxDepth int
	minify   bool

	mu      sync.RWMutex
	globals map[string]any

	frames []*frame
}

// frame is one render-context stack frame: the variables local to a render
// call plus the pending extension target declared by its body.
type frame struct {
	vars         map[string]any
	extendTarget string
	extendVars   map[string]any
}

// New constructs an Engine around the given template resolver.
func New(resolver Resolver, opts ...Option) (*Engine, error) {
	if resolver == nil {
		return nil, errors.New("engine: resolver is required")
	}

	cfg := &config{maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	return &Engine{
		resolver: resolver,
		maxDepth: cfg.maxDepth,
		minify:   cfg.minify,
		globals:  make(map[string]any),
	}, nil
}

// Set stores a raw value in the global scope. Globals participate in every
// scope merge at the lowest priority.
func (e *Engine) Set(name string, v any) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.globals[name] = v
}

// Get reads a raw value from the global scope, nil when absent.
func (e *Engine) Get(name string) any {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.globals[name]
}

// Global implements value.Globals.
func (e *Engine) Global(name string) (any, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	v, ok := e.globals[name]
	return v, ok
}

// Check is the uniform truthiness test for raw and wrapped values alike: nil
// and falsy raw values are false, wrapped values delegate to their IsTrue
// predicate.
func (e *Engine) Check(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case *value.Value:
		return x.IsTrue()
	case bool:
		return x
	default:
		return value.Wrap("", v, value.ModeRaw, nil).IsTrue()
	}
}

// HTMLEscape stringifies v and escapes the five HTML-significant characters.
// It is a re-export of the proxy's escape routine, the single source of truth
// for escaping across the engine.
func HTMLEscape(v any) string {
	return value.EscapeHTML(v)
}

// Render resolves name through the suffix conventions, renders its body
// against vars and returns the composed output.
func (e *Engine) Render(name string, vars map[string]any) (string, error) {
	out, _, err := e.render(name, vars, 0)
	return out, err
}

// RenderResult behaves like Render and additionally propagates the
// out-of-band result a body may have assigned via View.SetResult.
func (e *Engine) RenderResult(name string, vars map[string]any) (string, any, error) {
	return e.render(name, vars, 0)
}

func (e *Engine) render(name string, vars map[string]any, depth int) (string, any, error) {
	if depth >= e.maxDepth {
		return "", nil, fmt.Errorf("engine: render %q at depth %d: %w", name, depth, ErrMaxDepth)
	}

	body, mode, resolved, err := e.resolve(name)
	if err != nil {
		return "", nil, err
	}

	fr := &frame{vars: vars}
	e.frames = append(e.frames, fr)
	defer func() {
		e.frames = e.frames[:len(e.frames)-1]
	}()

	view := &View{
		engine: e,
		frame:  fr,
		name:   resolved,
		mode:   mode,
		depth:  depth,
		buf:    &bytes.Buffer{},
	}
	view.raw = e.mergedVars()
	view.scope = e.wrapScope(view.raw, mode)

	if err := body(view); err != nil {
		return "", nil, fmt.Errorf("engine: render %q: %w", resolved, err)
	}
	contents := view.buf.String()

	if fr.extendTarget != "" {
		parentVars := make(map[string]any, len(fr.extendVars)+1)
		for k, v := range fr.extendVars {
			parentVars[k] = v
		}
		parentVars[ContentsVar] = contents

		parentOut, parentResult, err := e.render(fr.extendTarget, parentVars, depth+1)
		if err != nil {
			return "", nil, err
		}
		if view.result == nil {
			view.result = parentResult
		}
		contents = parentOut
	}

	if depth == 0 && e.minify && mode == value.ModeHTML {
		contents = minifyHTML(contents)
	}
	return contents, view.result, nil
}

// resolve probes the suffix conventions in fixed precedence: a name already
// carrying a recognized suffix resolves directly, otherwise the plain markup
// convention, the explicit markup convention and finally the raw convention
// are tried. First existing match wins and fixes the escape mode.
func (e *Engine) resolve(name string) (Body, value.Mode, string, error) {
	for _, cand := range candidates(name) {
		if body, ok := e.resolver.Resolve(cand.name); ok {
			return body, cand.mode, cand.name, nil
		}
	}
	return nil, value.ModeHTML, "", fmt.Errorf("engine: template %q: %w", name, ErrNotFound)
}

type candidate struct {
	name string
	mode value.Mode
}

func candidates(name string) []candidate {
	switch {
	case strings.HasSuffix(name, ".tpl.html"):
		return []candidate{{name, value.ModeHTML}}
	case strings.HasSuffix(name, ".html"):
		return []candidate{{name, value.ModeHTML}}
	case strings.HasSuffix(name, ".txt"):
		return []candidate{{name, value.ModeRaw}}
	}
	return []candidate{
		{name + ".html", value.ModeHTML},
		{name + ".tpl.html", value.ModeHTML},
		{name + ".txt", value.ModeRaw},
	}
}

// mergedVars builds the raw scope for the current render call: global scope
// first, then every active frame bottom to top, later frames shadowing
// earlier on key collision.
func (e *Engine) mergedVars() map[string]any {
	merged := make(map[string]any)
	e.mu.RLock()
	for k, v := range e.globals {
		merged[k] = v
	}
	e.mu.RUnlock()

	for _, fr := range e.frames {
		for k, v := range fr.vars {
			merged[k] = v
		}
	}
	return merged
}

// wrapScope wraps every merged entry as an escaped value in the template's
// mode. The injected _contents variable is always wrapped in HTML mode, so a
// parent template must bypass escaping explicitly to emit it unescaped.
func (e *Engine) wrapScope(raw map[string]any, mode value.Mode) map[string]*value.Value {
	scope := make(map[string]*value.Value, len(raw))
	for k, v := range raw {
		entryMode := mode
		if k == ContentsVar {
			entryMode = value.ModeHTML
		}
		scope[k] = value.Wrap(k, v, entryMode, e)
	}
	return scope
}
