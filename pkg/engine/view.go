package engine

import (
	"bytes"
	"fmt"

	"github.com/goliatone/go-views/pkg/value"
)

// View is the receiver a template body executes against: its window onto the
// merged variable scope, its output buffer, and the composition surface
// (extends/include). A View is only valid for the duration of its body call.
type View struct {
	engine *Engine
	frame  *frame
	name   string
	mode   value.Mode
	depth  int
	buf    *bytes.Buffer
	raw    map[string]any
	scope  map[string]*value.Value
	result any
}

// Name reports the resolved template name, suffix included.
func (v *View) Name() string { return v.name }

// Mode reports the escape mode fixed by name resolution.
func (v *View) Mode() value.Mode { return v.mode }

// Var returns the named scope entry as an escaped value, nil when absent or
// bound to nil. Access chains starting here stay in the template's mode.
func (v *View) Var(name string) *value.Value {
	return v.scope[name]
}

// Vars returns a copy of the merged raw scope. Mutating the copy does not
// affect the render call.
func (v *View) Vars() map[string]any {
	out := make(map[string]any, len(v.raw))
	for k, entry := range v.raw {
		out[k] = entry
	}
	return out
}

// Write implements io.Writer over the open output buffer.
func (v *View) Write(p []byte) (int, error) {
	return v.buf.Write(p)
}

// WriteString appends s to the open output buffer.
func (v *View) WriteString(s string) (int, error) {
	return v.buf.WriteString(s)
}

// Print writes the operands to the output buffer. Wrapped values stringify
// through their escape mode.
func (v *View) Print(args ...any) {
	fmt.Fprint(v.buf, args...)
}

// Printf writes a formatted string to the output buffer.
func (v *View) Printf(format string, args ...any) {
	fmt.Fprintf(v.buf, format, args...)
}

// Extends declares the parent template this body composes into. Rendering is
// deferred until the body completes; calling Extends again overwrites the
// earlier declaration (last write wins).
func (v *View) Extends(name string, vars map[string]any) {
	v.frame.extendTarget = name
	v.frame.extendVars = vars
}

// Include synchronously renders the named template with vars scoped to that
// nested call only and writes the result into the open output buffer at the
// point of the call. Outer frames stay visible to the nested render unless
// shadowed; vars do not leak back into the caller's scope.
func (v *View) Include(name string, vars map[string]any) error {
	out, _, err := v.engine.render(name, vars, v.depth+1)
	if err != nil {
		return err
	}
	_, err = v.buf.WriteString(out)
	return err
}

// SetResult assigns the out-of-band return value propagated to RenderResult
// callers.
func (v *View) SetResult(result any) {
	v.result = result
}

// Check delegates to the engine's uniform truthiness test.
func (v *View) Check(x any) bool {
	return v.engine.Check(x)
}
