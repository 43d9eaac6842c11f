package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
)

// Mode selects the default stringification behavior of a wrapped value. It is
// fixed when the value is wrapped and inherited unchanged by every value an
// accessor produces.
type Mode int

const (
	// ModeHTML escapes the raw serialization on stringification.
	ModeHTML Mode = iota
	// ModeRaw emits the raw serialization unescaped.
	ModeRaw
)

func (m Mode) String() string {
	switch m {
	case ModeHTML:
		return "html"
	case ModeRaw:
		return "raw"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Globals provides read access to engine-level variables. The proxy consults
// it only to resolve the reserved _timeZone variable during date formatting;
// it never takes ownership of the engine.
type Globals interface {
	Global(name string) (any, bool)
}

// Value wraps one runtime value together with an escape mode. It is immutable
// from the outside: no operation mutates the inner value, and every accessor
// returns a new Value (or a plain result, for terminal operations).
//
// A nil inner value is never wrapped; Wrap returns a typed nil and every
// method is nil-receiver safe, so access chains short-circuit through missing
// data instead of failing.
type Value struct {
	name    string
	inner   any
	mode    Mode
	globals Globals
}

// Wrap constructs a Value around inner. Wrapping is idempotent: an already
// wrapped value is returned unchanged regardless of the other arguments, which
// prevents double-escaping. A nil inner (including typed nil pointers, maps,
// slices and funcs) yields a nil Value.
func Wrap(name string, inner any, mode Mode, globals Globals) *Value {
	if isNil(inner) {
		return nil
	}
	if v, ok := inner.(*Value); ok {
		return v
	}
	return &Value{name: name, inner: inner, mode: mode, globals: globals}
}

// Name reports the diagnostic path of the value, used in error messages.
func (v *Value) Name() string {
	if v == nil {
		return ""
	}
	return v.name
}

// Mode reports the escape mode the value was wrapped with.
func (v *Value) Mode() Mode {
	if v == nil {
		return ModeHTML
	}
	return v.mode
}

// Inner exposes the wrapped value. Callers must not mutate it.
func (v *Value) Inner() any {
	if v == nil {
		return nil
	}
	return v.inner
}

// IsNil reports whether the value wraps nothing.
func (v *Value) IsNil() bool {
	return v == nil || v.inner == nil
}

// String implements fmt.Stringer, the single most consequential operation of
// the proxy: ModeRaw emits the raw serialization, ModeHTML escapes it. Any
// other mode is an internal invariant violation.
func (v *Value) String() string {
	if v == nil {
		return ""
	}
	switch v.mode {
	case ModeRaw:
		return v.rawString()
	case ModeHTML:
		return htmlReplacer.Replace(v.rawString())
	default:
		panic(fmt.Sprintf("value: unreachable escape mode %d on %q", int(v.mode), v.name))
	}
}

// Raw returns the raw serialization of the inner value, bypassing the escape
// mode: thunks are invoked and their result stringified, collections render as
// JSON, structured values fall back to a debug representation, everything else
// converts directly.
func (v *Value) Raw() string {
	if v == nil {
		return ""
	}
	return v.rawString()
}

// JSON serializes the inner value through the standard codec, bypassing the
// escape mode entirely.
func (v *Value) JSON(pretty bool) (string, error) {
	if v == nil {
		return "null", nil
	}
	var (
		raw []byte
		err error
	)
	if pretty {
		raw, err = json.MarshalIndent(v.inner, "", "  ")
	} else {
		raw, err = json.Marshal(v.inner)
	}
	if err != nil {
		return "", fmt.Errorf("value: json %q: %w", v.name, err)
	}
	return string(raw), nil
}

// EscapeHTML stringifies v and escapes the five HTML-significant characters
// with numeric-entity-safe replacements. It is the single source of truth for
// what "escaped" means throughout the engine.
func EscapeHTML(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return htmlReplacer.Replace(x)
	case *Value:
		return htmlReplacer.Replace(x.Raw())
	default:
		return htmlReplacer.Replace(fmt.Sprint(v))
	}
}

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&#34;",
	"'", "&#39;",
)

func (v *Value) rawString() string {
	return rawString(v.inner)
}

func rawString(inner any) string {
	if inner == nil {
		return ""
	}
	if s, ok := inner.(string); ok {
		return s
	}
	if s, ok := inner.(fmt.Stringer); ok {
		return s.String()
	}
	if e, ok := inner.(error); ok {
		return e.Error()
	}

	rv := reflect.ValueOf(inner)
	switch rv.Kind() {
	case reflect.Func:
		if out, ok := callThunk(rv); ok {
			return rawString(out)
		}
		return fmt.Sprint(inner)
	case reflect.Map, reflect.Slice, reflect.Array:
		raw, err := json.Marshal(inner)
		if err != nil {
			return fmt.Sprintf("%v", inner)
		}
		return string(raw)
	case reflect.Struct:
		return fmt.Sprintf("%+v", inner)
	case reflect.Pointer:
		if rv.IsNil() {
			return ""
		}
		return rawString(rv.Elem().Interface())
	default:
		return fmt.Sprint(inner)
	}
}

// callThunk invokes a zero-argument deferred computation and reports its first
// result. Functions that take arguments are not thunks.
func callThunk(fn reflect.Value) (any, bool) {
	ft := fn.Type()
	if ft.NumIn() != 0 || ft.NumOut() == 0 {
		return nil, false
	}
	out := fn.Call(nil)
	return out[0].Interface(), true
}

// derive re-wraps a produced value under the receiver's mode and globals.
func (v *Value) derive(name string, inner any) *Value {
	return Wrap(name, inner, v.mode, v.globals)
}

func isNil(inner any) bool {
	if inner == nil {
		return true
	}
	rv := reflect.ValueOf(inner)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Interface, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}
