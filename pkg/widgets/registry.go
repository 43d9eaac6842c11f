package widgets

import (
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-views/pkg/value"
)

// Built-in control identifiers exposed by the registry.
const (
	ControlCheckbox = "checkbox"
	ControlSelect   = "select"
	ControlTable    = "table"
	ControlList     = "list"
	ControlInput    = "input"
)

// Matcher decides whether a control should handle the supplied value.
type Matcher func(v *value.Value) bool

type rule struct {
	name     string
	priority int
	match    Matcher
	order    int
}

// Registry selects a control for a wrapped value based on an explicit
// control hint or registered matchers. Higher priority wins; ties fall back
// to registration order. An empty registry never resolves a control.
type Registry struct {
	mu    sync.RWMutex
	rules []rule
}

// NewControlRegistry constructs a registry with the built-in control matchers
// registered.
func NewControlRegistry() *Registry {
	reg := &Registry{}
	reg.registerBuiltins()
	return reg
}

// Register adds a control matcher with the provided name and priority. Higher
// priority values take precedence; the latest registration wins on duplicate
// names.
func (r *Registry) Register(name string, priority int, matcher Matcher) {
	if r == nil || matcher == nil {
		return
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rules = append(r.rules, rule{
		name:     trimmed,
		priority: priority,
		match:    matcher,
		order:    len(r.rules),
	})
}

// Resolve returns the control name for a value. An explicit "control" hint in
// the attribute bag is honoured before matcher evaluation.
func (r *Registry) Resolve(v *value.Value, attrs Attrs) (string, bool) {
	if hint, ok := attrs.Get("control"); ok {
		if name := strings.ToLower(strings.TrimSpace(toString(hint))); name != "" {
			return name, true
		}
	}
	if r == nil {
		return "", false
	}
	r.mu.RLock()
	if len(r.rules) == 0 {
		r.mu.RUnlock()
		return "", false
	}
	rules := append([]rule(nil), r.rules...)
	r.mu.RUnlock()

	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].priority == rules[j].priority {
			return rules[i].order < rules[j].order
		}
		return rules[i].priority > rules[j].priority
	})
	for _, entry := range rules {
		if entry.match(v) {
			return entry.name, true
		}
	}
	return "", false
}

// Auto resolves a control for the value and renders it with the default
// builder. Unresolvable values fall back to a plain input.
func (r *Registry) Auto(v *value.Value, attrs Attrs) (string, error) {
	name, ok := r.Resolve(v, attrs)
	if !ok {
		name = ControlInput
	}
	attrs = attrs.without("control")
	switch name {
	case ControlCheckbox:
		return std.Checkbox(v, attrs), nil
	case ControlSelect:
		return std.Select(v, attrs)
	case ControlTable:
		return std.Table(v, attrs)
	case ControlList:
		return std.List(v, "ul", attrs)
	default:
		return std.Input(v, attrs), nil
	}
}

func (r *Registry) registerBuiltins() {
	r.Register(ControlCheckbox, 90, func(v *value.Value) bool {
		_, ok := v.Inner().(bool)
		return ok
	})

	r.Register(ControlTable, 80, func(v *value.Value) bool {
		items, err := v.Items()
		if err != nil || len(items) == 0 {
			return false
		}
		_, err = items[0].Value.Items()
		return err == nil
	})

	r.Register(ControlSelect, 70, func(v *value.Value) bool {
		if v.IsNil() {
			return false
		}
		return reflect.ValueOf(v.Inner()).Kind() == reflect.Map
	})

	r.Register(ControlList, 60, func(v *value.Value) bool {
		if v.IsNil() {
			return false
		}
		switch reflect.ValueOf(v.Inner()).Kind() {
		case reflect.Slice, reflect.Array:
			return true
		default:
			return false
		}
	})
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
