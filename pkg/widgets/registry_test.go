package widgets

import (
	"strings"
	"testing"

	"github.com/goliatone/go-views/pkg/value"
)

func TestRegistry_ResolveBuiltins(t *testing.T) {
	reg := NewControlRegistry()

	cases := []struct {
		name  string
		inner any
		want  string
	}{
		{"bool", true, ControlCheckbox},
		{"rows", []any{map[string]any{"a": 1}}, ControlTable},
		{"map", map[string]any{"a": "A"}, ControlSelect},
		{"slice", []any{"a", "b"}, ControlList},
	}
	for _, tc := range cases {
		got, ok := reg.Resolve(value.Wrap(tc.name, tc.inner, value.ModeHTML, nil), nil)
		if !ok || got != tc.want {
			t.Fatalf("%s: resolved %q (ok=%v), want %q", tc.name, got, ok, tc.want)
		}
	}

	if _, ok := reg.Resolve(value.Wrap("s", "text", value.ModeHTML, nil), nil); ok {
		t.Fatalf("scalar string must not resolve a control")
	}
}

func TestRegistry_ExplicitHintWins(t *testing.T) {
	reg := NewControlRegistry()
	v := value.Wrap("active", true, value.ModeHTML, nil)

	got, ok := reg.Resolve(v, Attrs{{Name: "control", Value: "input"}})
	if !ok || got != ControlInput {
		t.Fatalf("hint ignored: %q (ok=%v)", got, ok)
	}
}

func TestRegistry_PriorityAndOrder(t *testing.T) {
	reg := &Registry{}
	always := func(*value.Value) bool { return true }
	reg.Register("low", 10, always)
	reg.Register("high", 20, always)
	reg.Register("tied", 20, always)

	got, ok := reg.Resolve(value.Wrap("x", 1, value.ModeHTML, nil), nil)
	if !ok || got != "high" {
		t.Fatalf("priority resolution = %q (ok=%v)", got, ok)
	}
}

func TestRegistry_AutoFallsBackToInput(t *testing.T) {
	reg := NewControlRegistry()
	got, err := reg.Auto(value.Wrap("bio", "text", value.ModeHTML, nil), nil)
	if err != nil {
		t.Fatalf("auto: %v", err)
	}
	if !strings.Contains(got, `<input type="text" name="bio"`) {
		t.Fatalf("fallback control = %q", got)
	}
}

func TestRegistry_AutoRendersResolvedControl(t *testing.T) {
	reg := NewControlRegistry()
	got, err := reg.Auto(value.Wrap("active", true, value.ModeHTML, nil), nil)
	if err != nil {
		t.Fatalf("auto: %v", err)
	}
	if !strings.Contains(got, `type="checkbox"`) || !strings.Contains(got, "checked") {
		t.Fatalf("auto checkbox = %q", got)
	}
}
