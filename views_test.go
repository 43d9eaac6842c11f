package views

import (
	"errors"
	"strings"
	"testing"
)

func TestFacade_RenderRoundTrip(t *testing.T) {
	registry := NewRegistry()
	registry.Register("layout.html", func(v *View) error {
		v.Printf("<main>%s</main>", v.Var(ContentsVar).Raw())
		return nil
	})
	registry.Register("page.html", func(v *View) error {
		v.Extends("layout", nil)
		v.Print(v.Var("title"))
		return nil
	})

	eng, err := New(registry)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	out, err := eng.Render("page", map[string]any{"title": "a < b"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<main>a &lt; b</main>" {
		t.Fatalf("facade render = %q", out)
	}
}

func TestFacade_ErrorsAreShared(t *testing.T) {
	registry := NewRegistry()
	eng, err := New(registry)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if _, err := eng.Render("ghost", nil); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound through the facade, got %v", err)
	}

	v := Wrap("n", 1, ModeHTML, nil)
	if err := v.Set("k", 2); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly through the facade, got %v", err)
	}
}

func TestFacade_HTMLEscape(t *testing.T) {
	if got := HTMLEscape("<&>"); !strings.Contains(got, "&lt;&amp;&gt;") {
		t.Fatalf("escape = %q", got)
	}
}
