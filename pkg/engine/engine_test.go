package engine

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-views/pkg/value"
)

func newTestEngine(t *testing.T, opts ...Option) (*Engine, *Registry) {
	t.Helper()
	registry := NewRegistry()
	eng, err := New(registry, opts...)
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return eng, registry
}

func TestRender_EscapesByDefault(t *testing.T) {
	eng, registry := newTestEngine(t)
	registry.Register("profile.html", func(v *View) error {
		v.Printf("hobbys: %s", v.Var("hobbys"))
		return nil
	})

	out, err := eng.Render("profile", map[string]any{
		"hobbys": "<script>alert('x')</script>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Fatalf("live tag leaked: %q", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") {
		t.Fatalf("expected escaped markup, got %q", out)
	}
}

func TestRender_RawBypass(t *testing.T) {
	eng, registry := newTestEngine(t)
	registry.Register("profile.html", func(v *View) error {
		v.Print(v.Var("hobbys").Raw())
		return nil
	})

	out, err := eng.Render("profile", map[string]any{"hobbys": "<script>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "<script>") {
		t.Fatalf("raw bypass lost markup: %q", out)
	}
}

func TestRender_RawModeTemplate(t *testing.T) {
	eng, registry := newTestEngine(t)
	registry.Register("mail.txt", func(v *View) error {
		v.Print(v.Var("body"))
		return nil
	})

	out, err := eng.Render("mail", map[string]any{"body": "a < b"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "a < b" {
		t.Fatalf("raw template escaped output: %q", out)
	}
}

func TestResolve_SuffixPrecedence(t *testing.T) {
	eng, registry := newTestEngine(t)
	registry.Register("page.html", func(v *View) error {
		v.Print(v.Var("x"))
		return nil
	})
	registry.Register("page.txt", func(v *View) error {
		v.Print(v.Var("x"))
		return nil
	})

	out, err := eng.Render("page", map[string]any{"x": "<y>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "&lt;y&gt;" {
		t.Fatalf("markup convention must win: %q", out)
	}

	// An explicit suffix resolves directly and fixes the mode.
	out, err = eng.Render("page.txt", map[string]any{"x": "<y>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "<y>" {
		t.Fatalf("explicit raw suffix must not escape: %q", out)
	}
}

func TestRender_NotFound(t *testing.T) {
	eng, _ := newTestEngine(t)
	_, err := eng.Render("ghost", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestGlobals_MergeAndShadow(t *testing.T) {
	eng, registry := newTestEngine(t)
	eng.Set("site", "Acme")
	eng.Set("x", "global")
	registry.Register("page.html", func(v *View) error {
		v.Printf("%s/%s", v.Var("site"), v.Var("x"))
		return nil
	})

	out, err := eng.Render("page", map[string]any{"x": "local"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Acme/local" {
		t.Fatalf("scope merge = %q", out)
	}

	if got := eng.Get("site"); got != "Acme" {
		t.Fatalf("global get = %v", got)
	}
	if got := eng.Get("missing"); got != nil {
		t.Fatalf("missing global = %v", got)
	}
}

func TestCheck_FalsyPitfall(t *testing.T) {
	eng, registry := newTestEngine(t)

	var wrapped *value.Value
	var naive bool
	registry.Register("page.html", func(v *View) error {
		wrapped = v.Var("count")
		naive = wrapped != nil
		return nil
	})

	if _, err := eng.Render("page", map[string]any{"count": 0}); err != nil {
		t.Fatalf("render: %v", err)
	}

	if eng.Check(wrapped) {
		t.Fatalf("Check on wrapped zero must be false")
	}
	// The documented pitfall: the wrapper itself reads as present.
	if !naive {
		t.Fatalf("wrapped zero should still be non-nil inside the body")
	}

	if eng.Check(nil) || eng.Check(0) || eng.Check("") {
		t.Fatalf("raw falsy values must check false")
	}
	if !eng.Check(1) || !eng.Check("x") {
		t.Fatalf("raw truthy values must check true")
	}
}

func TestRenderResult(t *testing.T) {
	eng, registry := newTestEngine(t)
	registry.Register("page.html", func(v *View) error {
		v.SetResult(42)
		v.Print("ok")
		return nil
	})

	out, result, err := eng.RenderResult("page", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "ok" || result != 42 {
		t.Fatalf("out=%q result=%v", out, result)
	}
}

func TestRender_BodyErrorPropagates(t *testing.T) {
	eng, registry := newTestEngine(t)
	wantErr := errors.New("boom")
	registry.Register("page.html", func(v *View) error {
		v.Print("partial")
		return wantErr
	})

	_, err := eng.Render("page", nil)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected body error, got %v", err)
	}
	if len(eng.frames) != 0 {
		t.Fatalf("frame leaked after failed render: %d", len(eng.frames))
	}
}

func TestRender_MinifyOption(t *testing.T) {
	eng, registry := newTestEngine(t, WithMinify())
	registry.Register("page.html", func(v *View) error {
		v.Print("<p>  hello  </p>\n\n<p>world</p>")
		return nil
	})

	out, err := eng.Render("page", nil)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "\n") {
		t.Fatalf("expected minified output, got %q", out)
	}
}
