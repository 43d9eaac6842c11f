// Package markup lets leaf templates be written as pongo2 template strings
// instead of host-language bodies. Markup bodies receive the same merged
// scope as any other body; escaping is handled by the template engine's
// autoescape, switched off for raw-mode views so both conventions keep their
// semantics. Composition (extends/include) stays an engine-level concern;
// markup bodies are leaves.
package markup

import (
	"fmt"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/goliatone/go-views/pkg/engine"
	"github.com/goliatone/go-views/pkg/value"
)

// Template compiles src lazily on first execution and returns it as an
// engine body. Compilation happens once; parse failures surface on every
// render of the body.
func Template(src string) engine.Body {
	var (
		once     sync.Once
		compiled *pongo2.Template
		parseErr error
	)

	return func(v *engine.View) error {
		once.Do(func() {
			text := src
			if v.Mode() == value.ModeRaw {
				text = "{% autoescape off %}" + src + "{% endautoescape %}"
			}
			compiled, parseErr = pongo2.FromString(text)
		})
		if parseErr != nil {
			return fmt.Errorf("markup: parse %q: %w", v.Name(), parseErr)
		}

		ctx := pongo2.Context(v.Vars())
		if err := compiled.ExecuteWriter(ctx, v); err != nil {
			return fmt.Errorf("markup: execute %q: %w", v.Name(), err)
		}
		return nil
	}
}

// Register compiles src as a markup body and registers it under name.
func Register(reg *engine.Registry, name, src string) {
	reg.Register(name, Template(src))
}
