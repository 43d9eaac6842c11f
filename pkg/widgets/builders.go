package widgets

import (
	"errors"
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-views/pkg/value"
)

var (
	// ErrShapeMismatch is returned when a builder receives data that does not
	// match its expected dimensionality.
	ErrShapeMismatch = errors.New("data shape mismatch")

	// ErrInvalidOption is returned when an enumerated parameter receives a
	// value outside its closed set.
	ErrInvalidOption = errors.New("invalid option")
)

// Option configures a Builder before construction.
type Option func(*Builder)

// WithTheme threads a go-theme selection through the builder. Control class
// defaults are read from the manifest tokens under "class.<control>".
func WithTheme(selection *theme.Selection) Option {
	return func(b *Builder) {
		b.theme = selection
	}
}

// Builder emits HTML control markup from wrapped values and caller-supplied
// attribute bags. Interpolated scalar text is always escaped through the
// engine's HTML-escape routine regardless of the wrapper's own mode; the mode
// governs only the wrapper's own stringification.
type Builder struct {
	theme *theme.Selection
}

// New constructs a Builder applying any provided options.
func New(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

var std = New()

// Input renders an <input> control. Defaults: type=text, name from the
// wrapped value's diagnostic name, value from its raw serialization.
func Input(v *value.Value, attrs Attrs) string { return std.Input(v, attrs) }

// Checkbox renders an <input type="checkbox">, checked when the wrapped value
// is truthy.
func Checkbox(v *value.Value, attrs Attrs) string { return std.Checkbox(v, attrs) }

// Select renders a <select> whose options come from the wrapped collection.
func Select(v *value.Value, attrs Attrs) (string, error) { return std.Select(v, attrs) }

// Table renders two-dimensional data as a <table>.
func Table(v *value.Value, attrs Attrs) (string, error) { return std.Table(v, attrs) }

// List renders a collection as a <ul> or <ol>.
func List(v *value.Value, kind string, attrs Attrs) (string, error) { return std.List(v, kind, attrs) }

// Implode joins a collection's entries with sep, escaping each entry.
func Implode(v *value.Value, sep string) (string, error) { return std.Implode(v, sep) }

// Dump renders a debug representation of the wrapped value inside <pre>.
func Dump(v *value.Value) string { return std.Dump(v) }

func (b *Builder) Input(v *value.Value, attrs Attrs) string {
	attrs = attrs.WithDefault(AttrType, "text")
	if v != nil {
		attrs = attrs.WithDefault(AttrName, v.Name())
		attrs = attrs.WithDefault(AttrValue, v.Raw())
	}
	attrs = b.withThemeClass(attrs, "input")
	return wrapLabel(attrs, "<input"+emittable(attrs).String()+">")
}

func (b *Builder) Checkbox(v *value.Value, attrs Attrs) string {
	attrs = attrs.With(AttrType, "checkbox")
	if v != nil {
		attrs = attrs.WithDefault(AttrName, v.Name())
		if v.IsTrue() {
			attrs = attrs.WithDefault(AttrChecked, true)
		}
	}
	attrs = b.withThemeClass(attrs, "checkbox")
	return wrapLabel(attrs, "<input"+emittable(attrs).String()+">")
}

func (b *Builder) Select(v *value.Value, attrs Attrs) (string, error) {
	items, err := v.Items()
	if err != nil {
		return "", fmt.Errorf("widgets: select: %w", err)
	}

	if v != nil {
		attrs = attrs.WithDefault(AttrName, v.Name())
	}
	attrs = b.withThemeClass(attrs, "select")

	selected := ""
	if current, ok := attrs.Get(AttrValue); ok {
		selected = fmt.Sprint(current)
	}

	var sb strings.Builder
	sb.WriteString("<select")
	sb.WriteString(emittable(attrs.without(AttrValue)).String())
	sb.WriteString(">")
	for _, item := range items {
		optionValue := fmt.Sprint(item.Key)
		label := item.Value.Raw()
		sb.WriteString(`<option value="`)
		sb.WriteString(value.EscapeHTML(optionValue))
		sb.WriteString(`"`)
		if selected != "" && optionValue == selected {
			sb.WriteString(" selected")
		}
		sb.WriteString(">")
		sb.WriteString(value.EscapeHTML(label))
		sb.WriteString("</option>")
	}
	sb.WriteString("</select>")
	return wrapLabel(attrs, sb.String()), nil
}

func (b *Builder) Table(v *value.Value, attrs Attrs) (string, error) {
	rows, err := v.Items()
	if err != nil {
		return "", fmt.Errorf("widgets: table: %w", ErrShapeMismatch)
	}

	attrs = b.withThemeClass(attrs, "table")

	var sb strings.Builder
	sb.WriteString("<table")
	sb.WriteString(emittable(attrs).String())
	sb.WriteString(">")

	for idx, row := range rows {
		cells, err := row.Value.Items()
		if err != nil {
			return "", fmt.Errorf("widgets: table row %v: %w", row.Key, ErrShapeMismatch)
		}
		if idx == 0 {
			sb.WriteString("<thead><tr>")
			for _, cell := range cells {
				sb.WriteString("<th>")
				sb.WriteString(value.EscapeHTML(fmt.Sprint(cell.Key)))
				sb.WriteString("</th>")
			}
			sb.WriteString("</tr></thead><tbody>")
		}
		sb.WriteString("<tr>")
		for _, cell := range cells {
			sb.WriteString("<td>")
			sb.WriteString(value.EscapeHTML(cell.Value.Raw()))
			sb.WriteString("</td>")
		}
		sb.WriteString("</tr>")
	}
	if len(rows) > 0 {
		sb.WriteString("</tbody>")
	}
	sb.WriteString("</table>")
	return sb.String(), nil
}

func (b *Builder) List(v *value.Value, kind string, attrs Attrs) (string, error) {
	switch kind {
	case "ul", "ol":
	default:
		return "", fmt.Errorf("widgets: list kind %q: %w", kind, ErrInvalidOption)
	}

	items, err := v.Items()
	if err != nil {
		return "", fmt.Errorf("widgets: list: %w", err)
	}

	attrs = b.withThemeClass(attrs, "list")

	var sb strings.Builder
	sb.WriteString("<" + kind)
	sb.WriteString(emittable(attrs).String())
	sb.WriteString(">")
	for _, item := range items {
		sb.WriteString("<li>")
		sb.WriteString(value.EscapeHTML(item.Value.Raw()))
		sb.WriteString("</li>")
	}
	sb.WriteString("</" + kind + ">")
	return sb.String(), nil
}

func (b *Builder) Implode(v *value.Value, sep string) (string, error) {
	items, err := v.Items()
	if err != nil {
		return "", fmt.Errorf("widgets: implode: %w", err)
	}
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, value.EscapeHTML(item.Value.Raw()))
	}
	return strings.Join(parts, sep), nil
}

func (b *Builder) Dump(v *value.Value) string {
	return "<pre>" + value.EscapeHTML(fmt.Sprintf("%+v", v.Inner())) + "</pre>"
}

// withThemeClass fills the class attribute from the theme manifest token
// "class.<control>" when the caller supplied none.
func (b *Builder) withThemeClass(attrs Attrs, control string) Attrs {
	if b == nil || b.theme == nil || b.theme.Manifest == nil {
		return attrs
	}
	class := strings.TrimSpace(b.theme.Manifest.Tokens["class."+control])
	if class == "" {
		return attrs
	}
	return attrs.WithDefault(AttrClass, class)
}

// emittable strips bag entries that builders consume themselves rather than
// emit as markup attributes.
func emittable(attrs Attrs) Attrs {
	return attrs.without(AttrLabel)
}

func (a Attrs) without(name string) Attrs {
	out := make(Attrs, 0, len(a))
	for _, attr := range a {
		if attr.Name == name {
			continue
		}
		out = append(out, attr)
	}
	return out
}

// wrapLabel surrounds control markup with a <label> when the bag carries a
// label entry.
func wrapLabel(attrs Attrs, control string) string {
	label, ok := attrs.Get(AttrLabel)
	if !ok {
		return control
	}
	text := strings.TrimSpace(fmt.Sprint(label))
	if text == "" {
		return control
	}
	return "<label>" + value.EscapeHTML(text) + " " + control + "</label>"
}
