package widgets

import (
	"strings"

	"github.com/goliatone/go-views/pkg/value"
)

// Recognized attribute keys with builder-specific default-fill rules. Builders
// accept arbitrary additional keys; these are the documented set.
const (
	AttrType        = "type"
	AttrName        = "name"
	AttrValue       = "value"
	AttrClass       = "class"
	AttrLabel       = "label"
	AttrID          = "id"
	AttrPlaceholder = "placeholder"
	AttrChecked     = "checked"
)

// Attr is one attribute-name → value pair. Boolean true renders as a bare
// attribute, boolean false is omitted, anything else is stringified and
// escaped.
type Attr struct {
	Name  string
	Value any
}

// Attrs is an ordered attribute bag. Order is preserved in rendered markup.
type Attrs []Attr

// Get returns the value stored under name and whether it is present.
func (a Attrs) Get(name string) (any, bool) {
	for _, attr := range a {
		if attr.Name == name {
			return attr.Value, true
		}
	}
	return nil, false
}

// Has reports whether name is present in the bag.
func (a Attrs) Has(name string) bool {
	_, ok := a.Get(name)
	return ok
}

// With returns a copy of the bag with name set, replacing an existing entry
// in place or appending a new one.
func (a Attrs) With(name string, v any) Attrs {
	out := make(Attrs, len(a), len(a)+1)
	copy(out, a)
	for idx, attr := range out {
		if attr.Name == name {
			out[idx].Value = v
			return out
		}
	}
	return append(out, Attr{Name: name, Value: v})
}

// WithDefault returns the bag unchanged when name is already present,
// otherwise a copy with the default appended.
func (a Attrs) WithDefault(name string, v any) Attrs {
	if a.Has(name) {
		return a
	}
	return a.With(name, v)
}

// String renders the bag as attribute markup with a leading space per entry.
// Names and values are escaped; flag the output as ready to interpolate
// inside a tag.
func (a Attrs) String() string {
	var b strings.Builder
	for _, attr := range a {
		name := strings.TrimSpace(attr.Name)
		if name == "" {
			continue
		}
		switch v := attr.Value.(type) {
		case bool:
			if v {
				b.WriteString(" ")
				b.WriteString(value.EscapeHTML(name))
			}
		case nil:
			b.WriteString(" ")
			b.WriteString(value.EscapeHTML(name))
		default:
			b.WriteString(" ")
			b.WriteString(value.EscapeHTML(name))
			b.WriteString(`="`)
			b.WriteString(value.EscapeHTML(v))
			b.WriteString(`"`)
		}
	}
	return b.String()
}
