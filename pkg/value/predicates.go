package value

import (
	"fmt"
	"reflect"
	"sort"
)

// IsEmpty mirrors host-style empty semantics: nil, false, numeric zero, the
// empty string and empty collections are all empty. It exists because the
// wrapper itself is always truthy as a Go value, so a naive nil check on a
// wrapped falsy value reads as true.
func (v *Value) IsEmpty() bool {
	if v == nil || v.inner == nil {
		return true
	}
	switch inner := v.inner.(type) {
	case bool:
		return !inner
	case string:
		return inner == ""
	}

	rv := reflect.ValueOf(v.inner)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	default:
		return false
	}
}

// IsTrue is the boolean coercion of the inner value, the complement of
// IsEmpty. Callers that hold a possibly wrapped value should prefer the
// engine-level Check helper.
func (v *Value) IsTrue() bool {
	return !v.IsEmpty()
}

// Count reports the number of entries in the inner collection. Non-countable
// inners fail with a type mismatch.
func (v *Value) Count() (int, error) {
	if v == nil {
		return 0, nil
	}
	rv := reflect.ValueOf(v.inner)
	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.String:
		return rv.Len(), nil
	default:
		return 0, fmt.Errorf("value: count %q (%T): %w", v.name, v.inner, ErrTypeMismatch)
	}
}

// Entry is one re-wrapped (key, value) pair produced by Items.
type Entry struct {
	Key   any
	Value *Value
}

// Items returns the inner collection as re-wrapped (key, value) pairs: slices
// and arrays in positional order, maps in their natural key order. Every entry
// value carries the receiver's mode.
func (v *Value) Items() ([]Entry, error) {
	if v == nil {
		return nil, nil
	}

	rv := reflect.ValueOf(v.inner)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		entries := make([]Entry, 0, rv.Len())
		for idx := 0; idx < rv.Len(); idx++ {
			name := fmt.Sprintf("%s[%d]", v.name, idx)
			entries = append(entries, Entry{
				Key:   idx,
				Value: v.derive(name, rv.Index(idx).Interface()),
			})
		}
		return entries, nil

	case reflect.Map:
		keys := rv.MapKeys()
		sort.Slice(keys, func(i, j int) bool {
			return fmt.Sprint(keys[i].Interface()) < fmt.Sprint(keys[j].Interface())
		})
		entries := make([]Entry, 0, len(keys))
		for _, key := range keys {
			name := fmt.Sprintf("%s[%v]", v.name, key.Interface())
			entries = append(entries, Entry{
				Key:   key.Interface(),
				Value: v.derive(name, rv.MapIndex(key).Interface()),
			})
		}
		return entries, nil

	default:
		return nil, fmt.Errorf("value: iterate %q (%T): %w", v.name, v.inner, ErrTypeMismatch)
	}
}
