package value

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// rawKey is the property name intercepted by Get as the raw-extraction
// terminal operation.
const rawKey = "raw"

// Get performs a property read. The special key "raw" returns the raw
// serialization as a plain string; any other key delegates to Index and
// yields a re-wrapped *Value (or nil for missing entries).
func (v *Value) Get(key string) (any, error) {
	if v == nil {
		return nil, nil
	}
	if key == rawKey {
		return v.Raw(), nil
	}
	entry, err := v.Index(key)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, nil
	}
	return entry, nil
}

// Set always fails: wrapped values are read-only views over their input
// scope.
func (v *Value) Set(key string, _ any) error {
	return fmt.Errorf("value: set %q on %q: %w", key, v.Name(), ErrReadOnly)
}

// SetIndex always fails for the same reason as Set.
func (v *Value) SetIndex(key any, _ any) error {
	return fmt.Errorf("value: set %q[%v]: %w", v.Name(), key, ErrReadOnly)
}

// Index returns the entry stored under key. Keyed and ordered collections
// resolve by key or position, structured values resolve by field name; a
// missing entry yields nil, never an error. Any other inner type fails with
// a type mismatch naming the diagnostic path.
func (v *Value) Index(key any) (*Value, error) {
	if v == nil {
		return nil, nil
	}

	name := fmt.Sprintf("%s[%v]", v.name, key)
	rv := reflect.ValueOf(v.inner)
	switch rv.Kind() {
	case reflect.Map:
		kv := reflect.ValueOf(key)
		if !kv.IsValid() {
			return nil, nil
		}
		if !kv.Type().AssignableTo(rv.Type().Key()) {
			if !kv.Type().ConvertibleTo(rv.Type().Key()) {
				return nil, nil
			}
			kv = kv.Convert(rv.Type().Key())
		}
		entry := rv.MapIndex(kv)
		if !entry.IsValid() {
			return nil, nil
		}
		return v.derive(name, entry.Interface()), nil

	case reflect.Slice, reflect.Array:
		idx, ok := toInt(key)
		if !ok {
			return nil, nil
		}
		if idx < 0 || idx >= rv.Len() {
			return nil, nil
		}
		return v.derive(name, rv.Index(idx).Interface()), nil

	case reflect.Struct:
		return v.structField(rv, key, name)

	case reflect.Pointer:
		if rv.Elem().Kind() == reflect.Struct {
			return v.structField(rv.Elem(), key, name)
		}
	}

	return nil, fmt.Errorf("value: index %q (%T) with %v: %w", v.name, v.inner, key, ErrTypeMismatch)
}

func (v *Value) structField(rv reflect.Value, key any, name string) (*Value, error) {
	fieldName, ok := key.(string)
	if !ok {
		return nil, fmt.Errorf("value: index %q (%T) with %v: %w", v.name, v.inner, key, ErrTypeMismatch)
	}

	field := rv.FieldByName(fieldName)
	if !field.IsValid() {
		field = rv.FieldByNameFunc(func(candidate string) bool {
			return strings.EqualFold(candidate, fieldName)
		})
	}
	if !field.IsValid() || !field.CanInterface() {
		return nil, nil
	}
	return v.derive(name, field.Interface()), nil
}

// Invoke dispatches a method call on the inner value and re-wraps the result
// under the receiver's mode. Date values get special treatment: a Format call
// first resolves a time zone (explicit argument, else the engine's global
// _timeZone variable, else none), applies it to a copy and then formats.
func (v *Value) Invoke(method string, args ...any) (*Value, error) {
	if v == nil {
		return nil, nil
	}

	if t, ok := v.inner.(time.Time); ok && method == "Format" {
		return v.formatTime(t, args)
	}

	rv := reflect.ValueOf(v.inner)
	fn := rv.MethodByName(method)
	if !fn.IsValid() && rv.Kind() != reflect.Pointer {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		fn = ptr.MethodByName(method)
	}
	if !fn.IsValid() {
		return nil, fmt.Errorf("value: method %q on %q (%T): %w", method, v.name, v.inner, ErrNotCallable)
	}
	return v.call(fmt.Sprintf("%s.%s()", v.name, method), fn, args)
}

// Call invokes the inner value as a function. Only legal when the inner value
// is callable.
func (v *Value) Call(args ...any) (*Value, error) {
	if v == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(v.inner)
	if rv.Kind() != reflect.Func {
		return nil, fmt.Errorf("value: call on %q (%T): %w", v.name, v.inner, ErrNotCallable)
	}
	return v.call(v.name+"()", rv, args)
}

func (v *Value) call(name string, fn reflect.Value, args []any) (*Value, error) {
	ft := fn.Type()
	in, err := convertArgs(name, ft, args)
	if err != nil {
		return nil, err
	}

	out := fn.Call(in)
	var result any
	for idx, ret := range out {
		if ft.Out(idx) == errorType {
			if !ret.IsNil() {
				return nil, fmt.Errorf("value: call %s: %w", name, ret.Interface().(error))
			}
			continue
		}
		if result == nil {
			result = ret.Interface()
		}
	}
	return v.derive(name, result), nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func convertArgs(name string, ft reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, fmt.Errorf("value: call %s: want at least %d args, got %d", name, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, fmt.Errorf("value: call %s: want %d args, got %d", name, fixed, len(args))
	}

	in := make([]reflect.Value, 0, len(args))
	for idx, arg := range args {
		var want reflect.Type
		if idx < fixed {
			want = ft.In(idx)
		} else {
			want = ft.In(fixed).Elem()
		}

		if arg == nil {
			in = append(in, reflect.Zero(want))
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(want) {
			if !av.Type().ConvertibleTo(want) {
				return nil, fmt.Errorf("value: call %s: arg %d (%T) not assignable to %s", name, idx, arg, want)
			}
			av = av.Convert(want)
		}
		in = append(in, av)
	}
	return in, nil
}

func (v *Value) formatTime(t time.Time, args []any) (*Value, error) {
	name := v.name + ".Format()"
	if len(args) == 0 {
		return nil, fmt.Errorf("value: call %s: want at least 1 arg, got 0", name)
	}
	layout, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("value: call %s: layout must be a string, got %T", name, args[0])
	}

	zone := ""
	if len(args) > 1 {
		zone, ok = args[1].(string)
		if !ok {
			return nil, fmt.Errorf("value: call %s: zone must be a string, got %T", name, args[1])
		}
	} else if v.globals != nil {
		if global, found := v.globals.Global("_timeZone"); found {
			zone, _ = global.(string)
		}
	}

	if zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			return nil, fmt.Errorf("value: call %s: load location %q: %w", name, zone, err)
		}
		t = t.In(loc)
	}
	return v.derive(name, t.Format(layout)), nil
}

func toInt(key any) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int8:
		return int(k), true
	case int16:
		return int(k), true
	case int32:
		return int(k), true
	case int64:
		return int(k), true
	case uint:
		return int(k), true
	case uint8:
		return int(k), true
	case uint16:
		return int(k), true
	case uint32:
		return int(k), true
	case uint64:
		return int(k), true
	case string:
		idx, err := strconv.Atoi(k)
		if err != nil {
			return 0, false
		}
		return idx, true
	default:
		return 0, false
	}
}
