package schemazoid

import (
	"fmt"
	"reflect"
)

// ListField holds an untyped list of values. A scalar or mapping input wraps
// as a one-element list, nil converts to an empty list and any other sequence
// is materialized. When Element is set, every element passes through it in
// both directions.
type ListField struct {
	Element Field
}

var _ Field = ListField{}

func (f ListField) ToNative(value any) (any, error) {
	items := wrapList(value)
	if f.Element == nil {
		return items, nil
	}

	out := make([]any, 0, len(items))
	for idx, item := range items {
		converted, err := f.Element.ToNative(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", idx, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func (f ListField) ToSerial(value any) (any, error) {
	return serializeList(f.Element, value)
}

// MapField holds an untyped string-keyed mapping. Nil converts to an empty
// mapping; anything that is not mapping-shaped is a conversion error.
type MapField struct{}

var _ Field = MapField{}

func (MapField) ToNative(value any) (any, error) {
	return asMapping(value)
}

func (MapField) ToSerial(value any) (any, error) { return value, nil }

// FieldListField holds a list whose elements all convert through one shared
// element field. Nil converts to an empty list; the input must otherwise be
// a sequence.
type FieldListField struct {
	Element Field
}

var _ Field = FieldListField{}

func (f FieldListField) ToNative(value any) (any, error) {
	if value == nil {
		return []any{}, nil
	}

	items, err := asSequence(value)
	if err != nil {
		return nil, err
	}

	element := f.element()
	out := make([]any, 0, len(items))
	for idx, item := range items {
		converted, err := element.ToNative(item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", idx, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func (f FieldListField) ToSerial(value any) (any, error) {
	return serializeList(f.element(), value)
}

func (f FieldListField) element() Field {
	if f.Element == nil {
		return AnyField{}
	}
	return f.Element
}

func serializeList(element Field, value any) (any, error) {
	items, err := asSequence(value)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(items))
	for idx, item := range items {
		if element != nil {
			serialized, err := element.ToSerial(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", idx, err)
			}
			item = serialized
		}
		out = append(out, item)
	}
	return out, nil
}

// wrapList materializes value into a []any, wrapping scalars and mappings as
// a one-element list. Nil yields an empty list.
func wrapList(value any) []any {
	switch v := value.(type) {
	case nil:
		return []any{}
	case []any:
		out := make([]any, len(v))
		copy(out, v)
		return out
	case string:
		return []any{v}
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for idx := 0; idx < rv.Len(); idx++ {
			out = append(out, rv.Index(idx).Interface())
		}
		return out
	default:
		return []any{value}
	}
}

// asSequence materializes value into a []any without wrapping scalars.
func asSequence(value any) ([]any, error) {
	if v, ok := value.([]any); ok {
		return v, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, 0, rv.Len())
		for idx := 0; idx < rv.Len(); idx++ {
			out = append(out, rv.Index(idx).Interface())
		}
		return out, nil
	default:
		return nil, conversionErr("sequence from %T", value)
	}
}

// asMapping materializes value into a map[string]any. Nil yields an empty
// mapping; other string-keyed map kinds are converted.
func asMapping(value any) (map[string]any, error) {
	switch v := value.(type) {
	case nil:
		return map[string]any{}, nil
	case map[string]any:
		return v, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String {
		out := make(map[string]any, rv.Len())
		for _, key := range rv.MapKeys() {
			out[key.String()] = rv.MapIndex(key).Interface()
		}
		return out, nil
	}
	return nil, conversionErr("mapping from %T", value)
}
