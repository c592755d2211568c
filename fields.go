package schemazoid

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/constraints"
)

// Field is the conversion strategy for one named attribute of a [Model].
//
// ToNative turns an arbitrary loosely-typed input value into the field's
// canonical in-memory representation. ToSerial turns a canonical value back
// into a plain value a generic structured-text encoder can handle directly
// (strings, numbers, booleans, nested mappings and sequences of the same).
//
// Both methods must be pure functions of their argument; a Field carries no
// state beyond configuration set at construction and is immutable once
// registered on a [Schema].
type Field interface {
	ToNative(value any) (any, error)
	ToSerial(value any) (any, error)
}

// AnyField passes values through unchanged in both directions.
type AnyField struct{}

var _ Field = AnyField{}

func (AnyField) ToNative(value any) (any, error) { return value, nil }
func (AnyField) ToSerial(value any) (any, error) { return value, nil }

// StringField holds a text value. Nil converts to the empty string; any
// other non-string input is rendered as text.
type StringField struct{}

var _ Field = StringField{}

func (StringField) ToNative(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprint(v), nil
	}
}

func (StringField) ToSerial(value any) (any, error) { return value, nil }

// IntegerField holds an int64. Nil converts to 0, floating-point inputs are
// truncated toward zero, and text must be integer-shaped.
type IntegerField struct{}

var _ Field = IntegerField{}

func (IntegerField) ToNative(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return int64(0), nil
	case bool:
		if v {
			return int64(1), nil
		}
		return int64(0), nil
	case int:
		return widen(v), nil
	case int8:
		return widen(v), nil
	case int16:
		return widen(v), nil
	case int32:
		return widen(v), nil
	case int64:
		return v, nil
	case uint:
		return widen(v), nil
	case uint8:
		return widen(v), nil
	case uint16:
		return widen(v), nil
	case uint32:
		return widen(v), nil
	case uint64:
		return widen(v), nil
	case float32:
		return int64(v), nil
	case float64:
		return int64(v), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return nil, conversionErr("parse integer %q", v)
		}
		return n, nil
	default:
		return nil, conversionErr("integer from %T", value)
	}
}

func (IntegerField) ToSerial(value any) (any, error) { return value, nil }

// FloatField holds a float64. Nil converts to 0.0 and text must be
// numeric-shaped.
type FloatField struct{}

var _ Field = FloatField{}

func (FloatField) ToNative(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return float64(0), nil
	case bool:
		if v {
			return float64(1), nil
		}
		return float64(0), nil
	case int:
		return widenFloat(v), nil
	case int8:
		return widenFloat(v), nil
	case int16:
		return widenFloat(v), nil
	case int32:
		return widenFloat(v), nil
	case int64:
		return widenFloat(v), nil
	case uint:
		return widenFloat(v), nil
	case uint8:
		return widenFloat(v), nil
	case uint16:
		return widenFloat(v), nil
	case uint32:
		return widenFloat(v), nil
	case uint64:
		return widenFloat(v), nil
	case float32:
		return widenFloat(v), nil
	case float64:
		return v, nil
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, conversionErr("parse float %q", v)
		}
		return n, nil
	default:
		return nil, conversionErr("float from %T", value)
	}
}

func (FloatField) ToSerial(value any) (any, error) { return value, nil }

// BooleanField holds a bool. Non-string inputs follow general truthiness:
// zero numbers, nil and empty containers are false, everything else is true.
// A string is false only when, after trimming and case-folding, it is empty
// or equals "false" or "0".
type BooleanField struct{}

var _ Field = BooleanField{}

func (BooleanField) ToNative(value any) (any, error) {
	switch v := value.(type) {
	case nil:
		return false, nil
	case bool:
		return v, nil
	case string:
		norm := strings.ToLower(strings.TrimSpace(v))
		return norm != "" && norm != "false" && norm != "0", nil
	case int:
		return v != 0, nil
	case int8:
		return v != 0, nil
	case int16:
		return v != 0, nil
	case int32:
		return v != 0, nil
	case int64:
		return v != 0, nil
	case uint:
		return v != 0, nil
	case uint8:
		return v != 0, nil
	case uint16:
		return v != 0, nil
	case uint32:
		return v != 0, nil
	case uint64:
		return v != 0, nil
	case float32:
		return v != 0, nil
	case float64:
		return v != 0, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0, nil
	default:
		return true, nil
	}
}

func (BooleanField) ToSerial(value any) (any, error) { return value, nil }

func widen[T constraints.Integer](v T) int64 { return int64(v) }

func widenFloat[T constraints.Integer | constraints.Float](v T) float64 { return float64(v) }
