package schemazoid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAnyFieldIdentity(t *testing.T) {
	f := AnyField{}

	for _, value := range []any{nil, "text", 42, 1.5, true, []any{"a"}, map[string]any{"k": "v"}} {
		native, err := f.ToNative(value)
		require.NoError(t, err)
		require.Equal(t, value, native)

		serial, err := f.ToSerial(native)
		require.NoError(t, err)
		require.Equal(t, value, serial)
	}
}

func TestStringField(t *testing.T) {
	f := StringField{}

	native, err := f.ToNative("somestring")
	require.NoError(t, err)
	require.Equal(t, "somestring", native)

	native, err = f.ToNative(nil)
	require.NoError(t, err)
	require.Equal(t, "", native)

	native, err = f.ToNative(123)
	require.NoError(t, err)
	require.Equal(t, "123", native)

	native, err = f.ToNative([]byte("bytes"))
	require.NoError(t, err)
	require.Equal(t, "bytes", native)
}

func TestStringFieldIdempotent(t *testing.T) {
	f := StringField{}

	once, err := f.ToNative(4.5)
	require.NoError(t, err)
	twice, err := f.ToNative(once)
	require.NoError(t, err)
	require.Equal(t, once, twice)
}

func TestIntegerField(t *testing.T) {
	f := IntegerField{}

	testCases := []struct {
		input any
		want  int64
	}{
		{nil, 0},
		{123, 123},
		{int64(123), 123},
		{123.4, 123},
		{123.9, 123},
		{"123", 123},
		{" 123 ", 123},
		{"-7", -7},
		{true, 1},
		{false, 0},
	}

	for _, tc := range testCases {
		native, err := f.ToNative(tc.input)
		require.NoError(t, err, "input %v", tc.input)
		require.Equal(t, tc.want, native, "input %v", tc.input)
	}
}

func TestIntegerFieldRejectsNonInteger(t *testing.T) {
	f := IntegerField{}

	for _, input := range []any{"12.5", "abc", "", []any{1}} {
		_, err := f.ToNative(input)
		require.ErrorIs(t, err, ErrConversion, "input %v", input)
	}
}

func TestFloatField(t *testing.T) {
	f := FloatField{}

	testCases := []struct {
		input any
		want  float64
	}{
		{nil, 0.0},
		{123.4, 123.4},
		{123, 123.0},
		{"123.4", 123.4},
		{"-0.5", -0.5},
		{true, 1.0},
	}

	for _, tc := range testCases {
		native, err := f.ToNative(tc.input)
		require.NoError(t, err, "input %v", tc.input)
		require.Equal(t, tc.want, native, "input %v", tc.input)
	}

	_, err := f.ToNative("not a number")
	require.ErrorIs(t, err, ErrConversion)
}

func TestBooleanField(t *testing.T) {
	f := BooleanField{}

	testCases := []struct {
		input any
		want  bool
	}{
		{nil, false},
		{true, true},
		{false, false},
		{"true", true},
		{"True", true},
		{"FALSE", false},
		{" false ", false},
		{"0", false},
		{"anything else", true},
		{"", false},
		{0, false},
		{-5, true},
		{100, true},
		{0.0, false},
		{0.1, true},
		{[]any{}, false},
		{[]any{"x"}, true},
		{map[string]any{}, false},
		{map[string]any{"k": "v"}, true},
	}

	for _, tc := range testCases {
		native, err := f.ToNative(tc.input)
		require.NoError(t, err, "input %#v", tc.input)
		require.Equal(t, tc.want, native, "input %#v", tc.input)
	}
}

func TestScalarNilDefaults(t *testing.T) {
	testCases := []struct {
		field Field
		want  any
	}{
		{StringField{}, ""},
		{IntegerField{}, int64(0)},
		{FloatField{}, 0.0},
		{BooleanField{}, false},
	}

	for _, tc := range testCases {
		native, err := tc.field.ToNative(nil)
		require.NoError(t, err)
		require.Equal(t, tc.want, native)

		// canonical values convert to themselves
		again, err := tc.field.ToNative(native)
		require.NoError(t, err)
		require.Equal(t, native, again)
	}
}

func TestConversionErrorAttribution(t *testing.T) {
	schema := NewSchema("Person", Def("age", IntegerField{}))

	m, err := schema.New()
	require.NoError(t, err)

	err = m.Set("age", "not a number")
	require.Error(t, err)

	var convErr *ConversionError
	require.True(t, errors.As(err, &convErr))
	require.Equal(t, "age", convErr.Field)
	require.Equal(t, "not a number", convErr.Value)
	require.ErrorIs(t, err, ErrConversion)
}
