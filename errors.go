package schemazoid

import (
	"errors"
	"fmt"
)

// ErrConversion marks a value that a field could not interpret.
var ErrConversion = errors.New("cannot convert value")

// ErrNotField marks an attempt to register something that is not a usable
// Field, e.g. a nil field.
var ErrNotField = errors.New("not a field")

// ConversionError attributes a conversion failure to one field name and one
// offending input value.
type ConversionError struct {
	Field string
	Value any
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("field %q: convert %v: %s", e.Field, e.Value, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// conversionErr builds the error returned by field conversions. Every failure
// wraps ErrConversion so callers can match with errors.Is.
func conversionErr(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrConversion)...)
}
