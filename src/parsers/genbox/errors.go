package genbox

import (
	"errors"
	"fmt"
)

// Error kinds surfaced by the pipeline stages. Match them with errors.Is.
var (
	ErrIOFailure     = errors.New("genbox: io failure")
	ErrDecodeFailure = errors.New("genbox: decode failure")
	ErrParseFailure  = errors.New("genbox: parse failure")
	ErrShapeMismatch = errors.New("genbox: shape mismatch")
	ErrTypeCoercion  = errors.New("genbox: type coercion failure")
	ErrEmptySection  = errors.New("genbox: no closed transactions found")
	ErrMalformedRow  = errors.New("genbox: malformed row")
)

// ShapeMismatchError reports a raw row whose width differs from the schema.
type ShapeMismatchError struct {
	Row  int // position in the raw row sequence, header row is 0
	Got  int
	Want int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("genbox: row %d has %d columns, schema expects %d", e.Row, e.Got, e.Want)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }

// TypeCoercionError reports the first value of a column that could not be
// converted to its declared type.
type TypeCoercionError struct {
	Column string
	Type   ColumnType
	Key    string // row key of the offending value
	Value  string
	Err    error
}

func (e *TypeCoercionError) Error() string {
	return fmt.Sprintf("genbox: converting column %q to %s failed at row %s (value %q): %v", e.Column, e.Type, e.Key, e.Value, e.Err)
}

func (e *TypeCoercionError) Is(target error) bool { return target == ErrTypeCoercion }

func (e *TypeCoercionError) Unwrap() error { return e.Err }
