package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failure of a table operation.
type Kind string

const (
	KindType      Kind = "type"
	KindParameter Kind = "parameter"
	KindBounds    Kind = "bounds"
	KindFormat    Kind = "format"
	KindSchema    Kind = "schema_mismatch"
)

// Sentinels, one per Kind. Every error produced by the engine unwraps to one of them.
var (
	ErrType           = errors.New("type error")
	ErrParameter      = errors.New("parameter error")
	ErrBounds         = errors.New("bounds error")
	ErrFormat         = errors.New("format error")
	ErrSchemaMismatch = errors.New("schema mismatch")
)

func (k Kind) sentinel() error {
	switch k {
	case KindType:
		return ErrType
	case KindParameter:
		return ErrParameter
	case KindBounds:
		return ErrBounds
	case KindFormat:
		return ErrFormat
	case KindSchema:
		return ErrSchemaMismatch
	default:
		return nil
	}
}

// OperationError represents a violated contract of a table operation
// (unsupported type, bad parameter, out-of-range selector, etc.)
type OperationError struct {
	Op       string      // operation name ("lag", "join", "subset", ...)
	Column   string      // column name (empty if table-level)
	Value    interface{} // offending value (may be nil)
	Kind     Kind
	Reason   string // human-readable explanation (optional)
	Position int    // row or column position (-1 if unknown)
}

func (e *OperationError) Error() string {
	var parts []string

	head := e.Op
	if e.Column != "" {
		head = fmt.Sprintf("%s.%s", e.Op, e.Column)
	}
	parts = append(parts, fmt.Sprintf("%s: %s", e.Kind.sentinel(), head))

	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	if e.Reason != "" {
		parts = append(parts, e.Reason)
	}

	if e.Position >= 0 {
		parts = append(parts, fmt.Sprintf("at position %d", e.Position))
	}

	return strings.Join(parts, " - ")
}

// Unwrap returns the sentinel matching the error kind, so callers can use errors.Is.
func (e *OperationError) Unwrap() error { return e.Kind.sentinel() }

// ColumnNotFoundError is returned when a column name does not resolve.
// It is a bounds error: the name selector is outside the table's columns.
type ColumnNotFoundError struct {
	Op         string
	ColumnName string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("%s: column %q not found", e.Op, e.ColumnName)
}

func (e *ColumnNotFoundError) Unwrap() error { return ErrBounds }

func NewTypeError(op, column string, value interface{}, reason string) *OperationError {
	return &OperationError{
		Op:       op,
		Column:   column,
		Value:    value,
		Kind:     KindType,
		Reason:   reason,
		Position: -1,
	}
}

func NewParameterError(op string, value interface{}, reason string) *OperationError {
	return &OperationError{
		Op:       op,
		Value:    value,
		Kind:     KindParameter,
		Reason:   reason,
		Position: -1,
	}
}

func NewBoundsError(op string, position, length int) *OperationError {
	return &OperationError{
		Op:       op,
		Kind:     KindBounds,
		Reason:   fmt.Sprintf("valid range is [0..%d)", length),
		Position: position,
	}
}

func NewFormatError(op string, value interface{}, reason string) *OperationError {
	return &OperationError{
		Op:       op,
		Value:    value,
		Kind:     KindFormat,
		Reason:   reason,
		Position: -1,
	}
}

func NewSchemaMismatch(op, column, reason string) *OperationError {
	return &OperationError{
		Op:       op,
		Column:   column,
		Kind:     KindSchema,
		Reason:   reason,
		Position: -1,
	}
}

// KindOf reports the Kind of err, or "" when err is not an engine error.
func KindOf(err error) Kind {
	switch {
	case errors.Is(err, ErrType):
		return KindType
	case errors.Is(err, ErrParameter):
		return KindParameter
	case errors.Is(err, ErrBounds):
		return KindBounds
	case errors.Is(err, ErrFormat):
		return KindFormat
	case errors.Is(err, ErrSchemaMismatch):
		return KindSchema
	}
	return ""
}
