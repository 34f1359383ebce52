package timeframe

import tferrors "github.com/leengari/timeframe/internal/domain/errors"

// Error kinds. Every error returned by this package unwraps to one of them.
var (
	ErrType           = tferrors.ErrType
	ErrParameter      = tferrors.ErrParameter
	ErrBounds         = tferrors.ErrBounds
	ErrFormat         = tferrors.ErrFormat
	ErrSchemaMismatch = tferrors.ErrSchemaMismatch
)

// OperationError describes a violated operation contract.
type OperationError = tferrors.OperationError

// ColumnNotFoundError is returned when a column name does not resolve. It unwraps to ErrBounds.
type ColumnNotFoundError = tferrors.ColumnNotFoundError
