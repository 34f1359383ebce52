package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOperationErrorUnwrapsToKindSentinel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		kind     Kind
	}{
		{"type", NewTypeError("diff", "label", nil, "not numeric"), ErrType, KindType},
		{"parameter", NewParameterError("lag", 0, "k must be >= 1"), ErrParameter, KindParameter},
		{"bounds", NewBoundsError("subset", 12, 10), ErrBounds, KindBounds},
		{"format", NewFormatError("subset", "2017-13-45", "expected yyyy-mm-dd"), ErrFormat, KindFormat},
		{"schema", NewSchemaMismatch("vcat", "x2", "missing in right table"), ErrSchemaMismatch, KindSchema},
		{"column not found", &ColumnNotFoundError{Op: "select", ColumnName: "nope"}, ErrBounds, KindBounds},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(tt.err))

			wrapped := fmt.Errorf("pipeline step 3: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.kind, KindOf(wrapped))
		})
	}
}

func TestOperationErrorMessage(t *testing.T) {
	err := NewBoundsError("subset", 12, 10)
	assert.Equal(t, "bounds error: subset - valid range is [0..10) - at position 12", err.Error())

	err = NewTypeError("diff", "label", "TEXT", "column type does not support subtraction")
	assert.Contains(t, err.Error(), "diff.label")
	assert.Contains(t, err.Error(), "value=TEXT")
}

func TestKindOfForeignError(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(errors.New("boom")))
	assert.Equal(t, Kind(""), KindOf(nil))
}
