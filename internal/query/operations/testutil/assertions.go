package testutil

import (
	"math"
	"testing"

	"github.com/leengari/timeframe/internal/domain/table"
)

// AssertRowCount checks if the result has the expected number of rows
func AssertRowCount(t *testing.T, tbl *table.Table, expected int, context string) {
	t.Helper()
	if tbl.NRow() != expected {
		t.Errorf("%s: expected %d rows, got %d", context, expected, tbl.NRow())
	}
}

// AssertColumnCount checks if the result has the expected number of non-index columns
func AssertColumnCount(t *testing.T, tbl *table.Table, expected int, context string) {
	t.Helper()
	if tbl.NCol() != expected {
		t.Errorf("%s: expected %d columns, got %d", context, expected, tbl.NCol())
	}
}

// AssertColumnExists checks if a column exists in a table
func AssertColumnExists(t *testing.T, tbl *table.Table, column, context string) {
	t.Helper()
	if !tbl.Has(column) {
		t.Errorf("%s: expected column '%s' to exist, have %v", context, column, tbl.Names())
	}
}

// AssertColumnNotExists checks if a column does not exist in a table
func AssertColumnNotExists(t *testing.T, tbl *table.Table, column, context string) {
	t.Helper()
	if tbl.Has(column) {
		t.Errorf("%s: did not expect column '%s' to exist", context, column)
	}
}

// AssertIndexSorted checks the index is non-decreasing
func AssertIndexSorted(t *testing.T, tbl *table.Table, context string) {
	t.Helper()
	if !tbl.Index().IsSorted() {
		t.Errorf("%s: index is not sorted: %v", context, tbl.Index())
	}
}

// AssertMissing checks that the cell at row i of column is missing
func AssertMissing(t *testing.T, tbl *table.Table, column string, i int, context string) {
	t.Helper()
	c, err := tbl.Column(column)
	if err != nil {
		t.Fatalf("%s: %v", context, err)
	}
	if !c.IsNull(i) {
		t.Errorf("%s: expected missing value at row %d, got: %v", context, i, c.Value(i))
	}
}

// AssertFloat checks the numeric cell at row i of column is within 1e-9 of want
func AssertFloat(t *testing.T, tbl *table.Table, column string, i int, want float64, context string) {
	t.Helper()
	c, err := tbl.Column(column)
	if err != nil {
		t.Fatalf("%s: %v", context, err)
	}
	if c.IsNull(i) {
		t.Errorf("%s: expected %g at row %d, got missing", context, want, i)
		return
	}
	if got := c.Float(i); math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: expected %g at row %d, got %g", context, want, i, got)
	}
}
