package transform

import (
	"log/slog"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
)

// Lag shifts every non-index column k rows forward; the first k rows become missing.
func Lag(t *table.Table, k int) (*table.Table, error) {
	if err := checkOffset("lag", k); err != nil {
		return nil, err
	}
	return shiftAll(t, "lag", k)
}

// Lead shifts every non-index column k rows backward; the last k rows become missing.
func Lead(t *table.Table, k int) (*table.Table, error) {
	if err := checkOffset("lead", k); err != nil {
		return nil, err
	}
	return shiftAll(t, "lead", -k)
}

// Diff replaces every column with x[i] - x[i-k]. INT columns stay INT and
// FLOAT columns stay FLOAT; any other column type fails before work starts.
func Diff(t *table.Table, k int) (*table.Table, error) {
	if err := checkOffset("diff", k); err != nil {
		return nil, err
	}
	if err := checkNumeric(t, "diff"); err != nil {
		return nil, err
	}

	cols := t.Columns()
	for i, c := range cols {
		if c.Type() == column.ColumnTypeInt {
			vals, valid := c.Int64s()
			out, ok := lagged(vals, valid, k, difference[int64])
			cols[i] = column.MaskedInts(c.Name(), out, ok)
			continue
		}
		vals, valid := c.Float64s()
		out, ok := lagged(vals, valid, k, difference[float64])
		cols[i] = column.MaskedFloats(c.Name(), out, ok)
	}
	return finish(t, "diff", cols)
}

// PctChange replaces every column with x[i]/x[i-k] - 1 as FLOAT.
func PctChange(t *table.Table, k int) (*table.Table, error) {
	if err := checkOffset("pct_change", k); err != nil {
		return nil, err
	}
	if err := checkNumeric(t, "pct_change"); err != nil {
		return nil, err
	}

	cols := t.Columns()
	for i, c := range cols {
		if c.Type() == column.ColumnTypeInt {
			vals, valid := c.Int64s()
			out, ok := lagged(vals, valid, k, pctChange[int64])
			cols[i] = column.MaskedFloats(c.Name(), out, ok)
			continue
		}
		vals, valid := c.Float64s()
		out, ok := lagged(vals, valid, k, pctChange[float64])
		cols[i] = column.MaskedFloats(c.Name(), out, ok)
	}
	return finish(t, "pct_change", cols)
}

func shiftAll(t *table.Table, op string, k int) (*table.Table, error) {
	cols := t.Columns()
	for i, c := range cols {
		cols[i] = c.Shift(k)
	}
	return finish(t, op, cols)
}

func finish(t *table.Table, op string, cols []*column.Column) (*table.Table, error) {
	out, err := t.WithColumns(cols)
	if err != nil {
		return nil, err
	}
	slog.Debug("Transform completed",
		slog.String("op", op),
		slog.Int("result_rows", out.NRow()),
		slog.Int("columns", out.NCol()),
	)
	return out, nil
}

func checkOffset(op string, k int) error {
	if k < 1 {
		return tferrors.NewParameterError(op, k, "offset must be >= 1")
	}
	return nil
}

func checkNumeric(t *table.Table, op string) error {
	for _, c := range t.Columns() {
		if !c.Type().IsNumeric() {
			return tferrors.NewTypeError(op, c.Name(), c.Type(), "column is not numeric")
		}
	}
	return nil
}
