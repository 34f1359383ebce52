package table

import (
	"fmt"
	"math"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// Matrix is the non-index part of a table with every column stored under one type.
type Matrix struct {
	Type  column.ColumnType
	Names []string
	cols  []*column.Column
	rows  int
}

func (m *Matrix) NRow() int { return m.rows }
func (m *Matrix) NCol() int { return len(m.cols) }

// At returns the cell at row i, column j, or nil when missing.
func (m *Matrix) At(i, j int) interface{} { return m.cols[j].Value(i) }

// Row returns row i.
func (m *Matrix) Row(i int) []interface{} {
	out := make([]interface{}, len(m.cols))
	for j, c := range m.cols {
		out[j] = c.Value(i)
	}
	return out
}

// Float64s returns the matrix in row-major order; missing cells are NaN.
// Only valid for numeric matrices.
func (m *Matrix) Float64s() [][]float64 {
	out := make([][]float64, m.rows)
	for i := range out {
		out[i] = make([]float64, len(m.cols))
		for j, c := range m.cols {
			out[i][j] = c.Float(i)
			if c.IsNull(i) {
				out[i][j] = math.NaN()
			}
		}
	}
	return out
}

// Matrix unifies the non-index columns to a single type: all INT stays INT,
// INT mixed with FLOAT becomes FLOAT, and TEXT, BOOL or TIME must be uniform.
func (t *Table) Matrix() (*Matrix, error) {
	m := &Matrix{Names: t.Names(), rows: t.NRow()}
	if len(t.columns) == 0 {
		return m, nil
	}
	typ := t.columns[0].Type()
	for _, c := range t.columns[1:] {
		unified, ok := column.Unify(typ, c.Type())
		if !ok {
			return nil, tferrors.NewTypeError("matrix", c.Name(), c.Type(),
				fmt.Sprintf("cannot combine %s and %s columns", typ, c.Type()))
		}
		typ = unified
	}
	m.Type = typ
	m.cols = make([]*column.Column, len(t.columns))
	for j, c := range t.columns {
		m.cols[j], _ = c.Cast(typ)
	}
	return m, nil
}
