package table

import (
	"fmt"
	"slices"
	"sort"

	"go.uber.org/multierr"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// DefaultIndexName names generated sequential indexes and is the column
// picked as index by FromColumns when present.
const DefaultIndexName = "Index"

// Assemble validates index and cols and returns a table ordered by the index.
//
// A TEXT index is parsed as dates or timestamps; FLOAT and BOOL indexes are rejected.
// Missing index values are a parameter error. Every length or naming violation
// among the columns is reported, combined into one error. When the index is not
// sorted, all columns are reordered by a stable sort on the index.
func Assemble(index *column.Column, cols []*column.Column) (*Table, error) {
	if index == nil {
		return nil, tferrors.NewParameterError("construct", nil, "index column is required")
	}

	switch index.Type() {
	case column.ColumnTypeInt, column.ColumnTypeTime:
	case column.ColumnTypeText:
		parsed, err := column.ParseTimes(index)
		if err != nil {
			return nil, err
		}
		index = parsed
	default:
		return nil, tferrors.NewTypeError("construct", index.Name(), index.Type(), "index must be INT or TIME")
	}

	if index.NullN() > 0 {
		return nil, tferrors.NewParameterError("construct", index.Name(),
			fmt.Sprintf("index contains %d missing values", index.NullN()))
	}

	var errs error
	n := index.Len()
	lookup := make(map[string]int, len(cols))
	for i, c := range cols {
		if c == nil {
			errs = multierr.Append(errs, tferrors.NewParameterError("construct", i, "nil column"))
			continue
		}
		if c.Len() != n {
			err := tferrors.NewParameterError("construct", c.Len(), fmt.Sprintf("column length differs from index length %d", n))
			err.Column = c.Name()
			errs = multierr.Append(errs, err)
		}
		switch {
		case c.Name() == "":
			err := tferrors.NewParameterError("construct", nil, "column name is empty")
			err.Position = i
			errs = multierr.Append(errs, err)
		case c.Name() == index.Name():
			err := tferrors.NewParameterError("construct", c.Name(), "column name equals index name")
			err.Column = c.Name()
			errs = multierr.Append(errs, err)
		default:
			if _, dup := lookup[c.Name()]; dup {
				err := tferrors.NewParameterError("construct", c.Name(), "duplicate column name")
				err.Column = c.Name()
				errs = multierr.Append(errs, err)
				continue
			}
			lookup[c.Name()] = i
		}
	}
	if errs != nil {
		return nil, errs
	}

	t := &Table{index: index, columns: slices.Clone(cols), lookup: lookup}
	if index.IsSorted() {
		return t, nil
	}
	return t.sorted(), nil
}

// sorted reorders every column by a stable sort of the index keys.
func (t *Table) sorted() *Table {
	keys := t.index.Keys()
	perm := make([]int, len(keys))
	for i := range perm {
		perm[i] = i
	}
	sort.SliceStable(perm, func(a, b int) bool { return keys[perm[a]] < keys[perm[b]] })

	cols := make([]*column.Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.Take(perm)
	}
	return &Table{index: t.index.Take(perm), columns: cols, lookup: t.lookup}
}

// FromColumns builds a table and picks the index automatically: a column named
// "Index" if there is one; otherwise, for a single column, a generated sequence
// 1..n; otherwise the first column.
func FromColumns(cols ...*column.Column) (*Table, error) {
	if len(cols) == 0 {
		return nil, tferrors.NewParameterError("construct", nil, "at least one column is required")
	}
	for _, c := range cols {
		if c != nil && c.Name() == DefaultIndexName {
			return FromColumnsWithIndex(cols, DefaultIndexName)
		}
	}
	if len(cols) == 1 {
		return FromColumn(cols[0], nil)
	}
	return Assemble(cols[0], cols[1:])
}

// FromColumnsWithIndex builds a table using the column called name as the index.
func FromColumnsWithIndex(cols []*column.Column, name string) (*Table, error) {
	for i, c := range cols {
		if c == nil || c.Name() != name {
			continue
		}
		rest := make([]*column.Column, 0, len(cols)-1)
		rest = append(rest, cols[:i]...)
		rest = append(rest, cols[i+1:]...)
		return Assemble(c, rest)
	}
	return nil, &tferrors.ColumnNotFoundError{Op: "construct", ColumnName: name}
}

// FromColumnsAndIndex builds a table from columns and an external index.
func FromColumnsAndIndex(cols []*column.Column, index *column.Column) (*Table, error) {
	return Assemble(index, cols)
}

// FromColumn builds a one-column table. A nil index generates the sequence 1..n.
func FromColumn(col *column.Column, index *column.Column) (*Table, error) {
	if col == nil {
		return nil, tferrors.NewParameterError("construct", nil, "nil column")
	}
	if index == nil {
		index = column.Sequence(DefaultIndexName, 1, col.Len())
	}
	return Assemble(index, []*column.Column{col})
}

// FromMatrix builds a table from row-major values. Column types are inferred
// per column and nil cells are missing. names defaults to x1..xn; a nil index
// generates the sequence 1..n.
func FromMatrix(data [][]interface{}, names []string, index *column.Column) (*Table, error) {
	width := len(names)
	if len(data) > 0 {
		width = len(data[0])
	}
	for i, row := range data {
		if len(row) != width {
			err := tferrors.NewParameterError("from_matrix", len(row), fmt.Sprintf("row width differs from %d", width))
			err.Position = i
			return nil, err
		}
	}
	if names == nil {
		names = make([]string, width)
		for j := range names {
			names[j] = fmt.Sprintf("x%d", j+1)
		}
	}
	if len(names) != width {
		return nil, tferrors.NewParameterError("from_matrix", len(names), fmt.Sprintf("expected %d column names", width))
	}

	cols := make([]*column.Column, width)
	vals := make([]interface{}, len(data))
	for j := range cols {
		for i, row := range data {
			vals[i] = row[j]
		}
		c, err := column.Infer(names[j], vals)
		if err != nil {
			return nil, err
		}
		cols[j] = c
	}
	if index == nil {
		index = column.Sequence(DefaultIndexName, 1, len(data))
	}
	return Assemble(index, cols)
}
