package table

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// Table is an immutable set of equally long columns ordered by an index column.
//
// The index is INT or TIME, contains no missing values and is non-decreasing.
// Non-index column names are unique and differ from the index name.
// Tables are only created through Assemble, which enforces all of the above.
type Table struct {
	index   *column.Column
	columns []*column.Column
	lookup  map[string]int
}

// NRow returns the number of rows.
func (t *Table) NRow() int { return t.index.Len() }

// NCol returns the number of non-index columns.
func (t *Table) NCol() int { return len(t.columns) }

// Size returns (rows, non-index columns).
func (t *Table) Size() (int, int) { return t.NRow(), t.NCol() }

// Index returns the index column.
func (t *Table) Index() *column.Column { return t.index }

func (t *Table) IndexName() string { return t.index.Name() }

func (t *Table) IndexType() column.ColumnType { return t.index.Type() }

// Names returns the non-index column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name()
	}
	return names
}

// Has reports whether a non-index column called name exists.
func (t *Table) Has(name string) bool {
	_, ok := t.lookup[name]
	return ok
}

// Position returns the position of a non-index column, or -1.
func (t *Table) Position(name string) int {
	if i, ok := t.lookup[name]; ok {
		return i
	}
	return -1
}

// Column returns the non-index column called name.
func (t *Table) Column(name string) (*column.Column, error) {
	i, ok := t.lookup[name]
	if !ok {
		return nil, &tferrors.ColumnNotFoundError{Op: "column", ColumnName: name}
	}
	return t.columns[i], nil
}

// ColumnAt returns the non-index column at position i.
func (t *Table) ColumnAt(i int) (*column.Column, error) {
	if i < 0 || i >= len(t.columns) {
		return nil, tferrors.NewBoundsError("column_at", i, len(t.columns))
	}
	return t.columns[i], nil
}

// Columns returns the non-index columns. The slice is a copy; the columns are shared.
func (t *Table) Columns() []*column.Column {
	out := make([]*column.Column, len(t.columns))
	copy(out, t.columns)
	return out
}

// Key returns the ordering key of row i.
func (t *Table) Key(i int) int64 { return t.index.Key(i) }

// Take returns the rows at the given positions, re-sorted stably by the index.
// Positions may repeat.
func (t *Table) Take(rows []int) (*Table, error) {
	n := t.NRow()
	for _, r := range rows {
		if r < 0 || r >= n {
			return nil, tferrors.NewBoundsError("take", r, n)
		}
	}
	cols := make([]*column.Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.Take(rows)
	}
	return Assemble(t.index.Take(rows), cols)
}

// Slice returns rows [from, to) sharing the underlying arrays.
func (t *Table) Slice(from, to int) *Table {
	cols := make([]*column.Column, len(t.columns))
	for i, c := range t.columns {
		cols[i] = c.Slice(from, to)
	}
	return &Table{index: t.index.Slice(from, to), columns: cols, lookup: t.lookup}
}

// WithColumns returns a table with the same index and the given columns.
func (t *Table) WithColumns(cols []*column.Column) (*Table, error) {
	return Assemble(t.index, cols)
}

// Head returns the first n rows (all rows when n exceeds the row count).
func (t *Table) Head(n int) *Table {
	n = clamp(n, t.NRow())
	return t.Slice(0, n)
}

// Tail returns the last n rows.
func (t *Table) Tail(n int) *Table {
	n = clamp(n, t.NRow())
	return t.Slice(t.NRow()-n, t.NRow())
}

// Rename renames a column, the index included.
func (t *Table) Rename(oldName, newName string) (*Table, error) {
	if oldName == newName {
		return t, nil
	}
	if newName == t.IndexName() || t.Has(newName) {
		return nil, tferrors.NewParameterError("rename", newName, "column name already in use")
	}
	if oldName == t.IndexName() {
		return Assemble(t.index.WithName(newName), t.columns)
	}
	i, ok := t.lookup[oldName]
	if !ok {
		return nil, &tferrors.ColumnNotFoundError{Op: "rename", ColumnName: oldName}
	}
	cols := t.Columns()
	cols[i] = cols[i].WithName(newName)
	return Assemble(t.index, cols)
}

// String renders the table as tab-aligned text.
func (t *Table) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d×%d table indexed by %s (%s)\n", t.NRow(), t.NCol(), t.IndexName(), t.IndexType())

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)
	header := append([]string{t.IndexName()}, t.Names()...)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for i := 0; i < t.NRow(); i++ {
		cells := make([]string, 0, len(t.columns)+1)
		cells = append(cells, t.index.Format(i))
		for _, c := range t.columns {
			cells = append(cells, c.Format(i))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	return sb.String()
}

func clamp(n, limit int) int {
	if n < 0 {
		return 0
	}
	if n > limit {
		return limit
	}
	return n
}
