package join

import (
	"fmt"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
)

// validateJoin checks both tables exist and share an index type
func validateJoin(left, right *table.Table) error {
	if left == nil {
		return tferrors.NewParameterError("join", nil, "left table is nil")
	}
	if right == nil {
		return tferrors.NewParameterError("join", nil, "right table is nil")
	}
	if left.IndexType() != right.IndexType() {
		return tferrors.NewTypeError("join", right.IndexName(), right.IndexType(),
			fmt.Sprintf("cannot join %s index with %s index", left.IndexType(), right.IndexType()))
	}
	return nil
}

// uniqueName returns name, or name_1, name_2, ... whichever is first unused
func uniqueName(name string, used map[string]bool) string {
	if !used[name] {
		return name
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s_%d", name, i)
		if !used[candidate] {
			return candidate
		}
	}
}

// buildIndex takes each output key from the left index, or from the right
// index when the row has no left match
func buildIndex(left, right *table.Table, leftRows, rightRows []int) *column.Column {
	b := column.NewBuilder(left.IndexType(), len(leftRows))
	for k := range leftRows {
		if leftRows[k] >= 0 {
			b.AppendFrom(left.Index(), leftRows[k])
		} else {
			b.AppendFrom(right.Index(), rightRows[k])
		}
	}
	return b.Finish(left.IndexName())
}

// combineColumns gathers the left columns then the right columns, renaming
// right columns whose names are already taken
func combineColumns(left, right *table.Table, leftRows, rightRows []int) []*column.Column {
	used := map[string]bool{left.IndexName(): true}
	cols := make([]*column.Column, 0, left.NCol()+right.NCol())

	for _, c := range left.Columns() {
		used[c.Name()] = true
		cols = append(cols, c.Take(leftRows))
	}
	for _, c := range right.Columns() {
		name := uniqueName(c.Name(), used)
		used[name] = true
		cols = append(cols, c.Take(rightRows).WithName(name))
	}
	return cols
}
