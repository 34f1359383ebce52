package concat

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
)

// Merge decides which columns a vertical concatenation keeps.
type Merge int

const (
	SetEqual     Merge = iota // same column names, any order; a's order is kept
	OrderedEqual              // same column names in the same order
	Intersect                 // only columns present in both
	Union                     // all columns, missing where a side lacks one
)

func (m Merge) String() string {
	switch m {
	case SetEqual:
		return "set_equal"
	case OrderedEqual:
		return "ordered_equal"
	case Intersect:
		return "intersect"
	case Union:
		return "union"
	default:
		return "unknown"
	}
}

// ParseMerge reads a merge policy name.
func ParseMerge(s string) (Merge, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for m := SetEqual; m <= Union; m++ {
		if m.String() == name {
			return m, nil
		}
	}
	if name == "" {
		return SetEqual, nil
	}
	return 0, tferrors.NewParameterError("vcat", s, "unknown merge policy")
}

// VCat appends the rows of b after the rows of a and re-sorts by the index.
// Rows of a come first among equal index values.
func VCat(a, b *table.Table, merge Merge) (*table.Table, error) {
	if a.IndexType() != b.IndexType() {
		return nil, tferrors.NewTypeError("vcat", b.IndexName(), b.IndexType(),
			fmt.Sprintf("cannot stack %s index onto %s index", b.IndexType(), a.IndexType()))
	}

	names, err := mergeNames(a.Names(), b.Names(), merge)
	if err != nil {
		return nil, err
	}

	cols := make([]*column.Column, 0, len(names))
	for _, name := range names {
		c, err := stack(name, a, b)
		if err != nil {
			return nil, err
		}
		cols = append(cols, c)
	}

	index, _ := column.Concat(a.IndexName(), a.Index(), b.Index())
	result, err := table.Assemble(index, cols)
	if err != nil {
		return nil, err
	}

	slog.Debug("Concatenation completed",
		slog.String("merge", merge.String()),
		slog.Int("result_rows", result.NRow()),
		slog.Int("result_columns", result.NCol()),
	)
	return result, nil
}

func mergeNames(an, bn []string, merge Merge) ([]string, error) {
	inB := func(n string) bool { return slices.Contains(bn, n) }
	inA := func(n string) bool { return slices.Contains(an, n) }

	switch merge {
	case SetEqual:
		if len(an) != len(bn) {
			return nil, mismatch(merge, an, bn)
		}
		for _, n := range an {
			if !inB(n) {
				return nil, mismatch(merge, an, bn)
			}
		}
		return an, nil
	case OrderedEqual:
		if !slices.Equal(an, bn) {
			return nil, mismatch(merge, an, bn)
		}
		return an, nil
	case Intersect:
		out := make([]string, 0, len(an))
		for _, n := range an {
			if inB(n) {
				out = append(out, n)
			}
		}
		return out, nil
	case Union:
		out := slices.Clone(an)
		for _, n := range bn {
			if !inA(n) {
				out = append(out, n)
			}
		}
		return out, nil
	}
	return nil, tferrors.NewParameterError("vcat", int(merge), "unknown merge policy")
}

// stack builds the output column called name, filling the side that lacks it with missing values.
func stack(name string, a, b *table.Table) (*column.Column, error) {
	ca, errA := a.Column(name)
	cb, errB := b.Column(name)
	switch {
	case errA != nil:
		ca = column.Nulls(name, cb.Type(), a.NRow())
	case errB != nil:
		cb = column.Nulls(name, ca.Type(), b.NRow())
	}
	out, ok := column.Concat(name, ca, cb)
	if !ok {
		return nil, tferrors.NewSchemaMismatch("vcat", name,
			fmt.Sprintf("column types %s and %s are incompatible", ca.Type(), cb.Type()))
	}
	return out, nil
}

func mismatch(merge Merge, an, bn []string) error {
	return tferrors.NewSchemaMismatch("vcat", "",
		fmt.Sprintf("%s merge needs matching columns, got %v and %v", merge, an, bn))
}
