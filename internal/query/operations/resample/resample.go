package resample

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/period"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/query/aggregate"
)

// IndexAt chooses which original index value labels a group.
type IndexAt int

const (
	First IndexAt = iota
	Last
)

func (a IndexAt) String() string {
	if a == Last {
		return "last"
	}
	return "first"
}

// ParseIndexAt reads "first" or "last".
func ParseIndexAt(s string) (IndexAt, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "first":
		return First, nil
	case "last":
		return Last, nil
	}
	return 0, tferrors.NewParameterError("resample", s, "index position must be first or last")
}

// group is a run of rows [start, end) sharing one period bucket.
type group struct {
	start, end int
}

// Apply buckets rows by p and reduces every column per bucket with r.
// Output columns are FLOAT and named "<column>_<reducer>".
func Apply(t *table.Table, p period.Period, r aggregate.Reducer, at IndexAt) (*table.Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if t.IndexType() != column.ColumnTypeTime {
		return nil, tferrors.NewTypeError("resample", t.IndexName(), t.IndexType(), "resampling needs a TIME index")
	}
	for _, c := range t.Columns() {
		if !c.Type().IsNumeric() {
			return nil, tferrors.NewTypeError("resample", c.Name(), c.Type(), "column is not numeric")
		}
	}
	if gap, ok := minGap(t); ok && gap > p.MaxSpan() {
		return nil, tferrors.NewParameterError("resample", p.String(),
			fmt.Sprintf("period is shorter than the smallest index gap %s; upsampling is not supported", gap))
	}

	groups := groupRows(t, p)

	rows := make([]int, len(groups))
	for g, grp := range groups {
		rows[g] = grp.start
		if at == Last {
			rows[g] = grp.end - 1
		}
	}

	cols := make([]*column.Column, 0, t.NCol())
	for _, c := range t.Columns() {
		vals, valid := c.Float64s()
		out := make([]float64, len(groups))
		ok := make([]bool, len(groups))
		buf := make([]float64, 0)
		for g, grp := range groups {
			buf = buf[:0]
			for i := grp.start; i < grp.end; i++ {
				if valid[i] {
					buf = append(buf, vals[i])
				}
			}
			out[g], ok[g] = r.Reduce(buf)
		}
		cols = append(cols, column.MaskedFloats(c.Name()+"_"+r.Name, out, ok))
	}

	result, err := table.Assemble(t.Index().Take(rows), cols)
	if err != nil {
		return nil, err
	}

	slog.Debug("Resample completed",
		slog.String("period", p.String()),
		slog.String("reducer", r.Name),
		slog.Int("input_rows", t.NRow()),
		slog.Int("result_rows", result.NRow()),
	)
	return result, nil
}

// groupRows splits the sorted index into runs of equal floored keys.
func groupRows(t *table.Table, p period.Period) []group {
	var groups []group
	n := t.NRow()
	for i := 0; i < n; {
		bucket := p.FloorKey(t.Key(i))
		j := i + 1
		for j < n && p.FloorKey(t.Key(j)) == bucket {
			j++
		}
		groups = append(groups, group{start: i, end: j})
		i = j
	}
	return groups
}

// minGap returns the smallest distance between consecutive index values.
func minGap(t *table.Table) (time.Duration, bool) {
	if t.NRow() < 2 {
		return 0, false
	}
	gap := t.Key(1) - t.Key(0)
	for i := 2; i < t.NRow(); i++ {
		gap = min(gap, t.Key(i)-t.Key(i-1))
	}
	return time.Duration(gap), true
}
