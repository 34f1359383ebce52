package rolling

import (
	"log/slog"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/query/aggregate"
)

// Apply reduces each window of `window` consecutive values of a numeric column.
// Windows are right aligned: output row j covers input rows j..j+window-1 and
// is indexed by row j+window-1, so the result has NRow()-window+1 rows
// (none when window exceeds the row count). The single output column is
// FLOAT and named "<column>_<reducer>".
func Apply(t *table.Table, name string, window int, r aggregate.Reducer) (*table.Table, error) {
	if window < 1 {
		return nil, tferrors.NewParameterError("rolling", window, "window must be >= 1")
	}
	c, err := t.Column(name)
	if err != nil {
		return nil, err
	}
	if !c.Type().IsNumeric() {
		return nil, tferrors.NewTypeError("rolling", name, c.Type(), "column is not numeric")
	}

	n := max(t.NRow()-window+1, 0)
	vals, valid := c.Float64s()
	out := make([]float64, n)
	ok := make([]bool, n)
	buf := make([]float64, 0, window)
	for j := range n {
		buf = buf[:0]
		for i := j; i < j+window; i++ {
			if valid[i] {
				buf = append(buf, vals[i])
			}
		}
		out[j], ok[j] = r.Reduce(buf)
	}

	from := 0
	if n > 0 {
		from = window - 1
	}
	result, err := table.Assemble(
		t.Index().Slice(from, from+n),
		[]*column.Column{column.MaskedFloats(name+"_"+r.Name, out, ok)},
	)
	if err != nil {
		return nil, err
	}

	slog.Debug("Rolling window completed",
		slog.String("column", name),
		slog.Int("window", window),
		slog.String("reducer", r.Name),
		slog.Int("result_rows", result.NRow()),
	)
	return result, nil
}
