package subset

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/validation"
)

// Rows returns the rows picked by sel, in index order.
func Rows(t *table.Table, sel RowSelector) (*table.Table, error) {
	if _, ok := sel.(AllRows); ok || sel == nil {
		return t, nil
	}
	if s, ok := sel.(Span); ok {
		if err := checkSpan("rows", s.From, s.To, t.NRow()); err != nil {
			return nil, err
		}
		return t.Slice(s.From, s.To), nil
	}

	rows, err := resolveRows(t, sel)
	if err != nil {
		return nil, err
	}
	out, err := t.Take(rows)
	if err != nil {
		return nil, err
	}

	slog.Debug("Row subset completed",
		slog.String("selector", fmt.Sprintf("%T", sel)),
		slog.Int("result_rows", out.NRow()),
	)
	return out, nil
}

// Columns returns the non-index columns picked by sel, in selector order.
func Columns(t *table.Table, sel ColumnSelector) (*table.Table, error) {
	if _, ok := sel.(AllColumns); ok || sel == nil {
		return t, nil
	}
	positions, err := resolveColumns(t, sel)
	if err != nil {
		return nil, err
	}
	all := t.Columns()
	cols := make([]*column.Column, len(positions))
	for i, p := range positions {
		cols[i] = all[p]
	}
	return t.WithColumns(cols)
}

// Select applies a row selector then a column selector.
func Select(t *table.Table, rows RowSelector, cols ColumnSelector) (*table.Table, error) {
	// Columns first so rows are only gathered for the columns kept.
	narrowed, err := Columns(t, cols)
	if err != nil {
		return nil, err
	}
	return Rows(narrowed, rows)
}

// Extract returns a single raw column. The column selector must resolve to
// exactly one column.
func Extract(t *table.Table, rows RowSelector, cols ColumnSelector) (*column.Column, error) {
	positions, err := resolveColumns(t, cols)
	if err != nil {
		return nil, err
	}
	if len(positions) != 1 {
		return nil, tferrors.NewParameterError("extract", len(positions), "column selector must resolve to one column")
	}
	out, err := Select(t, rows, cols)
	if err != nil {
		return nil, err
	}
	return out.ColumnAt(0)
}

// ExtractMatrix returns the selected cells as a matrix.
func ExtractMatrix(t *table.Table, rows RowSelector, cols ColumnSelector) (*table.Matrix, error) {
	out, err := Select(t, rows, cols)
	if err != nil {
		return nil, err
	}
	return out.Matrix()
}

// Between returns the rows whose index lies in [from, to]. The bounds must
// match the index type; see Key for accepted values.
func Between(t *table.Table, from, to interface{}) (*table.Table, error) {
	lo, err := keyOf(t, "between", from)
	if err != nil {
		return nil, err
	}
	hi, err := keyOf(t, "between", to)
	if err != nil {
		return nil, err
	}
	start := sort.Search(t.NRow(), func(i int) bool { return t.Key(i) >= lo })
	end := sort.Search(t.NRow(), func(i int) bool { return t.Key(i) > hi })
	if end < start {
		end = start
	}
	return t.Slice(start, end), nil
}

func resolveRows(t *table.Table, sel RowSelector) ([]int, error) {
	n := t.NRow()
	switch s := sel.(type) {
	case At:
		if int(s) < 0 || int(s) >= n {
			return nil, tferrors.NewBoundsError("rows", int(s), n)
		}
		return []int{int(s)}, nil
	case Span:
		if err := checkSpan("rows", s.From, s.To, n); err != nil {
			return nil, err
		}
		return seq(s.From, s.To), nil
	case List:
		for _, i := range s {
			if i < 0 || i >= n {
				return nil, tferrors.NewBoundsError("rows", i, n)
			}
		}
		return []int(s), nil
	case Key:
		k, err := keyOf(t, "rows", s.Value)
		if err != nil {
			return nil, err
		}
		return matchKey(t, k), nil
	case Date:
		if t.IndexType() != column.ColumnTypeTime {
			return nil, tferrors.NewTypeError("rows", t.IndexName(), t.IndexType(), "date selector needs a TIME index")
		}
		d, err := validation.ParseDate(string(s))
		if err != nil {
			return nil, tferrors.NewFormatError("rows", string(s), err.Error())
		}
		k, err := column.TimeKey("rows", d)
		if err != nil {
			return nil, err
		}
		return matchKey(t, k), nil
	case InPeriod:
		return matchPeriod(t, s)
	case AllRows:
		return seq(0, n), nil
	}
	return nil, tferrors.NewParameterError("rows", fmt.Sprintf("%T", sel), "unsupported row selector")
}

func resolveColumns(t *table.Table, sel ColumnSelector) ([]int, error) {
	n := t.NCol()
	switch s := sel.(type) {
	case ColumnAt:
		if int(s) < 0 || int(s) >= n {
			return nil, tferrors.NewBoundsError("columns", int(s), n)
		}
		return []int{int(s)}, nil
	case ColumnSpan:
		if err := checkSpan("columns", s.From, s.To, n); err != nil {
			return nil, err
		}
		return seq(s.From, s.To), nil
	case ColumnList:
		for _, i := range s {
			if i < 0 || i >= n {
				return nil, tferrors.NewBoundsError("columns", i, n)
			}
		}
		return []int(s), nil
	case Name:
		p := t.Position(string(s))
		if p < 0 {
			return nil, &tferrors.ColumnNotFoundError{Op: "columns", ColumnName: string(s)}
		}
		return []int{p}, nil
	case Names:
		out := make([]int, len(s))
		for i, name := range s {
			p := t.Position(name)
			if p < 0 {
				return nil, &tferrors.ColumnNotFoundError{Op: "columns", ColumnName: name}
			}
			out[i] = p
		}
		return out, nil
	case AllColumns, nil:
		return seq(0, n), nil
	}
	return nil, tferrors.NewParameterError("columns", fmt.Sprintf("%T", sel), "unsupported column selector")
}

// matchKey returns the positions of rows with index key k.
func matchKey(t *table.Table, k int64) []int {
	start := sort.Search(t.NRow(), func(i int) bool { return t.Key(i) >= k })
	var rows []int
	for i := start; i < t.NRow() && t.Key(i) == k; i++ {
		rows = append(rows, i)
	}
	return rows
}

func matchPeriod(t *table.Table, p InPeriod) ([]int, error) {
	if t.IndexType() != column.ColumnTypeTime {
		return nil, tferrors.NewTypeError("rows", t.IndexName(), t.IndexType(), "period selector needs a TIME index")
	}
	if p.Quarter != 0 {
		if err := validation.ValidateQuarter(p.Quarter); err != nil {
			return nil, tferrors.NewParameterError("rows", p.Quarter, err.Error())
		}
	}
	if p.Month != 0 {
		if err := validation.ValidateMonth(p.Month); err != nil {
			return nil, tferrors.NewParameterError("rows", p.Month, err.Error())
		}
	}

	idx := t.Index()
	hits := roaring.New()
	for i := 0; i < idx.Len(); i++ {
		ts := idx.Time(i)
		if ts.Year() != p.Year {
			continue
		}
		if p.Quarter != 0 && (int(ts.Month())-1)/3+1 != p.Quarter {
			continue
		}
		if p.Month != 0 && int(ts.Month()) != p.Month {
			continue
		}
		hits.Add(uint32(i))
	}

	matched := hits.ToArray()
	rows := make([]int, len(matched))
	for i, r := range matched {
		rows[i] = int(r)
	}
	return rows, nil
}

// keyOf converts a lookup value to an index key, checking it against the index type.
func keyOf(t *table.Table, op string, v interface{}) (int64, error) {
	switch t.IndexType() {
	case column.ColumnTypeInt:
		switch x := v.(type) {
		case int:
			return int64(x), nil
		case int32:
			return int64(x), nil
		case int64:
			return x, nil
		}
	case column.ColumnTypeTime:
		switch x := v.(type) {
		case time.Time:
			return column.TimeKey(op, x)
		case string:
			ts, err := validation.ParseTime(x)
			if err != nil {
				return 0, tferrors.NewFormatError(op, x, err.Error())
			}
			return column.TimeKey(op, ts)
		}
	}
	return 0, tferrors.NewTypeError(op, t.IndexName(), v,
		fmt.Sprintf("value of type %T does not match %s index", v, t.IndexType()))
}

func checkSpan(op string, from, to, n int) error {
	if from < 0 || from > n {
		return tferrors.NewBoundsError(op, from, n+1)
	}
	if to < from || to > n {
		return tferrors.NewBoundsError(op, to, n+1)
	}
	return nil
}

func seq(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
