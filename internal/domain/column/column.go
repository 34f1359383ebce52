package column

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// Column is a named, immutable, homogeneously typed sequence of values.
// Missing values are Arrow nulls. Columns are never mutated after creation,
// so derived columns may share the underlying array.
type Column struct {
	name string
	typ  ColumnType
	arr  arrow.Array
}

// New wraps an Arrow array as a column.
// Only int64, float64, string, bool and nanosecond timestamp arrays are supported.
func New(name string, arr arrow.Array) (*Column, error) {
	typ, ok := TypeOf(arr.DataType())
	if !ok {
		return nil, tferrors.NewTypeError("column", name, arr.DataType().String(), "unsupported column data type")
	}
	return &Column{name: name, typ: typ, arr: arr}, nil
}

// Name returns the column name.
func (c *Column) Name() string { return c.name }

// Type returns the column's semantic type.
func (c *Column) Type() ColumnType { return c.typ }

// Len returns the number of values.
func (c *Column) Len() int { return c.arr.Len() }

// NullN returns the number of missing values.
func (c *Column) NullN() int { return c.arr.NullN() }

// IsNull reports whether the value at i is missing.
func (c *Column) IsNull(i int) bool { return c.arr.IsNull(i) }

// Array exposes the underlying Arrow array. Callers must not modify it.
func (c *Column) Array() arrow.Array { return c.arr }

// WithName returns a column with the same values under a new name.
func (c *Column) WithName(name string) *Column {
	if name == c.name {
		return c
	}
	return &Column{name: name, typ: c.typ, arr: c.arr}
}

// Value returns the value at i as int64, float64, string, bool or time.Time,
// or nil when missing.
func (c *Column) Value(i int) interface{} {
	if c.arr.IsNull(i) {
		return nil
	}
	switch a := c.arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Float64:
		return a.Value(i)
	case *array.String:
		return a.Value(i)
	case *array.Boolean:
		return a.Value(i)
	case *array.Timestamp:
		return time.Unix(0, int64(a.Value(i))).UTC()
	}
	return nil
}

// Values returns all values, with nil for missing.
func (c *Column) Values() []interface{} {
	out := make([]interface{}, c.Len())
	for i := range out {
		out[i] = c.Value(i)
	}
	return out
}

// Int returns the INT value at i. The result is undefined for missing values.
func (c *Column) Int(i int) int64 { return c.arr.(*array.Int64).Value(i) }

// Float returns the value at i as float64 for numeric columns.
func (c *Column) Float(i int) float64 {
	switch a := c.arr.(type) {
	case *array.Float64:
		return a.Value(i)
	case *array.Int64:
		return float64(a.Value(i))
	}
	return math.NaN()
}

// Text returns the TEXT value at i.
func (c *Column) Text(i int) string { return c.arr.(*array.String).Value(i) }

// Bool returns the BOOL value at i.
func (c *Column) Bool(i int) bool { return c.arr.(*array.Boolean).Value(i) }

// Time returns the TIME value at i.
func (c *Column) Time(i int) time.Time {
	return time.Unix(0, int64(c.arr.(*array.Timestamp).Value(i))).UTC()
}

// Key returns the ordering key at i for indexable columns: the integer itself
// for INT, nanoseconds since the Unix epoch for TIME.
func (c *Column) Key(i int) int64 {
	switch a := c.arr.(type) {
	case *array.Int64:
		return a.Value(i)
	case *array.Timestamp:
		return int64(a.Value(i))
	}
	panic(fmt.Sprintf("column %q of type %s has no ordering key", c.name, c.typ))
}

// Keys returns all ordering keys of an indexable column.
func (c *Column) Keys() []int64 {
	keys := make([]int64, c.Len())
	for i := range keys {
		keys[i] = c.Key(i)
	}
	return keys
}

// Float64s converts a numeric column to float64 values plus a validity mask.
func (c *Column) Float64s() ([]float64, []bool) {
	vals := make([]float64, c.Len())
	valid := make([]bool, c.Len())
	for i := range vals {
		if c.arr.IsNull(i) {
			continue
		}
		vals[i] = c.Float(i)
		valid[i] = true
	}
	return vals, valid
}

// Int64s returns the values of an INT column plus a validity mask.
func (c *Column) Int64s() ([]int64, []bool) {
	a := c.arr.(*array.Int64)
	vals := make([]int64, c.Len())
	valid := make([]bool, c.Len())
	for i := range vals {
		if a.IsNull(i) {
			continue
		}
		vals[i] = a.Value(i)
		valid[i] = true
	}
	return vals, valid
}

// IsSorted reports whether an indexable column is non-decreasing.
func (c *Column) IsSorted() bool {
	for i := 1; i < c.Len(); i++ {
		if c.Key(i-1) > c.Key(i) {
			return false
		}
	}
	return true
}

// Slice returns the rows [from, to) sharing the underlying buffers.
func (c *Column) Slice(from, to int) *Column {
	return &Column{name: c.name, typ: c.typ, arr: array.NewSlice(c.arr, int64(from), int64(to))}
}

// Format renders the value at i for display; missing values render as "missing".
func (c *Column) Format(i int) string {
	v := c.Value(i)
	switch x := v.(type) {
	case nil:
		return "missing"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format(time.RFC3339Nano)
	case float64:
		return fmt.Sprintf("%g", x)
	default:
		return fmt.Sprintf("%v", x)
	}
}

func (c *Column) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)[", c.name, c.typ)
	for i := 0; i < c.Len(); i++ {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.Format(i))
	}
	b.WriteString("]")
	return b.String()
}
