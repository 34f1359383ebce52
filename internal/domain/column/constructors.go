package column

import (
	"fmt"
	"time"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/validation"
)

func Ints(name string, vals []int64) *Column {
	b := NewBuilder(ColumnTypeInt, len(vals))
	for _, v := range vals {
		b.appendInt(v)
	}
	return b.Finish(name)
}

func Floats(name string, vals []float64) *Column {
	b := NewBuilder(ColumnTypeFloat, len(vals))
	for _, v := range vals {
		b.AppendFloat(v)
	}
	return b.Finish(name)
}

func Texts(name string, vals []string) *Column {
	b := NewBuilder(ColumnTypeText, len(vals))
	for _, v := range vals {
		_ = b.Append(v)
	}
	return b.Finish(name)
}

func Bools(name string, vals []bool) *Column {
	b := NewBuilder(ColumnTypeBool, len(vals))
	for _, v := range vals {
		_ = b.Append(v)
	}
	return b.Finish(name)
}

// Times builds a TIME column. An instant outside MinTime..MaxTime is a
// parameter error naming its position.
func Times(name string, vals []time.Time) (*Column, error) {
	b := NewBuilder(ColumnTypeTime, len(vals))
	for i, v := range vals {
		if err := b.AppendTime(v); err != nil {
			b.Finish(name)
			return nil, atRow(err, name, i)
		}
	}
	return b.Finish(name), nil
}

func atRow(err error, name string, i int) error {
	if oe, ok := err.(*tferrors.OperationError); ok {
		oe.Column = name
		oe.Position = i
	}
	return err
}

// MaskedInts builds an INT column where valid[i] == false marks a missing value.
func MaskedInts(name string, vals []int64, valid []bool) *Column {
	b := NewBuilder(ColumnTypeInt, len(vals))
	for i, v := range vals {
		if !valid[i] {
			b.AppendNull()
			continue
		}
		b.appendInt(v)
	}
	return b.Finish(name)
}

// MaskedFloats builds a FLOAT column where valid[i] == false marks a missing value.
func MaskedFloats(name string, vals []float64, valid []bool) *Column {
	b := NewBuilder(ColumnTypeFloat, len(vals))
	for i, v := range vals {
		if !valid[i] {
			b.AppendNull()
			continue
		}
		b.AppendFloat(v)
	}
	return b.Finish(name)
}

// Sequence returns an INT column counting from start, n values long.
func Sequence(name string, start int64, n int) *Column {
	b := NewBuilder(ColumnTypeInt, n)
	for i := range n {
		b.appendInt(start + int64(i))
	}
	return b.Finish(name)
}

// Nulls returns a column of n missing values.
func Nulls(name string, typ ColumnType, n int) *Column {
	b := NewBuilder(typ, n)
	b.AppendNulls(n)
	return b.Finish(name)
}

// FromValues builds a column of type typ; nil entries are missing.
func FromValues(name string, typ ColumnType, vals []interface{}) (*Column, error) {
	b := NewBuilder(typ, len(vals))
	for i, v := range vals {
		if err := b.Append(v); err != nil {
			b.Finish(name)
			return nil, fmt.Errorf("column %q row %d: %w", name, i, err)
		}
	}
	return b.Finish(name), nil
}

// Infer builds a column whose type is taken from the values: the first
// non-nil value decides, except that a mix of integers and floats becomes FLOAT.
// An all-nil input yields a FLOAT column of missing values.
func Infer(name string, vals []interface{}) (*Column, error) {
	typ := ColumnType("")
	for _, v := range vals {
		if v == nil {
			continue
		}
		vt, ok := inferType(v)
		if !ok {
			return nil, tferrors.NewTypeError("column", name, v, fmt.Sprintf("unsupported value type %T", v))
		}
		if typ == "" {
			typ = vt
			continue
		}
		unified, ok := Unify(typ, vt)
		if !ok {
			return nil, tferrors.NewTypeError("column", name, v, fmt.Sprintf("mixed value types %s and %s", typ, vt))
		}
		typ = unified
	}
	if typ == "" {
		typ = ColumnTypeFloat
	}
	return FromValues(name, typ, vals)
}

// ParseTimes converts a TEXT column of date or timestamp strings into a TIME column.
// Missing values stay missing; an unparseable string is a format error.
func ParseTimes(c *Column) (*Column, error) {
	if c.Type() != ColumnTypeText {
		return nil, tferrors.NewTypeError("parse_times", c.Name(), c.Type(), "expected a TEXT column")
	}
	b := NewBuilder(ColumnTypeTime, c.Len())
	for i := 0; i < c.Len(); i++ {
		if c.IsNull(i) {
			b.AppendNull()
			continue
		}
		t, err := validation.ParseTime(c.Text(i))
		if err != nil {
			b.Finish(c.Name())
			ferr := tferrors.NewFormatError("parse_times", c.Text(i), err.Error())
			ferr.Column = c.Name()
			ferr.Position = i
			return nil, ferr
		}
		if err := b.AppendTime(t); err != nil {
			b.Finish(c.Name())
			return nil, atRow(err, c.Name(), i)
		}
	}
	return b.Finish(c.Name()), nil
}
