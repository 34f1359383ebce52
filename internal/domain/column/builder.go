package column

import (
	"fmt"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

// Builder accumulates values of one ColumnType and freezes them into a Column.
// A Builder is single use: after Finish it must not be appended to.
type Builder struct {
	typ ColumnType
	b   array.Builder
}

// NewBuilder returns a builder for typ with room for capacity values.
func NewBuilder(typ ColumnType, capacity int) *Builder {
	var b array.Builder
	switch typ {
	case ColumnTypeInt:
		b = array.NewInt64Builder(mem)
	case ColumnTypeFloat:
		b = array.NewFloat64Builder(mem)
	case ColumnTypeText:
		b = array.NewStringBuilder(mem)
	case ColumnTypeBool:
		b = array.NewBooleanBuilder(mem)
	case ColumnTypeTime:
		b = array.NewTimestampBuilder(mem, timestampType)
	default:
		panic(fmt.Sprintf("column: no builder for type %q", typ))
	}
	if capacity > 0 {
		b.Reserve(capacity)
	}
	return &Builder{typ: typ, b: b}
}

// Type returns the type being built.
func (b *Builder) Type() ColumnType { return b.typ }

// Len returns the number of values appended so far.
func (b *Builder) Len() int { return b.b.Len() }

// AppendNull appends a missing value.
func (b *Builder) AppendNull() { b.b.AppendNull() }

// AppendNulls appends n missing values.
func (b *Builder) AppendNulls(n int) {
	for range n {
		b.b.AppendNull()
	}
}

func (b *Builder) appendInt(v int64) { b.b.(*array.Int64Builder).Append(v) }

// AppendFloat appends a FLOAT value.
func (b *Builder) AppendFloat(v float64) { b.b.(*array.Float64Builder).Append(v) }

// AppendInt appends an INT value; on a FLOAT builder the value is widened.
func (b *Builder) AppendInt(v int64) {
	if b.typ == ColumnTypeFloat {
		b.AppendFloat(float64(v))
		return
	}
	b.appendInt(v)
}

// AppendTime appends a TIME value. Instants outside MinTime..MaxTime are a
// parameter error and nothing is appended.
func (b *Builder) AppendTime(v time.Time) error {
	ns, err := TimeKey("append", v)
	if err != nil {
		return err
	}
	b.b.(*array.TimestampBuilder).Append(arrow.Timestamp(ns))
	return nil
}

// Append converts v to the builder's type and appends it. A nil v appends a
// missing value. Integers are accepted by FLOAT builders; anything else that
// does not match the builder type is a type error.
func (b *Builder) Append(v interface{}) error {
	if v == nil {
		b.AppendNull()
		return nil
	}
	switch b.typ {
	case ColumnTypeInt:
		if n, ok := asInt64(v); ok {
			b.appendInt(n)
			return nil
		}
	case ColumnTypeFloat:
		if n, ok := asInt64(v); ok {
			b.AppendFloat(float64(n))
			return nil
		}
		switch x := v.(type) {
		case float64:
			b.AppendFloat(x)
			return nil
		case float32:
			b.AppendFloat(float64(x))
			return nil
		}
	case ColumnTypeText:
		if s, ok := v.(string); ok {
			b.b.(*array.StringBuilder).Append(s)
			return nil
		}
	case ColumnTypeBool:
		if x, ok := v.(bool); ok {
			b.b.(*array.BooleanBuilder).Append(x)
			return nil
		}
	case ColumnTypeTime:
		if x, ok := v.(time.Time); ok {
			return b.AppendTime(x)
		}
	}
	return tferrors.NewTypeError("append", "", v, fmt.Sprintf("expected %s, got %T", b.typ, v))
}

// AppendFrom copies the value at row i of src. src must have the builder's type,
// or be INT when building FLOAT.
func (b *Builder) AppendFrom(src *Column, i int) {
	if src.IsNull(i) {
		b.AppendNull()
		return
	}
	switch b.typ {
	case ColumnTypeInt:
		b.appendInt(src.Int(i))
	case ColumnTypeFloat:
		b.AppendFloat(src.Float(i))
	case ColumnTypeText:
		b.b.(*array.StringBuilder).Append(src.Text(i))
	case ColumnTypeBool:
		b.b.(*array.BooleanBuilder).Append(src.Bool(i))
	case ColumnTypeTime:
		b.b.(*array.TimestampBuilder).Append(arrow.Timestamp(src.Key(i)))
	}
}

// Finish freezes the appended values into a column named name.
func (b *Builder) Finish(name string) *Column {
	defer b.b.Release()
	return &Column{name: name, typ: b.typ, arr: b.b.NewArray()}
}

func asInt64(v interface{}) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case uint64:
		if x <= math.MaxInt64 {
			return int64(x), true
		}
	}
	return 0, false
}

// inferType returns the column type of a Go value.
func inferType(v interface{}) (ColumnType, bool) {
	if _, ok := asInt64(v); ok {
		return ColumnTypeInt, true
	}
	switch v.(type) {
	case float64, float32:
		return ColumnTypeFloat, true
	case string:
		return ColumnTypeText, true
	case bool:
		return ColumnTypeBool, true
	case time.Time:
		return ColumnTypeTime, true
	}
	return "", false
}
