package column

import (
	"fmt"
	"math"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

type ColumnType string

const (
	ColumnTypeInt   ColumnType = "INT"
	ColumnTypeFloat ColumnType = "FLOAT"
	ColumnTypeText  ColumnType = "TEXT"
	ColumnTypeBool  ColumnType = "BOOL"
	ColumnTypeTime  ColumnType = "TIME"
)

// mem backs every array built by this package. Arrays are garbage collected.
var mem = memory.NewGoAllocator()

// timestampType is the Arrow type of TIME columns: nanoseconds since the Unix epoch, UTC.
var timestampType = &arrow.TimestampType{Unit: arrow.Nanosecond, TimeZone: "UTC"}

// MinTime and MaxTime bound the instants a TIME column can hold.
var (
	MinTime = time.Unix(0, math.MinInt64).UTC()
	MaxTime = time.Unix(0, math.MaxInt64).UTC()
)

// TimeKey returns t as nanoseconds since the Unix epoch. Instants outside
// MinTime..MaxTime are a parameter error.
func TimeKey(op string, t time.Time) (int64, error) {
	if t.Before(MinTime) || t.After(MaxTime) {
		return 0, tferrors.NewParameterError(op, t.UTC().Format(time.RFC3339Nano),
			fmt.Sprintf("time outside %s..%s", MinTime.Format(time.RFC3339), MaxTime.Format(time.RFC3339)))
	}
	return t.UnixNano(), nil
}

// IsNumeric reports whether the type supports arithmetic.
func (t ColumnType) IsNumeric() bool {
	return t == ColumnTypeInt || t == ColumnTypeFloat
}

// IsIndexable reports whether a column of this type can be a table index.
func (t ColumnType) IsIndexable() bool {
	return t == ColumnTypeInt || t == ColumnTypeTime
}

// DataType returns the Arrow data type used to store the column type.
func (t ColumnType) DataType() arrow.DataType {
	switch t {
	case ColumnTypeInt:
		return arrow.PrimitiveTypes.Int64
	case ColumnTypeFloat:
		return arrow.PrimitiveTypes.Float64
	case ColumnTypeText:
		return arrow.BinaryTypes.String
	case ColumnTypeBool:
		return arrow.FixedWidthTypes.Boolean
	case ColumnTypeTime:
		return timestampType
	default:
		return nil
	}
}

// TypeOf maps an Arrow data type to a ColumnType.
func TypeOf(dt arrow.DataType) (ColumnType, bool) {
	switch dt.ID() {
	case arrow.INT64:
		return ColumnTypeInt, true
	case arrow.FLOAT64:
		return ColumnTypeFloat, true
	case arrow.STRING:
		return ColumnTypeText, true
	case arrow.BOOL:
		return ColumnTypeBool, true
	case arrow.TIMESTAMP:
		if ts, ok := dt.(*arrow.TimestampType); ok && ts.Unit == arrow.Nanosecond {
			return ColumnTypeTime, true
		}
	}
	return "", false
}

// Unify returns the narrowest type both a and b can be stored as.
// INT and FLOAT unify to FLOAT; any other pair unifies only with itself.
func Unify(a, b ColumnType) (ColumnType, bool) {
	if a == b {
		return a, true
	}
	if a.IsNumeric() && b.IsNumeric() {
		return ColumnTypeFloat, true
	}
	return "", false
}
