package timeframe

import (
	"time"

	"github.com/leengari/timeframe/internal/domain/column"
	"github.com/leengari/timeframe/internal/domain/period"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/engine"
	"github.com/leengari/timeframe/internal/query/aggregate"
	"github.com/leengari/timeframe/internal/query/operations/concat"
	"github.com/leengari/timeframe/internal/query/operations/join"
	"github.com/leengari/timeframe/internal/query/operations/resample"
	"github.com/leengari/timeframe/internal/query/operations/rolling"
	"github.com/leengari/timeframe/internal/query/operations/subset"
	"github.com/leengari/timeframe/internal/query/operations/transform"
	"github.com/leengari/timeframe/internal/storage"
)

type (
	// Table is an immutable set of equal-length columns ordered by an index column.
	Table = table.Table
	// Column is an immutable typed vector whose elements may be missing.
	Column = column.Column
	// ColumnType is the semantic type of a column.
	ColumnType = column.ColumnType
	// Matrix is a two-dimensional view of a table's non-index columns.
	Matrix = table.Matrix
)

const (
	Int   = column.ColumnTypeInt
	Float = column.ColumnTypeFloat
	Text  = column.ColumnTypeText
	Bool  = column.ColumnTypeBool
	Time  = column.ColumnTypeTime
)

// Column constructors.
func Ints(name string, vals []int64) *Column { return column.Ints(name, vals) }
func Floats(name string, vals []float64) *Column { return column.Floats(name, vals) }
func Texts(name string, vals []string) *Column { return column.Texts(name, vals) }
func Bools(name string, vals []bool) *Column { return column.Bools(name, vals) }
func Sequence(name string, start int64, n int) *Column { return column.Sequence(name, start, n) }

// Times builds a TIME column; instants outside MinTime..MaxTime are rejected.
func Times(name string, vals []time.Time) (*Column, error) { return column.Times(name, vals) }

// MinTime and MaxTime bound the instants a TIME column can hold.
var (
	MinTime = column.MinTime
	MaxTime = column.MaxTime
)

// MaskedInts builds an INT column; valid[i] false marks row i missing.
func MaskedInts(name string, vals []int64, valid []bool) *Column {
	return column.MaskedInts(name, vals, valid)
}

// MaskedFloats builds a FLOAT column; valid[i] false marks row i missing.
func MaskedFloats(name string, vals []float64, valid []bool) *Column {
	return column.MaskedFloats(name, vals, valid)
}

// InferColumn builds a column from Go values, taking the type from the values.
// nil entries are missing.
func InferColumn(name string, vals []interface{}) (*Column, error) {
	return column.Infer(name, vals)
}

// FromColumns builds a table, picking the index automatically: a column named
// "Index", else a generated 1..n sequence for a single column, else the first column.
func FromColumns(cols ...*Column) (*Table, error) { return table.FromColumns(cols...) }

// FromColumnsWithIndex builds a table indexed by the column called name.
func FromColumnsWithIndex(cols []*Column, name string) (*Table, error) {
	return table.FromColumnsWithIndex(cols, name)
}

// FromColumnsAndIndex builds a table from columns and a separate index column.
func FromColumnsAndIndex(cols []*Column, index *Column) (*Table, error) {
	return table.FromColumnsAndIndex(cols, index)
}

// FromColumn builds a one-column table; a nil index generates 1..n.
func FromColumn(col, index *Column) (*Table, error) { return table.FromColumn(col, index) }

// FromMatrix builds a table from row-major values.
func FromMatrix(data [][]interface{}, names []string, index *Column) (*Table, error) {
	return table.FromMatrix(data, names, index)
}

// Selectors.
type (
	RowSelector    = subset.RowSelector
	At             = subset.At
	Span           = subset.Span
	List           = subset.List
	Key            = subset.Key
	InPeriod       = subset.InPeriod
	Date           = subset.Date
	AllRows        = subset.AllRows
	ColumnSelector = subset.ColumnSelector
	ColumnAt       = subset.ColumnAt
	ColumnSpan     = subset.ColumnSpan
	ColumnList     = subset.ColumnList
	Name           = subset.Name
	Names          = subset.Names
	AllColumns     = subset.AllColumns
)

// Rows subsets rows.
func Rows(t *Table, sel RowSelector) (*Table, error) { return subset.Rows(t, sel) }

// Columns subsets non-index columns.
func Columns(t *Table, sel ColumnSelector) (*Table, error) { return subset.Columns(t, sel) }

// Select subsets rows and columns.
func Select(t *Table, rows RowSelector, cols ColumnSelector) (*Table, error) {
	return subset.Select(t, rows, cols)
}

// Extract returns the single column picked by cols, restricted to rows.
func Extract(t *Table, rows RowSelector, cols ColumnSelector) (*Column, error) {
	return subset.Extract(t, rows, cols)
}

// ExtractMatrix returns the selected cells as a matrix.
func ExtractMatrix(t *Table, rows RowSelector, cols ColumnSelector) (*Matrix, error) {
	return subset.ExtractMatrix(t, rows, cols)
}

// Between keeps the rows whose index lies in [from, to].
func Between(t *Table, from, to interface{}) (*Table, error) { return subset.Between(t, from, to) }

// JoinType selects which unmatched rows a join keeps.
type JoinType = join.JoinType

const (
	Inner = join.JoinTypeInner
	Outer = join.JoinTypeOuter
	Left  = join.JoinTypeLeft
	Right = join.JoinTypeRight
)

// Join aligns two tables on their index, keeping all rows of both.
func Join(a, b *Table) (*Table, error) { return join.Join(a, b) }

// JoinWith aligns two tables on their index.
func JoinWith(a, b *Table, how JoinType) (*Table, error) { return join.ExecuteJoin(a, b, how) }

// JoinAll aligns any number of tables, folding left to right.
func JoinAll(how JoinType, tables ...*Table) (*Table, error) { return join.JoinAll(how, tables...) }

// Lag shifts every column k rows down.
func Lag(t *Table, k int) (*Table, error) { return transform.Lag(t, k) }

// Lead shifts every column k rows up.
func Lead(t *Table, k int) (*Table, error) { return transform.Lead(t, k) }

// Diff computes x[i] - x[i-k] for every column.
func Diff(t *Table, k int) (*Table, error) { return transform.Diff(t, k) }

// PctChange computes x[i]/x[i-k] - 1 for every column.
func PctChange(t *Table, k int) (*Table, error) { return transform.PctChange(t, k) }

// Period is a calendar bucket width.
type (
	Period = period.Period
	Unit   = period.Unit
)

const (
	Second  = period.Second
	Minute  = period.Minute
	Hour    = period.Hour
	Day     = period.Day
	Week    = period.Week
	Month   = period.Month
	Quarter = period.Quarter
	Year    = period.Year
)

// Every returns the period of n units.
func Every(u Unit, n int) Period { return period.Of(u, n) }

// ParsePeriod reads "week", "15 minutes" and the like.
func ParsePeriod(s string) (Period, error) { return period.Parse(s) }

// Reducer collapses a group of values to one.
type Reducer = aggregate.Reducer

var (
	Count  = aggregate.Count
	Sum    = aggregate.Sum
	Prod   = aggregate.Prod
	Mean   = aggregate.Mean
	Min    = aggregate.Min
	Max    = aggregate.Max
	First  = aggregate.First
	Last   = aggregate.Last
	Median = aggregate.Median
	Var    = aggregate.Var
	Std    = aggregate.Std
)

// LookupReducer finds a reducer by name.
func LookupReducer(name string) (Reducer, error) { return aggregate.Lookup(name) }

// CustomReducer wraps fn as a reducer called name.
func CustomReducer(name string, fn func([]float64) float64) Reducer {
	return aggregate.Custom(name, fn)
}

// IndexAt picks the index value that labels a resampled group.
type IndexAt = resample.IndexAt

const (
	AtFirst = resample.First
	AtLast  = resample.Last
)

// Resample buckets rows by p and reduces every column with r.
func Resample(t *Table, p Period, r Reducer, at IndexAt) (*Table, error) {
	return resample.Apply(t, p, r, at)
}

// Rolling reduces each right-aligned window of one column.
func Rolling(t *Table, name string, window int, r Reducer) (*Table, error) {
	return rolling.Apply(t, name, window, r)
}

// Merge decides which columns VCat keeps.
type Merge = concat.Merge

const (
	SetEqual     = concat.SetEqual
	OrderedEqual = concat.OrderedEqual
	Intersect    = concat.Intersect
	Union        = concat.Union
)

// VCat stacks the rows of b after a and re-sorts by the index.
func VCat(a, b *Table, merge Merge) (*Table, error) { return concat.VCat(a, b, merge) }

// ReadCSV loads a CSV file with a header row.
func ReadCSV(path string, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	return storage.LoadCSV(path, o.index, o.logger)
}

// RunPipeline runs a YAML pipeline definition and returns its output table.
// Relative source paths are resolved against the definition's directory.
func RunPipeline(path string, opts ...Option) (*Table, error) {
	o := applyOptions(opts)
	eng := engine.New(storage.CSVLoader{Logger: o.logger})
	eng.AddObserver(engine.NewLoggingObserver(o.logger))
	res, err := eng.RunFile(path)
	if err != nil {
		return nil, err
	}
	return res.Table, nil
}
