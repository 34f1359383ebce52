package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/leengari/timeframe/internal/domain/column"
	"github.com/leengari/timeframe/internal/domain/table"
)

// ScenarioX1 is the x1 column of the ten-day scenario table.
var ScenarioX1 = []float64{
	0.768448, 0.940515, 0.673959, 0.395453, 0.313244,
	0.662555, 0.586022, 0.0521332, 0.26864, 0.108871,
}

// Day returns midnight UTC of the given date.
func Day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Days returns n consecutive days starting at start.
func Days(start time.Time, n int) []time.Time {
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, i)
	}
	return out
}

// CreateScenarioTable builds the table indexed by 2017-01-01..2017-01-10 with one FLOAT column x1.
func CreateScenarioTable(t *testing.T) *table.Table {
	t.Helper()
	idx, err := column.Times("Index", Days(Day(2017, time.January, 1), 10))
	require.NoError(t, err)
	tbl, err := table.FromColumnsAndIndex([]*column.Column{column.Floats("x1", ScenarioX1)}, idx)
	require.NoError(t, err)
	return tbl
}

// CreateIntTable builds a table with an INT index called Index and one FLOAT column.
func CreateIntTable(t *testing.T, keys []int64, name string, vals []float64) *table.Table {
	t.Helper()
	tbl, err := table.FromColumnsAndIndex(
		[]*column.Column{column.Floats(name, vals)},
		column.Ints("Index", keys),
	)
	require.NoError(t, err)
	return tbl
}

// CreateDailyTable builds a TIME-indexed table over consecutive days starting at start.
func CreateDailyTable(t *testing.T, start time.Time, cols ...*column.Column) *table.Table {
	t.Helper()
	n := 0
	if len(cols) > 0 {
		n = cols[0].Len()
	}
	idx, err := column.Times("Index", Days(start, n))
	require.NoError(t, err)
	tbl, err := table.FromColumnsAndIndex(cols, idx)
	require.NoError(t, err)
	return tbl
}

// CreateTimedTable builds a TIME-indexed table at the given instants.
func CreateTimedTable(t *testing.T, at []time.Time, cols ...*column.Column) *table.Table {
	t.Helper()
	idx, err := column.Times("Index", at)
	require.NoError(t, err)
	tbl, err := table.FromColumnsAndIndex(cols, idx)
	require.NoError(t, err)
	return tbl
}

// Range returns the integers from..to inclusive.
func Range(from, to int64) []int64 {
	out := make([]int64, 0, to-from+1)
	for v := from; v <= to; v++ {
		out = append(out, v)
	}
	return out
}
