package table

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
)

func day(d int) time.Time {
	return time.Date(2017, 1, d, 0, 0, 0, 0, time.UTC)
}

func TestFromColumnsDetectsIndex(t *testing.T) {
	t.Run("named Index column", func(t *testing.T) {
		tbl, err := FromColumns(
			column.Floats("x", []float64{1, 2}),
			column.Ints("Index", []int64{10, 20}),
		)
		require.NoError(t, err)
		assert.Equal(t, "Index", tbl.IndexName())
		assert.Equal(t, []string{"x"}, tbl.Names())
	})

	t.Run("single column gets a sequence", func(t *testing.T) {
		tbl, err := FromColumns(column.Floats("x", []float64{5, 6, 7}))
		require.NoError(t, err)
		assert.Equal(t, "Index", tbl.IndexName())
		assert.Equal(t, []int64{1, 2, 3}, tbl.Index().Keys())
	})

	t.Run("first column otherwise", func(t *testing.T) {
		date, err := column.Times("date", []time.Time{day(1), day(2)})
		require.NoError(t, err)
		tbl, err := FromColumns(date, column.Floats("x", []float64{1, 2}))
		require.NoError(t, err)
		assert.Equal(t, "date", tbl.IndexName())
		assert.Equal(t, column.ColumnTypeTime, tbl.IndexType())
	})

	t.Run("no columns", func(t *testing.T) {
		_, err := FromColumns()
		assert.ErrorIs(t, err, tferrors.ErrParameter)
	})
}

func TestAssembleSortsStably(t *testing.T) {
	tbl, err := FromColumnsWithIndex([]*column.Column{
		column.Texts("label", []string{"c", "a", "b", "a2"}),
		column.Ints("k", []int64{3, 1, 2, 1}),
	}, "k")
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 1, 2, 3}, tbl.Index().Keys())
	label, err := tbl.Column("label")
	require.NoError(t, err)
	assert.Equal(t, []interface{}{"a", "a2", "b", "c"}, label.Values())
}

func TestAssembleParsesTextIndex(t *testing.T) {
	tbl, err := FromColumnsAndIndex(
		[]*column.Column{column.Ints("v", []int64{1, 2})},
		column.Texts("date", []string{"2017-01-02", "2017-01-01"}),
	)
	require.NoError(t, err)
	assert.Equal(t, column.ColumnTypeTime, tbl.IndexType())
	assert.True(t, day(1).Equal(tbl.Index().Time(0)))

	_, err = FromColumnsAndIndex(nil, column.Texts("date", []string{"tomorrow"}))
	assert.ErrorIs(t, err, tferrors.ErrFormat)
}

func TestAssembleRejects(t *testing.T) {
	floatIndex := column.Floats("f", []float64{1})
	_, err := Assemble(floatIndex, nil)
	assert.ErrorIs(t, err, tferrors.ErrType)

	_, err = Assemble(column.Bools("b", []bool{true}), nil)
	assert.ErrorIs(t, err, tferrors.ErrType)

	withNull, err := column.FromValues("i", column.ColumnTypeInt, []interface{}{1, nil})
	require.NoError(t, err)
	_, err = Assemble(withNull, nil)
	assert.ErrorIs(t, err, tferrors.ErrParameter)

	_, err = FromColumnsWithIndex([]*column.Column{column.Ints("a", []int64{1})}, "missing")
	assert.ErrorIs(t, err, tferrors.ErrBounds)
}

func TestAssembleCollectsEveryViolation(t *testing.T) {
	_, err := Assemble(column.Sequence("Index", 1, 3), []*column.Column{
		column.Floats("x", []float64{1, 2}),
		column.Floats("y", []float64{1, 2, 3}),
		column.Floats("y", []float64{1, 2, 3}),
		column.Floats("Index", []float64{1, 2, 3}),
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, tferrors.ErrParameter)
	msg := err.Error()
	assert.Contains(t, msg, "column length differs")
	assert.Contains(t, msg, "duplicate column name")
	assert.Contains(t, msg, "column name equals index name")
}

func TestConstructionCopiesColumnSlice(t *testing.T) {
	cols := []*column.Column{column.Floats("x", []float64{1, 2, 3})}
	tbl, err := FromColumnsAndIndex(cols, column.Ints("Index", []int64{1, 2, 3}))
	require.NoError(t, err)

	cols[0] = column.Floats("y", []float64{9})

	assert.Equal(t, []string{"x"}, tbl.Names())
	assert.Equal(t, 3, tbl.NRow())
	assert.True(t, tbl.Has("x"))
	x, err := tbl.Column("x")
	require.NoError(t, err)
	assert.Equal(t, 3, x.Len())
}

func TestConstructionRejectsOutOfRangeTimes(t *testing.T) {
	early := time.Date(1600, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := FromColumnsAndIndex(
		[]*column.Column{column.Floats("x", []float64{1, 2})},
		column.Texts("date", []string{"1600-01-01", "2000-01-01"}),
	)
	assert.ErrorIs(t, err, tferrors.ErrParameter)

	_, err = FromMatrix([][]interface{}{{early, 1.0}, {day(1), 2.0}}, []string{"date", "x"}, nil)
	assert.ErrorIs(t, err, tferrors.ErrParameter)
}

func TestFromMatrix(t *testing.T) {
	tbl, err := FromMatrix([][]interface{}{
		{1, 0.5, "a"},
		{2, nil, "b"},
	}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"x1", "x2", "x3"}, tbl.Names())

	x1, _ := tbl.Column("x1")
	assert.Equal(t, column.ColumnTypeInt, x1.Type())
	x2, _ := tbl.Column("x2")
	assert.True(t, x2.IsNull(1))

	_, err = FromMatrix([][]interface{}{{1, 2}, {3}}, nil, nil)
	assert.ErrorIs(t, err, tferrors.ErrParameter)

	_, err = FromMatrix([][]interface{}{{1, 2}}, []string{"only"}, nil)
	assert.ErrorIs(t, err, tferrors.ErrParameter)
}

func sample(t *testing.T) *Table {
	t.Helper()
	idx, err := column.Times("Index", []time.Time{day(1), day(2), day(3), day(4)})
	require.NoError(t, err)
	tbl, err := FromColumnsAndIndex([]*column.Column{
		column.Ints("a", []int64{1, 2, 3, 4}),
		column.Floats("b", []float64{0.5, 1.5, 2.5, 3.5}),
	}, idx)
	require.NoError(t, err)
	return tbl
}

func TestAccessors(t *testing.T) {
	tbl := sample(t)
	rows, cols := tbl.Size()
	assert.Equal(t, 4, rows)
	assert.Equal(t, 2, cols)
	assert.Equal(t, 1, tbl.Position("b"))
	assert.Equal(t, -1, tbl.Position("nope"))

	c, err := tbl.ColumnAt(1)
	require.NoError(t, err)
	assert.Equal(t, "b", c.Name())

	_, err = tbl.ColumnAt(2)
	assert.ErrorIs(t, err, tferrors.ErrBounds)

	_, err = tbl.Column("nope")
	var notFound *tferrors.ColumnNotFoundError
	assert.ErrorAs(t, err, &notFound)
}

func TestTakeHeadTail(t *testing.T) {
	tbl := sample(t)

	taken, err := tbl.Take([]int{3, 0, 0})
	require.NoError(t, err)
	assert.Equal(t, []int64{day(1).UnixNano(), day(1).UnixNano(), day(4).UnixNano()}, taken.Index().Keys())

	_, err = tbl.Take([]int{4})
	assert.ErrorIs(t, err, tferrors.ErrBounds)

	assert.Equal(t, 2, tbl.Head(2).NRow())
	assert.Equal(t, 4, tbl.Head(10).NRow())
	tail := tbl.Tail(1)
	a, _ := tail.Column("a")
	assert.Equal(t, []interface{}{int64(4)}, a.Values())
	assert.Equal(t, 0, tbl.Tail(-1).NRow())
}

func TestRename(t *testing.T) {
	tbl := sample(t)

	renamed, err := tbl.Rename("a", "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "b"}, renamed.Names())
	assert.Equal(t, []string{"a", "b"}, tbl.Names())

	renamed, err = tbl.Rename("Index", "date")
	require.NoError(t, err)
	assert.Equal(t, "date", renamed.IndexName())

	_, err = tbl.Rename("a", "b")
	assert.ErrorIs(t, err, tferrors.ErrParameter)
	_, err = tbl.Rename("zzz", "c")
	assert.ErrorIs(t, err, tferrors.ErrBounds)
}

func TestMatrix(t *testing.T) {
	m, err := sample(t).Matrix()
	require.NoError(t, err)
	assert.Equal(t, column.ColumnTypeFloat, m.Type)
	assert.Equal(t, 4, m.NRow())
	assert.Equal(t, 2, m.NCol())
	assert.Equal(t, []interface{}{1.0, 0.5}, m.Row(0))
	assert.Equal(t, 3.5, m.Float64s()[3][1])

	mixed, err := FromColumns(
		column.Sequence("Index", 1, 2),
		column.Ints("a", []int64{1, 2}),
		column.Texts("t", []string{"x", "y"}),
	)
	require.NoError(t, err)
	_, err = mixed.Matrix()
	assert.ErrorIs(t, err, tferrors.ErrType)
}

func TestString(t *testing.T) {
	out := sample(t).Head(2).String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "2×2 table indexed by Index (TIME)", lines[0])
	assert.Equal(t, []string{"Index", "a", "b"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2017-01-01", "1", "0.5"}, strings.Fields(lines[2]))
}
