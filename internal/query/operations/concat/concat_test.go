package concat

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/query/operations/testutil"
)

func daily(t *testing.T, day int, cols ...*column.Column) *table.Table {
	t.Helper()
	return testutil.CreateDailyTable(t, testutil.Day(2017, time.January, day), cols...)
}

func TestUnionOfDisjointColumns(t *testing.T) {
	a := daily(t, 1, column.Floats("x1", []float64{1, 2}))
	b := daily(t, 3, column.Floats("x2", []float64{3, 4, 5}))

	out, err := VCat(a, b, Union)
	require.NoError(t, err)

	testutil.AssertRowCount(t, out, 5, "union rows")
	assert.Equal(t, []string{"x1", "x2"}, out.Names())
	x1, _ := out.Column("x1")
	x2, _ := out.Column("x2")
	assert.Equal(t, []interface{}{1.0, 2.0, nil, nil, nil}, x1.Values())
	assert.Equal(t, []interface{}{nil, nil, 3.0, 4.0, 5.0}, x2.Values())
}

func TestOverlappingIndexesInterleave(t *testing.T) {
	a := daily(t, 1, column.Ints("v", []int64{1, 2, 3}))
	b := daily(t, 2, column.Ints("v", []int64{20, 30}))

	out, err := VCat(a, b, SetEqual)
	require.NoError(t, err)

	testutil.AssertIndexSorted(t, out, "interleaved")
	v, _ := out.Column("v")
	assert.Equal(t, []interface{}{int64(1), int64(2), int64(20), int64(3), int64(30)}, v.Values())
}

func TestMergePolicies(t *testing.T) {
	a := daily(t, 1,
		column.Floats("x", []float64{1}),
		column.Floats("y", []float64{2}),
		column.Floats("z", []float64{3}),
	)
	reordered := daily(t, 2,
		column.Floats("y", []float64{20}),
		column.Floats("x", []float64{10}),
		column.Floats("z", []float64{30}),
	)
	partial := daily(t, 2,
		column.Floats("z", []float64{30}),
		column.Floats("w", []float64{40}),
	)

	out, err := VCat(a, reordered, SetEqual)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z"}, out.Names())
	testutil.AssertFloat(t, out, "x", 1, 10, "matched by name")

	_, err = VCat(a, reordered, OrderedEqual)
	assert.ErrorIs(t, err, tferrors.ErrSchemaMismatch)

	_, err = VCat(a, partial, SetEqual)
	assert.ErrorIs(t, err, tferrors.ErrSchemaMismatch)

	out, err = VCat(a, partial, Intersect)
	require.NoError(t, err)
	assert.Equal(t, []string{"z"}, out.Names())

	out, err = VCat(a, partial, Union)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z", "w"}, out.Names())
	testutil.AssertMissing(t, out, "w", 0, "a lacks w")
	testutil.AssertMissing(t, out, "x", 1, "partial lacks x")
}

func TestTypePromotionAndConflicts(t *testing.T) {
	a := daily(t, 1, column.Ints("v", []int64{1}))
	b := daily(t, 2, column.Floats("v", []float64{2.5}))

	out, err := VCat(a, b, SetEqual)
	require.NoError(t, err)
	v, _ := out.Column("v")
	assert.Equal(t, column.ColumnTypeFloat, v.Type())

	text := daily(t, 2, column.Texts("v", []string{"x"}))
	_, err = VCat(a, text, SetEqual)
	assert.ErrorIs(t, err, tferrors.ErrSchemaMismatch)

	intIndexed := testutil.CreateIntTable(t, []int64{1}, "v", []float64{1})
	_, err = VCat(a, intIndexed, SetEqual)
	assert.ErrorIs(t, err, tferrors.ErrType)
}

func TestParseMerge(t *testing.T) {
	m, err := ParseMerge("union")
	require.NoError(t, err)
	assert.Equal(t, Union, m)

	m, err = ParseMerge("")
	require.NoError(t, err)
	assert.Equal(t, SetEqual, m)

	_, err = ParseMerge("zip")
	assert.ErrorIs(t, err, tferrors.ErrParameter)
}
