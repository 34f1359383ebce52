package transform

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/query/operations/testutil"
)

func TestLagScenario(t *testing.T) {
	tbl := testutil.CreateScenarioTable(t)

	lagged, err := Lag(tbl, 1)
	require.NoError(t, err)

	x1, err := lagged.Column("x1")
	require.NoError(t, err)
	want := []interface{}{nil}
	for _, v := range testutil.ScenarioX1[:9] {
		want = append(want, v)
	}
	assert.Equal(t, want, x1.Values())
	assert.Equal(t, tbl.Index().Keys(), lagged.Index().Keys())
}

func TestDiffScenario(t *testing.T) {
	tbl := testutil.CreateScenarioTable(t)

	diffed, err := Diff(tbl, 1)
	require.NoError(t, err)

	testutil.AssertMissing(t, diffed, "x1", 0, "first row")
	testutil.AssertFloat(t, diffed, "x1", 1, 0.172067, "2017-01-02")
	for i := 1; i < tbl.NRow(); i++ {
		testutil.AssertFloat(t, diffed, "x1", i, testutil.ScenarioX1[i]-testutil.ScenarioX1[i-1], "definition")
	}
}

func TestLeadLagRoundTrip(t *testing.T) {
	tbl := testutil.CreateScenarioTable(t)
	const k = 2

	led, err := Lead(tbl, k)
	require.NoError(t, err)
	back, err := Lag(led, k)
	require.NoError(t, err)

	x1, _ := back.Column("x1")
	for i := k; i < tbl.NRow()-k; i++ {
		assert.Equal(t, testutil.ScenarioX1[i], x1.Float(i))
	}
	testutil.AssertMissing(t, back, "x1", 0, "shifted out")
	testutil.AssertMissing(t, led, "x1", 9, "lead tail")
}

func TestDiffKeepsIntegers(t *testing.T) {
	tbl := testutil.CreateDailyTable(t, testutil.Day(2017, 1, 1),
		column.Ints("n", []int64{1, 4, 9, 16}),
		column.Floats("f", []float64{1, 2, 4, 8}),
	)

	diffed, err := Diff(tbl, 2)
	require.NoError(t, err)

	n, _ := diffed.Column("n")
	assert.Equal(t, column.ColumnTypeInt, n.Type())
	assert.Equal(t, []interface{}{nil, nil, int64(8), int64(12)}, n.Values())

	f, _ := diffed.Column("f")
	assert.Equal(t, column.ColumnTypeFloat, f.Type())
	assert.Equal(t, []interface{}{nil, nil, 3.0, 6.0}, f.Values())
}

func TestMissingOperandsPropagate(t *testing.T) {
	x, err := column.FromValues("x", column.ColumnTypeFloat, []interface{}{1.0, nil, 3.0, 4.0})
	require.NoError(t, err)
	tbl := testutil.CreateDailyTable(t, testutil.Day(2017, 1, 1), x)

	diffed, err := Diff(tbl, 1)
	require.NoError(t, err)
	d, _ := diffed.Column("x")
	assert.Equal(t, []interface{}{nil, nil, nil, 1.0}, d.Values())
}

func TestPctChange(t *testing.T) {
	tbl := testutil.CreateDailyTable(t, testutil.Day(2017, 1, 1),
		column.Ints("n", []int64{2, 3, 6, 0, 5}),
	)

	pct, err := PctChange(tbl, 1)
	require.NoError(t, err)

	n, _ := pct.Column("n")
	assert.Equal(t, column.ColumnTypeFloat, n.Type())
	assert.True(t, n.IsNull(0))
	assert.InDelta(t, 0.5, n.Float(1), 1e-12)
	assert.InDelta(t, 1.0, n.Float(2), 1e-12)
	assert.InDelta(t, -1.0, n.Float(3), 1e-12)
	assert.True(t, math.IsInf(n.Float(4), 1))
}

func TestTransformErrors(t *testing.T) {
	tbl := testutil.CreateScenarioTable(t)
	withText := testutil.CreateDailyTable(t, testutil.Day(2017, 1, 1),
		column.Floats("x", []float64{1, 2}),
		column.Texts("label", []string{"a", "b"}),
	)

	for _, k := range []int{0, -1} {
		_, err := Lag(tbl, k)
		assert.ErrorIs(t, err, tferrors.ErrParameter)
		_, err = Lead(tbl, k)
		assert.ErrorIs(t, err, tferrors.ErrParameter)
		_, err = Diff(tbl, k)
		assert.ErrorIs(t, err, tferrors.ErrParameter)
		_, err = PctChange(tbl, k)
		assert.ErrorIs(t, err, tferrors.ErrParameter)
	}

	_, err := Diff(withText, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, tferrors.ErrType)
	assert.Contains(t, err.Error(), "label")

	_, err = PctChange(withText, 1)
	assert.ErrorIs(t, err, tferrors.ErrType)

	lagged, err := Lag(withText, 1)
	require.NoError(t, err, "lag works on any column type")
	testutil.AssertMissing(t, lagged, "label", 0, "text lag")
}
