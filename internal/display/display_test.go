package display

import (
	"bytes"
	"math"
	"strings"
	"testing"
	"time"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leengari/timeframe/internal/domain/column"
	"github.com/leengari/timeframe/internal/domain/table"
)

func sample(t *testing.T) *table.Table {
	t.Helper()
	idx, err := column.Times("date", []time.Time{
		time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2017, 1, 2, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	x := column.MaskedFloats("x", []float64{1.5, 0}, []bool{true, false})
	n := column.Ints("n", []int64{1, 2})
	tbl, err := table.FromColumnsAndIndex([]*column.Column{x, n}, idx)
	require.NoError(t, err)
	return tbl
}

func TestText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Text(&buf, sample(t)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"date", "(TIME)", "x", "(FLOAT)", "n", "(INT)"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"---", "---", "---"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"2017-01-01", "1.5", "1"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"2017-01-02", Missing, "2"}, strings.Fields(lines[3]))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, sample(t)))

	var doc Document
	require.NoError(t, gojson.Unmarshal(buf.Bytes(), &doc))

	assert.Equal(t, Field{Name: "date", Type: "TIME"}, doc.Index)
	assert.Equal(t, []Field{{"x", "FLOAT"}, {"n", "INT"}}, doc.Fields)
	require.Len(t, doc.Rows, 2)
	assert.Equal(t, []interface{}{"2017-01-01T00:00:00Z", 1.5, float64(1)}, doc.Rows[0])
	assert.Nil(t, doc.Rows[1][1])
}

func TestJSONNonFiniteFloats(t *testing.T) {
	x := column.Floats("x", []float64{math.Inf(1), math.NaN()})
	tbl, err := table.FromColumn(x, nil)
	require.NoError(t, err)

	doc := NewDocument(tbl)
	assert.Equal(t, "+Inf", doc.Rows[0][1])
	assert.Equal(t, "NaN", doc.Rows[1][1])
	assert.Equal(t, int64(1), doc.Rows[0][0])

	var buf bytes.Buffer
	assert.NoError(t, JSON(&buf, tbl))
}
