// Package display renders tables for people and for other programs.
package display

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/leengari/timeframe/internal/domain/column"
	"github.com/leengari/timeframe/internal/domain/table"
)

// Missing is how text output renders a missing value.
const Missing = "missing"

// Text writes t as tab-aligned text: a "name (TYPE)" header for the index
// and every column, a separator row, then one line per row.
func Text(w io.Writer, t *table.Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	cols := append([]*column.Column{t.Index()}, t.Columns()...)

	for i, c := range cols {
		fmt.Fprintf(tw, "%s (%s)", c.Name(), c.Type())
		if i < len(cols)-1 {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	for i := range cols {
		fmt.Fprint(tw, "---")
		if i < len(cols)-1 {
			fmt.Fprint(tw, "\t")
		}
	}
	fmt.Fprintln(tw)

	for row := 0; row < t.NRow(); row++ {
		for i, c := range cols {
			fmt.Fprint(tw, c.Format(row))
			if i < len(cols)-1 {
				fmt.Fprint(tw, "\t")
			}
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// Field describes one column of a Document.
type Field struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Document is the JSON form of a table. Each row holds the index value
// followed by the column values, in Fields order; missing values are null.
type Document struct {
	Index  Field           `json:"index"`
	Fields []Field         `json:"fields"`
	Rows   [][]interface{} `json:"rows"`
}

// NewDocument converts t into its JSON form.
func NewDocument(t *table.Table) *Document {
	doc := &Document{
		Index:  Field{Name: t.IndexName(), Type: string(t.IndexType())},
		Fields: make([]Field, 0, t.NCol()),
		Rows:   make([][]interface{}, t.NRow()),
	}
	cols := t.Columns()
	for _, c := range cols {
		doc.Fields = append(doc.Fields, Field{Name: c.Name(), Type: string(c.Type())})
	}
	for row := range doc.Rows {
		r := make([]interface{}, 0, len(cols)+1)
		r = append(r, jsonValue(t.Index(), row))
		for _, c := range cols {
			r = append(r, jsonValue(c, row))
		}
		doc.Rows[row] = r
	}
	return doc
}

// JSON writes t as an indented Document.
func JSON(w io.Writer, t *table.Table) error {
	data, err := gojson.MarshalIndent(NewDocument(t), "", "  ")
	if err != nil {
		return fmt.Errorf("encode table: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// jsonValue maps a cell to something JSON can carry. Non-finite floats
// become their strconv spelling ("NaN", "+Inf", "-Inf").
func jsonValue(c *column.Column, row int) interface{} {
	switch v := c.Value(row).(type) {
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return strconv.FormatFloat(v, 'g', -1, 64)
		}
		return v
	case time.Time:
		return v.Format(time.RFC3339Nano)
	default:
		return v
	}
}
