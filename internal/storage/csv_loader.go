package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/leengari/timeframe/internal/domain/column"
	tferrors "github.com/leengari/timeframe/internal/domain/errors"
	"github.com/leengari/timeframe/internal/domain/table"
	"github.com/leengari/timeframe/internal/validation"
)

// CSVLoader loads tables from CSV files with a header row.
type CSVLoader struct {
	Logger *slog.Logger
}

// Load reads the CSV file at path. indexName picks the index column; when
// empty, the index is chosen as table.FromColumns does.
func (l CSVLoader) Load(path, indexName string) (*table.Table, error) {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return LoadCSV(path, indexName, logger)
}

// LoadCSV reads the CSV file at path into a table.
func LoadCSV(path, indexName string, logger *slog.Logger) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	t, err := ReadCSV(f, indexName)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	logger.Info("table loaded",
		slog.String("path", path),
		slog.String("index", t.IndexName()),
		slog.Int("rows", t.NRow()),
		slog.Int("columns", t.NCol()),
	)
	return t, nil
}

// ReadCSV parses CSV data with a header row. Each column gets the narrowest
// type all of its non-empty cells parse as: INT, FLOAT, BOOL, TIME, else TEXT.
// Empty cells are missing.
func ReadCSV(r io.Reader, indexName string) (*table.Table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, tferrors.NewFormatError("read_csv", nil, err.Error())
	}
	if len(records) == 0 {
		return nil, tferrors.NewFormatError("read_csv", nil, "missing header row")
	}

	header, body := records[0], records[1:]
	cols := make([]*column.Column, len(header))
	cells := make([]string, len(body))
	for j, name := range header {
		for i, rec := range body {
			cells[i] = strings.TrimSpace(rec[j])
		}
		c, err := parseColumn(strings.TrimSpace(name), cells)
		if err != nil {
			return nil, err
		}
		cols[j] = c
	}

	if indexName == "" {
		return table.FromColumns(cols...)
	}
	return table.FromColumnsWithIndex(cols, indexName)
}

// cellParsers are tried in order; the first that accepts every non-empty cell wins.
var cellParsers = []struct {
	typ   column.ColumnType
	parse func(string) (interface{}, bool)
}{
	{column.ColumnTypeInt, func(s string) (interface{}, bool) {
		v, err := strconv.ParseInt(s, 10, 64)
		return v, err == nil
	}},
	{column.ColumnTypeFloat, func(s string) (interface{}, bool) {
		v, err := strconv.ParseFloat(s, 64)
		return v, err == nil
	}},
	{column.ColumnTypeBool, func(s string) (interface{}, bool) {
		switch strings.ToLower(s) {
		case "true":
			return true, true
		case "false":
			return false, true
		}
		return nil, false
	}},
	{column.ColumnTypeTime, func(s string) (interface{}, bool) {
		v, err := validation.ParseTime(s)
		return v, err == nil
	}},
}

func parseColumn(name string, cells []string) (*column.Column, error) {
	vals := make([]interface{}, len(cells))
	present := 0
	for _, s := range cells {
		if s != "" {
			present++
		}
	}
	if present == 0 {
		return column.Nulls(name, column.ColumnTypeFloat, len(cells)), nil
	}

next:
	for _, p := range cellParsers {
		for i, s := range cells {
			if s == "" {
				vals[i] = nil
				continue
			}
			v, ok := p.parse(s)
			if !ok {
				continue next
			}
			vals[i] = v
		}
		return column.FromValues(name, p.typ, vals)
	}

	for i, s := range cells {
		if s == "" {
			vals[i] = nil
			continue
		}
		vals[i] = s
	}
	return column.FromValues(name, column.ColumnTypeText, vals)
}
