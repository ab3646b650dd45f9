package semrush

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one provider row keyed by export column
type Row struct {
	values map[Column]string
}

// NewRow builds a row from column values
func NewRow(values map[Column]string) Row {
	return Row{values: values}
}

// Value returns the raw value for column, or "" when absent
func (r Row) Value(column Column) string {
	return r.values[column]
}

// Has reports whether the row carries column
func (r Row) Has(column Column) bool {
	_, ok := r.values[column]
	return ok
}

// Result is the ordered list of rows returned for one request
type Result []Row

// parseResponse converts a semicolon-separated body into rows. The first line
// is a header; values are matched to the requested columns by position.
func parseResponse(body []byte, columns []Column) (Result, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return Result{}, nil
	}

	reader := csv.NewReader(bytes.NewReader(body))
	reader.Comma = ';'
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read response header: %w", err)
	}
	if len(header) != len(columns) {
		return nil, fmt.Errorf("%w: header has %d fields, requested %d", ErrColumnMismatch, len(header), len(columns))
	}

	result := Result{}
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read response line %d: %w", line, err)
		}
		if len(record) == 1 && strings.TrimSpace(record[0]) == "" {
			continue
		}
		if len(record) != len(columns) {
			return nil, fmt.Errorf("%w: line %d has %d fields, requested %d", ErrColumnMismatch, line, len(record), len(columns))
		}

		values := make(map[Column]string, len(columns))
		for i, column := range columns {
			values[column] = strings.TrimSpace(record[i])
		}
		result = append(result, Row{values: values})
	}

	return result, nil
}
