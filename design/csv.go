package design

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// CSVOptions holds options for CSV loading.
type CSVOptions struct {
	Response  string   // Response column; empty means the file has none
	Columns   []string // Predictor columns in order (default: every other column)
	Intercept bool     // Prepend a column of ones
	Delimiter rune     // Field delimiter (default: ',')
}

// DefaultCSVOptions returns default options for CSV loading.
func DefaultCSVOptions() *CSVOptions {
	return &CSVOptions{
		Response:  "y",
		Intercept: true,
		Delimiter: ',',
	}
}

// LoadCSV loads a design matrix and response from a CSV file with a header row.
func LoadCSV(filename string, opts *CSVOptions) (*Matrix, []float64, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	return LoadCSVFromReader(file, opts)
}

// LoadCSVFromReader reads a header row followed by numeric rows. Empty cells
// and NA markers yield ErrMissingValue. The returned response is nil when
// opts.Response is empty.
func LoadCSVFromReader(r io.Reader, opts *CSVOptions) (*Matrix, []float64, error) {
	if opts == nil {
		opts = DefaultCSVOptions()
	}

	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, ErrNoColumns
	}
	if err != nil {
		return nil, nil, err
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	respIdx := -1
	if opts.Response != "" {
		i, ok := index[opts.Response]
		if !ok {
			return nil, nil, fmt.Errorf("design: response column %q not found", opts.Response)
		}
		respIdx = i
	}

	columns := opts.Columns
	if len(columns) == 0 {
		for i, h := range header {
			if i != respIdx {
				columns = append(columns, strings.TrimSpace(h))
			}
		}
	}
	colIdx := make([]int, len(columns))
	for j, name := range columns {
		i, ok := index[name]
		if !ok {
			return nil, nil, fmt.Errorf("design: column %q not found", name)
		}
		colIdx[j] = i
	}

	var rows [][]float64
	var y []float64
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++

		row := make([]float64, len(colIdx))
		for j, i := range colIdx {
			v, err := parseCell(record[i])
			if err != nil {
				return nil, nil, fmt.Errorf("line %d, column %q: %w", line, columns[j], err)
			}
			row[j] = v
		}
		if respIdx >= 0 {
			v, err := parseCell(record[respIdx])
			if err != nil {
				return nil, nil, fmt.Errorf("line %d, column %q: %w", line, opts.Response, err)
			}
			y = append(y, v)
		}
		rows = append(rows, row)
	}

	m, err := FromRows(rows, columns, opts.Intercept)
	if err != nil {
		return nil, nil, err
	}
	return m, y, nil
}

func parseCell(s string) (float64, error) {
	s = strings.TrimSpace(s)
	switch strings.ToUpper(s) {
	case "", "NA", "NAN", "NULL":
		return 0, ErrMissingValue
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("design: parse %q: %w", s, err)
	}
	return v, nil
}
