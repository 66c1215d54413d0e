package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// Table defines tabular exchange content with a fixed header row.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Codec renders and parses Table records as CSV.
type Codec struct{}

// NewCodec builds a CSV codec.
func NewCodec() *Codec {
	return &Codec{}
}

// Render produces CSV encoded bytes for the table.
func (e *Codec) Render(t Table) ([]byte, error) {
	if len(t.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(t.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range t.Rows {
		if len(row) != len(t.Headers) {
			return nil, fmt.Errorf("csv row has %d fields, want %d", len(row), len(t.Headers))
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// Parse reads a CSV document whose first record is the header row.
func (e *Codec) Parse(r io.Reader) (Table, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err == io.EOF {
		return Table{}, fmt.Errorf("csv document is empty")
	}
	if err != nil {
		return Table{}, fmt.Errorf("read csv headers: %w", err)
	}

	table := Table{Headers: headers}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("read csv row: %w", err)
		}
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}
