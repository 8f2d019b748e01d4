// Package ingest reads raw order records from tabular input.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMissingHeader is returned when the input is missing a required column.
var ErrMissingHeader = errors.New("ingest: missing required header")

var validate = validator.New()

// OrderRecord is one raw row from the orders file. Quantity and unit
// price arrive as untyped text and are parsed downstream.
type OrderRecord struct {
	OrderID     string `validate:"required"`
	ProductID   string `validate:"required"`
	ProductName string
	Quantity    string `validate:"required"`
	UnitPrice   string `validate:"required"`
}

// Validate checks the record carries every field the pipeline needs.
func (r OrderRecord) Validate() error {
	return validate.Struct(r)
}

var requiredHeaders = []string{"order_id", "product_id", "product_name", "quantity", "unit_price"}

// Reader decodes order records from a CSV stream with a header row.
type Reader struct{}

// NewReader constructs a Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadFile opens path and decodes every order record in it.
func (r *Reader) ReadFile(path string) ([]OrderRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ingest: open %s: %w", path, err)
	}
	defer file.Close()
	return r.Read(file)
}

// Read decodes order records from src. Column order is taken from the
// header row; rows with the wrong field count fail the whole read, while
// rows with blank fields are passed through for the pipeline to classify.
func (r *Reader) Read(src io.Reader) ([]OrderRecord, error) {
	cr := csv.NewReader(src)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ingest: empty input: %w", ErrMissingHeader)
		}
		return nil, fmt.Errorf("ingest: read header: %w", err)
	}

	columns, err := mapColumns(header)
	if err != nil {
		return nil, err
	}

	var records []OrderRecord
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("ingest: read row: %w", err)
		}
		records = append(records, OrderRecord{
			OrderID:     field(row, columns, "order_id"),
			ProductID:   field(row, columns, "product_id"),
			ProductName: field(row, columns, "product_name"),
			Quantity:    field(row, columns, "quantity"),
			UnitPrice:   field(row, columns, "unit_price"),
		})
	}
	return records, nil
}

func mapColumns(header []string) (map[string]int, error) {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredHeaders {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingHeader, name)
		}
	}
	return columns, nil
}

func field(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}
