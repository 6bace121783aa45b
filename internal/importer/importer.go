package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"bookstore-storefront/internal/domain"
	"bookstore-storefront/internal/mapper"
)

type BookWriter interface {
	Upsert(ctx context.Context, b domain.Book) (*domain.Book, error)
}

// RowError reports a CSV line that could not be imported.
type RowError struct {
	Line   int
	ID     string
	Fields []mapper.FieldError
	Err    error
}

func (e RowError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, 0, len(e.Fields))
		for _, f := range e.Fields {
			parts = append(parts, f.Field+": "+f.Reason)
		}
		return fmt.Sprintf("line %d (%s): %s", e.Line, e.ID, strings.Join(parts, "; "))
	}
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.ID, e.Err)
}

// Report summarises an import run.
type Report struct {
	Imported int
	Skipped  []RowError
}

// CSVImporter reads book rows keyed by snake_case column headers and upserts
// the valid ones.
type CSVImporter struct {
	reader *csv.Reader
	books  BookWriter
}

func NewCSVImporter(r io.Reader, books BookWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, books: books}
}

// Run imports every row. Rows failing validation are collected in the report;
// a read or write error aborts the run.
func (i *CSVImporter) Run(ctx context.Context) (Report, error) {
	var report Report

	headers, err := i.reader.Read()
	if err != nil {
		return report, fmt.Errorf("read headers: %w", err)
	}
	columns := normaliseHeaders(headers)

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return report, fmt.Errorf("read row: %w", err)
		}
		line, _ := i.reader.FieldPos(0)

		row := toRow(columns, record)
		if len(row) == 0 {
			continue
		}

		book, err := mapper.Parse(row)
		if err != nil {
			rowErr := RowError{Line: line, ID: book.ID, Err: err}
			var verr *mapper.ValidationError
			if errors.As(err, &verr) {
				rowErr.Fields = verr.Fields
			}
			report.Skipped = append(report.Skipped, rowErr)
			continue
		}

		if _, err := i.books.Upsert(ctx, book); err != nil {
			return report, fmt.Errorf("upsert book %q (line %d): %w", book.Title, line, err)
		}
		report.Imported++
	}

	return report, nil
}

func normaliseHeaders(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		h = strings.TrimPrefix(h, "\ufeff")
		out[i] = strings.ToLower(strings.TrimSpace(h))
	}
	return out
}

// toRow keeps only non-empty cells so that blank optional columns read as
// absent rather than malformed.
func toRow(columns, record []string) mapper.Row {
	row := mapper.Row{}
	for i, col := range columns {
		if col == "" || i >= len(record) {
			continue
		}
		if v := strings.TrimSpace(record[i]); v != "" {
			row[col] = v
		}
	}
	return row
}
