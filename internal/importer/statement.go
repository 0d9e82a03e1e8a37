package importer

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/cleared-dev/bankcat/internal/model"
)

// StatementParser parses the plain four-column export:
// date (YYYYMMDD), description, signed amount, balance. The first row is a
// header.
type StatementParser struct{}

// Format returns the parser name.
func (p *StatementParser) Format() string { return "statement" }

// Parse reads a statement CSV and returns RawEntries.
func (p *StatementParser) Parse(r io.Reader) ([]model.RawEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = model.NumRawFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading statement CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var entries []model.RawEntry
	for i, rec := range records[1:] {
		e, err := model.NewRawEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
