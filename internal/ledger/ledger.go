// Package ledger exports categorised entries to a CSV file that grows
// across runs.
package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bankcat/internal/model"
)

// Header is the first row of every ledger file.
const Header = "date,sphere,category,type,description,amount,fingerprint"

const (
	numFields      = 7
	colDate        = 0
	colSphere      = 1
	colCategory    = 2
	colType        = 3
	colDescription = 4
	colAmount      = 5
	colFingerprint = 6
)

// MarshalEntry converts an entry to a CSV row.
func MarshalEntry(e model.CategorisedEntry) []string {
	row := make([]string, numFields)
	row[colDate] = e.Date.Format(model.DateFormat)
	row[colSphere] = string(e.Sphere)
	row[colCategory] = e.Category
	row[colType] = string(e.Type)
	row[colDescription] = e.Description
	row[colAmount] = e.Amount.String()
	row[colFingerprint] = e.Fingerprint
	return row
}

// UnmarshalEntry converts a CSV row to an entry.
func UnmarshalEntry(record []string) (model.CategorisedEntry, error) {
	if len(record) != numFields {
		return model.CategorisedEntry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := model.ParseDate(record[colDate])
	if err != nil {
		return model.CategorisedEntry{}, err
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.CategorisedEntry{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], model.ErrInvalidAmount)
	}

	sphere := model.Sphere(record[colSphere])
	if sphere != model.SpherePersonal && sphere != model.SphereWork {
		return model.CategorisedEntry{}, fmt.Errorf("unknown sphere %q", record[colSphere])
	}

	entryType := model.EntryType(record[colType])
	switch entryType {
	case model.EntryTypeExpense, model.EntryTypeIncome, model.EntryTypeTransfer:
	default:
		return model.CategorisedEntry{}, fmt.Errorf("unknown entry type %q", record[colType])
	}

	return model.CategorisedEntry{
		Sphere:      sphere,
		Category:    record[colCategory],
		Description: record[colDescription],
		Amount:      amount,
		Type:        entryType,
		Date:        date,
		Fingerprint: record[colFingerprint],
	}, nil
}

// Append writes entries to path, creating the file and header if needed.
func Append(path string, entries []model.CategorisedEntry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	needsHeader := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if needsHeader {
		if err := cw.Write(strings.Split(Header, ",")); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}
	for i, e := range entries {
		if err := cw.Write(MarshalEntry(e)); err != nil {
			return fmt.Errorf("writing entry %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing ledger: %w", err)
	}
	return f.Close()
}

// Read returns all entries in path. A missing file has no entries.
func Read(path string) ([]model.CategorisedEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]model.CategorisedEntry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	entries := make([]model.CategorisedEntry, 0, len(records)-1)
	for i, rec := range records[1:] {
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
