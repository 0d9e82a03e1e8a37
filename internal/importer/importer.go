// Package importer reads bank statement CSV files into raw entries.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/bankcat/internal/model"
)

// Parser converts a statement CSV file into RawEntries.
type Parser interface {
	Parse(r io.Reader) ([]model.RawEntry, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the input directory.
type FileInfo struct {
	Name string
	Path string
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&StatementParser{})
	return r
}

// Scan returns the CSV files directly inside dir, in name order.
func Scan(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading input dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
		})
	}
	return files, nil
}

// MonthWindow returns the half-open range [start, first day of the next
// month) processed for a start date.
func MonthWindow(start time.Time) (from, until time.Time) {
	y, m, d := start.Date()
	from = time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	until = time.Date(y, m+1, 1, 0, 0, 0, 0, time.UTC)
	return from, until
}

// ReadDir parses every CSV file in dir with p and keeps the entries inside
// the month window of start. Any unparsable row fails the whole read.
func ReadDir(dir string, p Parser, start time.Time) ([]model.RawEntry, error) {
	files, err := Scan(dir)
	if err != nil {
		return nil, err
	}

	from, until := MonthWindow(start)

	var entries []model.RawEntry
	for _, f := range files {
		parsed, err := parseFile(f.Path, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		for _, e := range parsed {
			if !e.Date.Before(from) && e.Date.Before(until) {
				entries = append(entries, e)
			}
		}
	}
	return entries, nil
}

func parseFile(path string, p Parser) ([]model.RawEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening statement: %w", err)
	}
	defer f.Close()
	return p.Parse(f)
}
