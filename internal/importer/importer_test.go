package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bankcat/internal/model"
)

const header = "Date,Description,Amount,Balance\n"

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func writeFile(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o644))
}

func TestStatementParser_Parse(t *testing.T) {
	csv := header +
		"20191201,Fake Bookshop,-333.33,0.00\n" +
		"20191202,Salary,555.55,0.00\n"

	p := &StatementParser{}
	entries, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "Fake Bookshop", entries[0].Description)
	assert.Equal(t, model.DirectionOutbound, entries[0].Direction)
	assert.Equal(t, "333.33", entries[0].Amount.StringFixed(2))
	assert.Equal(t, date(2019, 12, 1), entries[0].Date)

	assert.Equal(t, model.DirectionInbound, entries[1].Direction)
	assert.Equal(t, "555.55", entries[1].Amount.StringFixed(2))
}

func TestStatementParser_TrimsFields(t *testing.T) {
	csv := header + "  20191101  ,  foo bar  ,  -191.60  ,  0.00  \n"
	entries, err := (&StatementParser{}).Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "foo bar", entries[0].Description)

	plain, err := model.NewRawEntry([]string{"20191101", "foo bar", "-191.60", "0.00"})
	require.NoError(t, err)
	assert.Equal(t, plain.Fingerprint, entries[0].Fingerprint)
}

func TestStatementParser_EmptyFile(t *testing.T) {
	entries, err := (&StatementParser{}).Parse(strings.NewReader(header))
	require.NoError(t, err)
	assert.Nil(t, entries)
}

func TestStatementParser_BadDate(t *testing.T) {
	csv := header + "NOTADATE,desc,-4.00,100.00\n"
	_, err := (&StatementParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
	assert.Contains(t, err.Error(), "parsing date")
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}

func TestStatementParser_BadAmount(t *testing.T) {
	csv := header + "20191101,desc,NOTANUMBER,100.00\n"
	_, err := (&StatementParser{}).Parse(strings.NewReader(csv))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing amount")
	assert.ErrorIs(t, err, model.ErrInvalidAmount)
}

func TestStatementParser_WrongFieldCount(t *testing.T) {
	csv := header + "20191101,desc,-4.00\n"
	_, err := (&StatementParser{}).Parse(strings.NewReader(csv))
	assert.Error(t, err)
}

func TestStatementParser_Format(t *testing.T) {
	assert.Equal(t, "statement", (&StatementParser{}).Format())
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := NewRegistry()
	assert.Nil(t, r.Get("nonexistent"))
}

func TestRegistry_CaseInsensitive(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("statement"))
	assert.NotNil(t, r.Get("Statement"))
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := DefaultRegistry()
	assert.Panics(t, func() { r.Register(&StatementParser{}) })
}

func TestMonthWindow(t *testing.T) {
	tests := []struct {
		start     time.Time
		wantFrom  time.Time
		wantUntil time.Time
	}{
		{date(2019, 12, 1), date(2019, 12, 1), date(2020, 1, 1)},
		{date(2019, 11, 15), date(2019, 11, 15), date(2019, 12, 1)},
		{date(2020, 2, 29), date(2020, 2, 29), date(2020, 3, 1)},
	}
	for _, tt := range tests {
		from, until := MonthWindow(tt.start)
		assert.Equal(t, tt.wantFrom, from, "from for %s", tt.start)
		assert.Equal(t, tt.wantUntil, until, "until for %s", tt.start)
	}
}

func TestScan_FindsCSVs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.csv", header)
	writeFile(t, dir, "a.CSV", header)
	writeFile(t, dir, "notes.txt", "data")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested.csv"), 0o755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.CSV", files[0].Name)
	assert.Equal(t, "b.csv", files[1].Name)
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadDir_FiltersMonth(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", header+
		"20191130,Insane purchase outside our date range,-9999.99,0.00\n"+
		"20191201,Fake Bookshop,-333.33,0.00\n"+
		"20191202,Salary,555.55,0.00\n"+
		"20200101,Insane purchase outside our date range,-9999.98,0.00\n")
	writeFile(t, dir, "b.csv", header+"20191231,Last day,-1.00,0.00\n")

	entries, err := ReadDir(dir, &StatementParser{}, date(2019, 12, 1))
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "Fake Bookshop", entries[0].Description)
	assert.Equal(t, "Salary", entries[1].Description)
	assert.Equal(t, "Last day", entries[2].Description)
}

func TestReadDir_MidMonthStart(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", header+
		"20191114,Before,-1.00,0.00\n"+
		"20191115,On start,-2.00,0.00\n"+
		"20191130,End,-3.00,0.00\n"+
		"20191201,Next month,-4.00,0.00\n")

	entries, err := ReadDir(dir, &StatementParser{}, date(2019, 11, 15))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "On start", entries[0].Description)
	assert.Equal(t, "End", entries[1].Description)
}

func TestReadDir_BadRowAbortsRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.csv", header+"20191201,ok,-1.00,0.00\n")
	writeFile(t, dir, "b.csv", header+"20191301,bad month,-1.00,0.00\n")

	_, err := ReadDir(dir, &StatementParser{}, date(2019, 12, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "b.csv")
	assert.ErrorIs(t, err, model.ErrInvalidDate)
}
