package model

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Direction tells whether money left or entered the account.
type Direction string

const (
	DirectionInbound  Direction = "inbound"
	DirectionOutbound Direction = "outbound"
)

// DateFormat is the layout of statement dates and the start-date argument.
const DateFormat = "20060102"

var (
	// ErrInvalidDate is returned when a date field is not YYYYMMDD.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidAmount is returned when an amount or balance is not a decimal.
	ErrInvalidAmount = errors.New("invalid amount")
)

// NumRawFields is the number of columns in a statement row.
const NumRawFields = 4

const (
	colDate    = 0
	colDesc    = 1
	colAmount  = 2
	colBalance = 3
)

// RawEntry is one normalized bank statement line.
type RawEntry struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal // absolute value
	Direction   Direction
	Balance     decimal.Decimal
	Fingerprint string // hex SHA-256 of the trimmed source fields
}

// NewRawEntry parses a statement row of date, description, signed amount
// and balance. Surrounding whitespace is ignored in every field.
func NewRawEntry(record []string) (RawEntry, error) {
	if len(record) != NumRawFields {
		return RawEntry{}, fmt.Errorf("expected %d fields, got %d", NumRawFields, len(record))
	}

	fields := make([]string, NumRawFields)
	for i, f := range record {
		fields[i] = strings.TrimSpace(f)
	}

	date, err := ParseDate(fields[colDate])
	if err != nil {
		return RawEntry{}, err
	}

	signed, err := decimal.NewFromString(fields[colAmount])
	if err != nil {
		return RawEntry{}, fmt.Errorf("parsing amount %q: %w", fields[colAmount], ErrInvalidAmount)
	}

	balance, err := decimal.NewFromString(fields[colBalance])
	if err != nil {
		return RawEntry{}, fmt.Errorf("parsing balance %q: %w", fields[colBalance], ErrInvalidAmount)
	}

	// Zero-amount lines count as outbound.
	direction := DirectionOutbound
	if signed.IsPositive() {
		direction = DirectionInbound
	}

	return RawEntry{
		Date:        date,
		Description: fields[colDesc],
		Amount:      signed.Abs(),
		Direction:   direction,
		Balance:     balance,
		Fingerprint: Fingerprint(fields),
	}, nil
}

// Fingerprint hashes the given fields in order, without separators.
func Fingerprint(fields []string) string {
	h := sha256.New()
	for _, f := range fields {
		h.Write([]byte(f))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ParseDate parses a YYYYMMDD date.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, ErrInvalidDate)
	}
	return d, nil
}

// String renders the entry the way it is shown to the user, e.g.
// "2019-12-01 outbound Fake Bookshop 333.33 0.00".
func (e RawEntry) String() string {
	return fmt.Sprintf("%s %s %s %s %s",
		e.Date.Format("2006-01-02"), e.Direction, e.Description, e.Amount.StringFixed(2), e.Balance.StringFixed(2))
}
