package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sphere separates personal from work activity.
type Sphere string

const (
	SpherePersonal Sphere = "personal"
	SphereWork     Sphere = "work"
)

// EntryType is how an entry counts towards totals.
type EntryType string

const (
	EntryTypeExpense  EntryType = "expense"
	EntryTypeIncome   EntryType = "income"
	EntryTypeTransfer EntryType = "transfer"
)

// CategorisedEntry is a raw entry after classification.
type CategorisedEntry struct {
	Sphere      Sphere
	Category    string
	Description string
	Amount      decimal.Decimal
	Type        EntryType
	Date        time.Time
	Fingerprint string // of the source RawEntry
}
