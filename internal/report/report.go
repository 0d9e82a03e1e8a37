// Package report accumulates classified entries for one run and totals them.
package report

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bankcat/internal/catalogue"
	"github.com/cleared-dev/bankcat/internal/classify"
	"github.com/cleared-dev/bankcat/internal/model"
)

// ActivityReport is the append-only log of entries categorised in a run.
type ActivityReport struct {
	entries []model.CategorisedEntry
}

// New creates an empty report.
func New() *ActivityReport {
	return &ActivityReport{}
}

// Add appends e. Duplicate source lines are the caller's decision, so Add
// never drops an entry.
func (r *ActivityReport) Add(e model.CategorisedEntry) {
	r.entries = append(r.entries, e)
}

// Entries returns the entries in the order they were added. The slice must
// not be modified.
func (r *ActivityReport) Entries() []model.CategorisedEntry {
	return r.entries
}

// Len returns the number of entries.
func (r *ActivityReport) Len() int {
	return len(r.entries)
}

// Total sums the amounts of entries in sphere with the given type.
func (r *ActivityReport) Total(sphere model.Sphere, entryType model.EntryType) decimal.Decimal {
	total := decimal.Zero
	for _, e := range r.entries {
		if e.Sphere == sphere && e.Type == entryType {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// TotalPersonal is the sum of personal expenses.
func (r *ActivityReport) TotalPersonal() decimal.Decimal {
	return r.Total(model.SpherePersonal, model.EntryTypeExpense)
}

// TotalWork is the sum of work expenses.
func (r *ActivityReport) TotalWork() decimal.Decimal {
	return r.Total(model.SphereWork, model.EntryTypeExpense)
}

// FromClassification builds the categorised entry for raw as classified by c.
// Inbound entries are always personal.
func FromClassification(raw model.RawEntry, c classify.Classification) model.CategorisedEntry {
	sphere, entryType := resolve(c)
	return model.CategorisedEntry{
		Sphere:      sphere,
		Category:    classify.Category(c),
		Description: raw.Description,
		Amount:      raw.Amount,
		Type:        entryType,
		Date:        raw.Date,
		Fingerprint: raw.Fingerprint,
	}
}

func resolve(c classify.Classification) (model.Sphere, model.EntryType) {
	switch c := c.(type) {
	case classify.ExistingPattern:
		switch p := c.Pattern.(type) {
		case catalogue.InboundPattern:
			return model.SpherePersonal, inboundType(p.AssignAsIncome)
		case catalogue.OutboundPattern:
			sphere := p.Sphere()
			if c.Override != nil {
				sphere = sphereOf(c.Override.IsPersonal)
			}
			return sphere, outboundType(p.AssignAsExpense)
		}
		panic(fmt.Sprintf("report: unknown pattern type %T", c.Pattern))
	case classify.NewPatternInbound:
		return model.SpherePersonal, inboundType(c.AssignAsIncome)
	case classify.NoPatternInbound:
		return model.SpherePersonal, inboundType(c.AssignAsIncome)
	case classify.NewPatternOutbound:
		return sphereOf(c.AssignAsPersonal), outboundType(c.AssignAsExpense)
	case classify.NoPatternOutbound:
		return sphereOf(c.AssignAsPersonal), outboundType(c.AssignAsExpense)
	}
	panic(fmt.Sprintf("report: unknown classification %T", c))
}

func sphereOf(personal bool) model.Sphere {
	if personal {
		return model.SpherePersonal
	}
	return model.SphereWork
}

func inboundType(income bool) model.EntryType {
	if income {
		return model.EntryTypeIncome
	}
	return model.EntryTypeTransfer
}

func outboundType(expense bool) model.EntryType {
	if expense {
		return model.EntryTypeExpense
	}
	return model.EntryTypeTransfer
}
