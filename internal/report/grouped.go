package report

import (
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/bankcat/internal/model"
)

// Group holds the entries of one category within one sphere.
type Group struct {
	Category string
	Sphere   model.Sphere
	Entries  []*model.CategorisedEntry
}

// TotalExpenses sums the group's expense entries.
func (g Group) TotalExpenses() decimal.Decimal { return g.total(model.EntryTypeExpense) }

// TotalIncome sums the group's income entries.
func (g Group) TotalIncome() decimal.Decimal { return g.total(model.EntryTypeIncome) }

// TotalTransfers sums the group's transfer entries.
func (g Group) TotalTransfers() decimal.Decimal { return g.total(model.EntryTypeTransfer) }

func (g Group) total(entryType model.EntryType) decimal.Decimal {
	total := decimal.Zero
	for _, e := range g.Entries {
		if e.Type == entryType {
			total = total.Add(e.Amount)
		}
	}
	return total
}

// CategorisedActivityReport is a read-only view of an ActivityReport
// grouped by category, then sphere.
type CategorisedActivityReport struct {
	Groups []Group
}

// Build groups r's entries by the given categories, in that order. For each
// category the personal group comes before the work group. Groups with no
// entries are left out, as are entries whose category is not listed.
func Build(r *ActivityReport, categories []string) *CategorisedActivityReport {
	out := &CategorisedActivityReport{}
	for _, category := range categories {
		personal := Group{Category: category, Sphere: model.SpherePersonal}
		work := Group{Category: category, Sphere: model.SphereWork}
		for i := range r.entries {
			e := &r.entries[i]
			if e.Category != category {
				continue
			}
			switch e.Sphere {
			case model.SpherePersonal:
				personal.Entries = append(personal.Entries, e)
			case model.SphereWork:
				work.Entries = append(work.Entries, e)
			}
		}
		if len(personal.Entries) > 0 {
			out.Groups = append(out.Groups, personal)
		}
		if len(work.Entries) > 0 {
			out.Groups = append(out.Groups, work)
		}
	}
	return out
}

// Group returns the group for category and sphere, if it has entries.
func (c *CategorisedActivityReport) Group(category string, sphere model.Sphere) (Group, bool) {
	for _, g := range c.Groups {
		if g.Category == category && g.Sphere == sphere {
			return g, true
		}
	}
	return Group{}, false
}
