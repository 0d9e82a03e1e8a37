package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/cleared-dev/bankcat/internal/model"
	"github.com/cleared-dev/bankcat/internal/report"
)

// RenderSummary writes the per-category groups followed by the run totals.
func RenderSummary(w io.Writer, grouped *report.CategorisedActivityReport, r *report.ActivityReport) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(TitleStyle.Render(fmt.Sprintf("Summary of %d entries", r.Len())))
	b.WriteString("\n")

	for _, g := range grouped.Groups {
		fmt.Fprintf(&b, "\n%s\n", EntryStyle.Render(fmt.Sprintf("%s (%s)", g.Category, g.Sphere)))
		for _, e := range g.Entries {
			fmt.Fprintf(&b, "  %s  %-40s %12s  %s\n",
				e.Date.Format("2006-01-02"), e.Description, e.Amount.StringFixed(2), SubtleStyle.Render(string(e.Type)))
		}
		totals := fmt.Sprintf("expenses %s  income %s  transfers %s",
			g.TotalExpenses().StringFixed(2), g.TotalIncome().StringFixed(2), g.TotalTransfers().StringFixed(2))
		b.WriteString(TotalStyle.Render(totals))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "Personal expenses: %s\n", r.TotalPersonal().StringFixed(2))
	fmt.Fprintf(&b, "Work expenses:     %s\n", r.TotalWork().StringFixed(2))
	fmt.Fprintf(&b, "Income:            %s\n",
		r.Total(model.SpherePersonal, model.EntryTypeIncome).Add(r.Total(model.SphereWork, model.EntryTypeIncome)).StringFixed(2))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}
	return nil
}
