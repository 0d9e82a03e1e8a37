// Package classify turns an entry's direction and the user's answers into
// a Classification.
package classify

import (
	"fmt"

	"github.com/cleared-dev/bankcat/internal/catalogue"
	"github.com/cleared-dev/bankcat/internal/model"
)

// PatternOverride flips the sphere of a matched pattern for one entry. The
// stored pattern is left untouched.
type PatternOverride struct {
	IsPersonal bool
}

// Choices bundles the answers collected for one entry. A nil field was not
// asked. Classify reads only the fields its branch needs, and every one of
// those must be set.
type Choices struct {
	ExistingPattern     catalogue.Pattern
	PatternOverride     *PatternOverride
	Category            *string
	Transfer            *bool
	Sphere              *model.Sphere
	CreatePattern       *bool
	Snippet             *string
	RequireConfirmation *bool
}

// Classification is one of ExistingPattern, NewPatternInbound,
// NewPatternOutbound, NoPatternInbound or NoPatternOutbound.
type Classification interface {
	isClassification()
}

// ExistingPattern reuses a pattern already in the catalogue.
type ExistingPattern struct {
	Pattern  catalogue.Pattern
	Override *PatternOverride
}

// NewPatternInbound records an inbound entry and teaches a new pattern.
type NewPatternInbound struct {
	Snippet        string
	Category       string
	AssignAsIncome bool
}

// NewPatternOutbound records an outbound entry and teaches a new pattern.
type NewPatternOutbound struct {
	Snippet             string
	Category            string
	AssignAsExpense     bool
	AssignAsPersonal    bool
	RequireConfirmation bool
}

// NoPatternInbound records an inbound entry without learning anything.
type NoPatternInbound struct {
	Category       string
	AssignAsIncome bool
}

// NoPatternOutbound records an outbound entry without learning anything.
type NoPatternOutbound struct {
	Category         string
	AssignAsExpense  bool
	AssignAsPersonal bool
}

func (ExistingPattern) isClassification()    {}
func (NewPatternInbound) isClassification()  {}
func (NewPatternOutbound) isClassification() {}
func (NoPatternInbound) isClassification()   {}
func (NoPatternOutbound) isClassification()  {}

// Classify decides how an entry is recorded. A present ExistingPattern wins
// over every other field. Otherwise the direction and CreatePattern pick the
// variant, and a transfer is neither income nor expense.
//
// Classify panics if a field required by the chosen branch is nil; callers
// must ask every question the branch depends on.
func Classify(direction model.Direction, choices Choices) Classification {
	if choices.ExistingPattern != nil {
		return ExistingPattern{Pattern: choices.ExistingPattern, Override: choices.PatternOverride}
	}

	switch direction {
	case model.DirectionInbound:
		category := must(choices.Category, "category", direction)
		income := !must(choices.Transfer, "transfer", direction)
		if must(choices.CreatePattern, "create_pattern", direction) {
			return NewPatternInbound{
				Snippet:        must(choices.Snippet, "snippet", direction),
				Category:       category,
				AssignAsIncome: income,
			}
		}
		return NoPatternInbound{Category: category, AssignAsIncome: income}

	case model.DirectionOutbound:
		category := must(choices.Category, "category", direction)
		expense := !must(choices.Transfer, "transfer", direction)
		personal := must(choices.Sphere, "sphere", direction) == model.SpherePersonal
		if must(choices.CreatePattern, "create_pattern", direction) {
			return NewPatternOutbound{
				Snippet:             must(choices.Snippet, "snippet", direction),
				Category:            category,
				AssignAsExpense:     expense,
				AssignAsPersonal:    personal,
				RequireConfirmation: must(choices.RequireConfirmation, "require_confirmation", direction),
			}
		}
		return NoPatternOutbound{Category: category, AssignAsExpense: expense, AssignAsPersonal: personal}
	}

	panic(fmt.Sprintf("classify: unknown direction %q", direction))
}

func must[T any](v *T, field string, direction model.Direction) T {
	if v == nil {
		panic(fmt.Sprintf("classify: missing %s choice for %s entry", field, direction))
	}
	return *v
}

// LearnedPattern returns the pattern a classification adds to the
// catalogue, or nil if it adds none.
func LearnedPattern(c Classification) catalogue.Pattern {
	switch c := c.(type) {
	case NewPatternInbound:
		return catalogue.InboundPattern{
			Snippet:        c.Snippet,
			Category:       c.Category,
			AssignAsIncome: c.AssignAsIncome,
		}
	case NewPatternOutbound:
		return catalogue.OutboundPattern{
			Snippet:             c.Snippet,
			Category:            c.Category,
			AssignAsExpense:     c.AssignAsExpense,
			AssignAsPersonal:    c.AssignAsPersonal,
			RequireConfirmation: c.RequireConfirmation,
		}
	}
	return nil
}

// Category returns the category an entry classified as c is filed under.
func Category(c Classification) string {
	switch c := c.(type) {
	case ExistingPattern:
		return c.Pattern.CategoryName()
	case NewPatternInbound:
		return c.Category
	case NewPatternOutbound:
		return c.Category
	case NoPatternInbound:
		return c.Category
	case NoPatternOutbound:
		return c.Category
	}
	panic(fmt.Sprintf("classify: unknown classification %T", c))
}
