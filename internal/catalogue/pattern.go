package catalogue

import (
	"strings"

	"github.com/cleared-dev/bankcat/internal/model"
)

// Pattern is a learned snippet rule. It is either an InboundPattern or an
// OutboundPattern.
type Pattern interface {
	Direction() model.Direction
	// Matches reports whether the snippet is a substring of description.
	// Matching is case-sensitive.
	Matches(description string) bool
	CategoryName() string
}

// InboundPattern classifies money entering the account.
type InboundPattern struct {
	Snippet        string `yaml:"snippet"`
	Category       string `yaml:"category"`
	AssignAsIncome bool   `yaml:"assign_as_income"`
}

// Direction reports which entries the pattern applies to.
func (p InboundPattern) Direction() model.Direction { return model.DirectionInbound }

// Matches reports whether description contains the snippet.
func (p InboundPattern) Matches(description string) bool {
	return strings.Contains(description, p.Snippet)
}

// CategoryName returns the category assigned to matching entries.
func (p InboundPattern) CategoryName() string { return p.Category }

// OutboundPattern classifies money leaving the account.
type OutboundPattern struct {
	Snippet             string `yaml:"snippet"`
	Category            string `yaml:"category"`
	AssignAsExpense     bool   `yaml:"assign_as_expense"`
	AssignAsPersonal    bool   `yaml:"assign_as_personal"`
	RequireConfirmation bool   `yaml:"require_confirmation"`
}

// Direction reports which entries the pattern applies to.
func (p OutboundPattern) Direction() model.Direction { return model.DirectionOutbound }

// Matches reports whether description contains the snippet.
func (p OutboundPattern) Matches(description string) bool {
	return strings.Contains(description, p.Snippet)
}

// CategoryName returns the category assigned to matching entries.
func (p OutboundPattern) CategoryName() string { return p.Category }

// Sphere is the sphere the pattern assigns when no override is given.
func (p OutboundPattern) Sphere() model.Sphere {
	if p.AssignAsPersonal {
		return model.SpherePersonal
	}
	return model.SphereWork
}
