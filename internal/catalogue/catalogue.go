// Package catalogue holds the learned categories and snippet patterns that
// classify statement entries between runs.
package catalogue

import (
	"fmt"
	"slices"

	"github.com/cleared-dev/bankcat/internal/model"
)

// Catalogue is the persisted set of categories and patterns. Field order
// is the top-level key order of the YAML file.
type Catalogue struct {
	Categories       []string          `yaml:"categories"`
	InboundPatterns  []InboundPattern  `yaml:"inbound_patterns"`
	OutboundPatterns []OutboundPattern `yaml:"outbound_patterns"`
}

// Template returns the empty catalogue written to a fresh file.
func Template() *Catalogue {
	return &Catalogue{
		Categories:       []string{},
		InboundPatterns:  []InboundPattern{},
		OutboundPatterns: []OutboundPattern{},
	}
}

// FindPattern returns the first pattern, in stored order, of the entry's
// direction whose snippet occurs in the entry description. It returns nil
// when nothing matches.
func (c *Catalogue) FindPattern(entry model.RawEntry) Pattern {
	switch entry.Direction {
	case model.DirectionInbound:
		for _, p := range c.InboundPatterns {
			if p.Matches(entry.Description) {
				return p
			}
		}
	case model.DirectionOutbound:
		for _, p := range c.OutboundPatterns {
			if p.Matches(entry.Description) {
				return p
			}
		}
	}
	return nil
}

// HasCategory reports whether name is a known category.
func (c *Catalogue) HasCategory(name string) bool {
	return slices.Contains(c.Categories, name)
}

// AddCategory appends name unless it is already known.
func (c *Catalogue) AddCategory(name string) {
	if c.HasCategory(name) {
		return
	}
	c.Categories = append(c.Categories, name)
}

// LearnPattern appends p to its direction's list. Duplicate snippets are
// kept; the earliest one keeps winning lookups.
func (c *Catalogue) LearnPattern(p Pattern) {
	switch p := p.(type) {
	case InboundPattern:
		c.InboundPatterns = append(c.InboundPatterns, p)
	case OutboundPattern:
		c.OutboundPatterns = append(c.OutboundPatterns, p)
	default:
		panic(fmt.Sprintf("catalogue: unknown pattern type %T", p))
	}
}

// Validate checks that the category list has no duplicates.
func (c *Catalogue) Validate() error {
	seen := make(map[string]bool, len(c.Categories))
	for _, name := range c.Categories {
		if seen[name] {
			return fmt.Errorf("duplicate category %q", name)
		}
		seen[name] = true
	}
	return nil
}

func (c *Catalogue) normalize() {
	if c.Categories == nil {
		c.Categories = []string{}
	}
	if c.InboundPatterns == nil {
		c.InboundPatterns = []InboundPattern{}
	}
	if c.OutboundPatterns == nil {
		c.OutboundPatterns = []OutboundPattern{}
	}
}
