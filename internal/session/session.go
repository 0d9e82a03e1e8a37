// Package session runs the interactive classification loop: one entry at a
// time is classified, recorded and folded back into the catalogue, and the
// catalogue is saved before the next entry is read.
package session

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cleared-dev/bankcat/internal/catalogue"
	"github.com/cleared-dev/bankcat/internal/classify"
	"github.com/cleared-dev/bankcat/internal/model"
	"github.com/cleared-dev/bankcat/internal/report"
)

// Prompter asks the user for the choices that classify an entry. Every
// method blocks until it has a valid answer.
type Prompter interface {
	ShowEntry(ctx context.Context, entry model.RawEntry) error
	// ConfirmSkipDuplicate reports whether an already processed entry
	// should be skipped.
	ConfirmSkipDuplicate(ctx context.Context, entry model.RawEntry) (bool, error)
	ShowMatch(ctx context.Context, pattern catalogue.Pattern) error
	// ConfirmPersonal asks whether an entry matched by a pattern that
	// requires confirmation is personal.
	ConfirmPersonal(ctx context.Context, pattern catalogue.OutboundPattern) (bool, error)
	// AskCategory returns a known category or a new category name.
	AskCategory(ctx context.Context, known []string) (string, error)
	AskTransfer(ctx context.Context) (bool, error)
	AskSphere(ctx context.Context) (model.Sphere, error)
	AskCreatePattern(ctx context.Context) (bool, error)
	// AskSnippet returns a snippet occurring in description.
	AskSnippet(ctx context.Context, description string) (string, error)
	// AskRequireConfirmation reports whether future matches should ask
	// before being assigned to sphere.
	AskRequireConfirmation(ctx context.Context, sphere model.Sphere) (bool, error)
}

// Store persists the catalogue.
type Store interface {
	Save(c *catalogue.Catalogue) error
}

// Outcome is what happened to a processed entry.
type Outcome int

const (
	// Recorded means the entry was added to the report.
	Recorded Outcome = iota
	// Skipped means the user skipped a duplicate entry.
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Recorded:
		return "recorded"
	case Skipped:
		return "skipped"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Session owns the catalogue and report for one run.
type Session struct {
	catalogue *catalogue.Catalogue
	report    *report.ActivityReport
	prompter  Prompter
	store     Store
	processed map[string]bool
	logger    *slog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// New creates a Session that classifies into c and saves c to store after
// every recorded entry.
func New(c *catalogue.Catalogue, prompter Prompter, store Store, opts ...Option) *Session {
	s := &Session{
		catalogue: c,
		report:    report.New(),
		prompter:  prompter,
		store:     store,
		processed: make(map[string]bool),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Catalogue returns the session's catalogue.
func (s *Session) Catalogue() *catalogue.Catalogue { return s.catalogue }

// Report returns the entries recorded so far.
func (s *Session) Report() *report.ActivityReport { return s.report }

// Run processes entries in order and stops at the first error.
func (s *Session) Run(ctx context.Context, entries []model.RawEntry) error {
	for i, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, err := s.Process(ctx, e); err != nil {
			return fmt.Errorf("entry %d (%s): %w", i+1, e.Description, err)
		}
	}
	return nil
}

// Process classifies a single entry. Nothing is recorded or saved unless
// every prompt succeeds.
func (s *Session) Process(ctx context.Context, entry model.RawEntry) (Outcome, error) {
	if err := s.prompter.ShowEntry(ctx, entry); err != nil {
		return 0, err
	}

	if s.processed[entry.Fingerprint] {
		skip, err := s.prompter.ConfirmSkipDuplicate(ctx, entry)
		if err != nil {
			return 0, err
		}
		if skip {
			s.logger.Info("skipped duplicate entry", "fingerprint", entry.Fingerprint)
			return Skipped, nil
		}
	}

	choices, err := s.collect(ctx, entry)
	if err != nil {
		return 0, err
	}

	c := classify.Classify(entry.Direction, choices)
	s.report.Add(report.FromClassification(entry, c))
	s.processed[entry.Fingerprint] = true

	s.catalogue.AddCategory(classify.Category(c))
	if p := classify.LearnedPattern(c); p != nil {
		s.catalogue.LearnPattern(p)
		s.logger.Info("learned pattern", "direction", p.Direction(), "category", p.CategoryName())
	}

	if err := s.store.Save(s.catalogue); err != nil {
		return 0, fmt.Errorf("saving catalogue: %w", err)
	}
	s.logger.Debug("catalogue saved", "categories", len(s.catalogue.Categories))
	return Recorded, nil
}

// collect asks exactly the questions Classify needs for this entry.
func (s *Session) collect(ctx context.Context, entry model.RawEntry) (classify.Choices, error) {
	var choices classify.Choices

	if p := s.catalogue.FindPattern(entry); p != nil {
		if err := s.prompter.ShowMatch(ctx, p); err != nil {
			return choices, err
		}
		choices.ExistingPattern = p
		if out, ok := p.(catalogue.OutboundPattern); ok && out.RequireConfirmation {
			personal, err := s.prompter.ConfirmPersonal(ctx, out)
			if err != nil {
				return choices, err
			}
			choices.PatternOverride = &classify.PatternOverride{IsPersonal: personal}
		}
		return choices, nil
	}

	category, err := s.prompter.AskCategory(ctx, s.catalogue.Categories)
	if err != nil {
		return choices, err
	}
	choices.Category = &category

	transfer, err := s.prompter.AskTransfer(ctx)
	if err != nil {
		return choices, err
	}
	choices.Transfer = &transfer

	// Transfers are filed as personal without asking.
	sphere := model.SpherePersonal
	if entry.Direction == model.DirectionOutbound {
		if !transfer {
			sphere, err = s.prompter.AskSphere(ctx)
			if err != nil {
				return choices, err
			}
		}
		choices.Sphere = &sphere
	}

	create, err := s.prompter.AskCreatePattern(ctx)
	if err != nil {
		return choices, err
	}
	choices.CreatePattern = &create
	if !create {
		return choices, nil
	}

	snippet, err := s.prompter.AskSnippet(ctx, entry.Description)
	if err != nil {
		return choices, err
	}
	choices.Snippet = &snippet

	if entry.Direction == model.DirectionOutbound {
		confirm := false
		if !transfer {
			confirm, err = s.prompter.AskRequireConfirmation(ctx, sphere)
			if err != nil {
				return choices, err
			}
		}
		choices.RequireConfirmation = &confirm
	}
	return choices, nil
}
