package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/schollz/progressbar/v3"

	"github.com/cleared-dev/bankcat/internal/catalogue"
	"github.com/cleared-dev/bankcat/internal/model"
)

// ErrInputClosed is returned when input ends before a question is answered.
var ErrInputClosed = errors.New("input closed")

// Prompter asks classification questions on a line-oriented terminal.
// Invalid answers are rejected and the question is asked again.
type Prompter struct {
	reader      *lineReader
	writer      io.Writer
	progressBar *progressbar.ProgressBar
}

// NewPrompter creates a prompter reading answers from r and writing to w.
// Nil values default to stdin and stdout.
func NewPrompter(r io.Reader, w io.Writer) *Prompter {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &Prompter{reader: newLineReader(r), writer: w}
}

// Start shows a progress bar over total entries.
func (p *Prompter) Start(total int) {
	if total <= 0 {
		return
	}
	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(30),
		progressbar.OptionSetDescription("Classifying entries"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

// ShowEntry prints the entry about to be classified.
func (p *Prompter) ShowEntry(_ context.Context, entry model.RawEntry) error {
	if p.progressBar != nil {
		if err := p.progressBar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
	if _, err := fmt.Fprintf(p.writer, "\n\n%s\n", EntryStyle.Render(entry.String())); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	return nil
}

// ConfirmSkipDuplicate asks whether to skip an entry seen earlier in the run.
func (p *Prompter) ConfirmSkipDuplicate(ctx context.Context, _ model.RawEntry) (bool, error) {
	return p.askYesNo(ctx, "This entry has already been processed in this run. Skip it [y/n]?")
}

// ShowMatch reports the pattern that matched the entry.
func (p *Prompter) ShowMatch(_ context.Context, pattern catalogue.Pattern) error {
	p.println(FormatSuccess(fmt.Sprintf("Matched a pattern, assigning to %s", pattern.CategoryName())))
	return nil
}

// ConfirmPersonal asks whether an entry matched by a pattern that
// requires confirmation is personal.
func (p *Prompter) ConfirmPersonal(ctx context.Context, _ catalogue.OutboundPattern) (bool, error) {
	return p.askYesNo(ctx, "Should this be assigned to personal [y/n]?")
}

// AskCategory asks for an existing category, or a new one when left blank.
func (p *Prompter) AskCategory(ctx context.Context, known []string) (string, error) {
	if len(known) > 0 {
		p.println(SubtleStyle.Render("Existing categories: " + strings.Join(known, ", ")))
	}
	for {
		p.println(FormatPrompt("Enter the existing category, or leave blank"))
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer == "" {
			return p.askNewCategory(ctx)
		}
		if slices.Contains(known, answer) {
			return answer, nil
		}
		p.println(FormatError(fmt.Sprintf("Unknown category %q", answer)))
	}
}

func (p *Prompter) askNewCategory(ctx context.Context) (string, error) {
	for {
		p.println(FormatPrompt("New category:"))
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		p.println(FormatError("Category name cannot be empty"))
	}
}

// AskTransfer asks whether the entry moves money between own accounts.
func (p *Prompter) AskTransfer(ctx context.Context) (bool, error) {
	return p.askYesNo(ctx, "Does this entry represent a transfer between accounts? [n/y]")
}

// AskSphere asks whether the entry is personal or work.
func (p *Prompter) AskSphere(ctx context.Context) (model.Sphere, error) {
	for {
		p.println(FormatPrompt("Is this a work or a personal entry [p/w]?"))
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		switch strings.ToLower(answer) {
		case "p", "personal":
			return model.SpherePersonal, nil
		case "w", "work":
			return model.SphereWork, nil
		}
		p.println(FormatError("Please answer p or w"))
	}
}

// AskCreatePattern asks whether to learn a pattern from the entry.
func (p *Prompter) AskCreatePattern(ctx context.Context) (bool, error) {
	return p.askYesNo(ctx, "Would you like to create a pattern from this entry [y/n]?")
}

// AskSnippet asks for a part of description to match future entries on.
func (p *Prompter) AskSnippet(ctx context.Context, description string) (string, error) {
	for {
		p.println(FormatPrompt("Please provide the snippet"))
		answer, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if answer != "" && strings.Contains(description, answer) {
			return answer, nil
		}
		p.println(FormatError(fmt.Sprintf("The snippet must be part of %q", description)))
	}
}

// AskRequireConfirmation asks whether matches should always go to sphere.
// Answering no means future matches ask first.
func (p *Prompter) AskRequireConfirmation(ctx context.Context, sphere model.Sphere) (bool, error) {
	always, err := p.askYesNo(ctx, fmt.Sprintf("Should this always be assigned to %s [y/n]?", sphere))
	if err != nil {
		return false, err
	}
	return !always, nil
}

func (p *Prompter) askYesNo(ctx context.Context, question string) (bool, error) {
	for {
		p.println(FormatPrompt(question))
		answer, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		p.println(FormatError("Please answer y or n"))
	}
}

func (p *Prompter) readLine(ctx context.Context) (string, error) {
	line, err := p.reader.ReadString(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			return "", err
		}
		if !errors.Is(err, io.EOF) {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if line == "" {
			return "", ErrInputClosed
		}
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) println(s string) {
	if _, err := fmt.Fprintln(p.writer, s); err != nil {
		slog.Warn("Failed to write to terminal", "error", err)
	}
}
