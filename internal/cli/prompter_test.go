package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/bankcat/internal/catalogue"
	"github.com/cleared-dev/bankcat/internal/model"
	"github.com/cleared-dev/bankcat/internal/session"
)

var _ session.Prompter = (*Prompter)(nil)

func newTestPrompter(input string) (*Prompter, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewPrompter(strings.NewReader(input), out), out
}

func TestAskYesNo(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"y", "y\n", true},
		{"yes upper", "YES\n", true},
		{"n", "n\n", false},
		{"no with spaces", "  no  \n", false},
		{"reprompt until valid", "maybe\n\ny\n", true},
		{"last line without newline", "n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestPrompter(tt.input)
			got, err := p.AskCreatePattern(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAskYesNo_RepromptsOnInvalid(t *testing.T) {
	p, out := newTestPrompter("maybe\ny\n")

	got, err := p.AskTransfer(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
	assert.Equal(t, 2, strings.Count(out.String(), "Does this entry represent a transfer between accounts? [n/y]"))
	assert.Contains(t, out.String(), "Please answer y or n")
}

func TestReadLine_InputClosed(t *testing.T) {
	p, _ := newTestPrompter("")

	_, err := p.AskTransfer(context.Background())
	assert.ErrorIs(t, err, ErrInputClosed)
}

func TestReadLine_CancelledContext(t *testing.T) {
	p, _ := newTestPrompter("y\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.AskTransfer(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestReadLine_CancelWhileWaiting(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewPrompter(pr, &bytes.Buffer{})

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		_, err := p.AskTransfer(ctx)
		errCh <- err
	}()
	cancel()

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("prompt still blocked after cancel")
	}
}

func TestReadLine_AbandonedLineGoesToNextRead(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	p := NewPrompter(pr, &bytes.Buffer{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := p.AskTransfer(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	go func() {
		_, _ = pw.Write([]byte("y\n"))
	}()
	got, err := p.AskTransfer(context.Background())
	require.NoError(t, err)
	assert.True(t, got)
}

func TestAskSphere(t *testing.T) {
	p, out := newTestPrompter("x\nw\np\n")

	got, err := p.AskSphere(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SphereWork, got)
	assert.Contains(t, out.String(), "Is this a work or a personal entry [p/w]?")
	assert.Contains(t, out.String(), "Please answer p or w")

	got, err = p.AskSphere(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.SpherePersonal, got)
}

func TestAskCategory_Existing(t *testing.T) {
	p, out := newTestPrompter("books\n")

	got, err := p.AskCategory(context.Background(), []string{"books", "salary"})
	require.NoError(t, err)
	assert.Equal(t, "books", got)
	assert.Contains(t, out.String(), "Existing categories: books, salary")
	assert.NotContains(t, out.String(), "New category:")
}

func TestAskCategory_BlankCreatesNew(t *testing.T) {
	p, out := newTestPrompter("\n\nmisc\n")

	got, err := p.AskCategory(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "misc", got)
	assert.Contains(t, out.String(), "Enter the existing category, or leave blank")
	assert.Contains(t, out.String(), "Category name cannot be empty")
	assert.NotContains(t, out.String(), "Existing categories")
}

func TestAskCategory_UnknownReprompts(t *testing.T) {
	p, out := newTestPrompter("food\nbooks\n")

	got, err := p.AskCategory(context.Background(), []string{"books"})
	require.NoError(t, err)
	assert.Equal(t, "books", got)
	assert.Contains(t, out.String(), `Unknown category "food"`)
}

func TestAskSnippet(t *testing.T) {
	p, out := newTestPrompter("\nSupermarket\nBookshop\n")

	got, err := p.AskSnippet(context.Background(), "Fake Bookshop")
	require.NoError(t, err)
	assert.Equal(t, "Bookshop", got)
	assert.Equal(t, 3, strings.Count(out.String(), "Please provide the snippet"))
	assert.Contains(t, out.String(), `The snippet must be part of "Fake Bookshop"`)
}

func TestAskRequireConfirmation(t *testing.T) {
	p, out := newTestPrompter("y\nn\n")

	require1, err := p.AskRequireConfirmation(context.Background(), model.SpherePersonal)
	require.NoError(t, err)
	assert.False(t, require1)
	assert.Contains(t, out.String(), "Should this always be assigned to personal [y/n]?")

	require2, err := p.AskRequireConfirmation(context.Background(), model.SphereWork)
	require.NoError(t, err)
	assert.True(t, require2)
}

func TestConfirmPersonal(t *testing.T) {
	pattern := catalogue.OutboundPattern{Snippet: "Shop", Category: "misc", AssignAsPersonal: true, RequireConfirmation: true}

	p, out := newTestPrompter("n\n")
	personal, err := p.ConfirmPersonal(context.Background(), pattern)
	require.NoError(t, err)
	assert.False(t, personal)
	assert.Contains(t, out.String(), "Should this be assigned to personal [y/n]?")

	p, _ = newTestPrompter("y\n")
	personal, err = p.ConfirmPersonal(context.Background(), pattern)
	require.NoError(t, err)
	assert.True(t, personal)
}

func TestConfirmSkipDuplicate(t *testing.T) {
	p, out := newTestPrompter("y\n")

	skip, err := p.ConfirmSkipDuplicate(context.Background(), model.RawEntry{})
	require.NoError(t, err)
	assert.True(t, skip)
	assert.Contains(t, out.String(), "already been processed")
}

func TestShowEntryAndMatch(t *testing.T) {
	entry, err := model.NewRawEntry([]string{"20191201", "Fake Bookshop", "-333.33", "0"})
	require.NoError(t, err)

	p, out := newTestPrompter("")
	p.Start(2)
	require.NoError(t, p.ShowEntry(context.Background(), entry))
	require.NoError(t, p.ShowMatch(context.Background(), catalogue.InboundPattern{Snippet: "Salary", Category: "salary"}))

	assert.Contains(t, out.String(), "2019-12-01 outbound Fake Bookshop 333.33 0.00")
	assert.Contains(t, out.String(), "Matched a pattern, assigning to salary")
	assert.Contains(t, out.String(), "Classifying entries")
}

func TestStart_NoEntries(t *testing.T) {
	p, out := newTestPrompter("")
	p.Start(0)

	assert.Nil(t, p.progressBar)
	assert.Empty(t, out.String())
}
