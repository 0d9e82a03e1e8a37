package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankcat/internal/catalogue"
	"github.com/cleared-dev/bankcat/internal/cli"
	"github.com/cleared-dev/bankcat/internal/config"
	"github.com/cleared-dev/bankcat/internal/importer"
	"github.com/cleared-dev/bankcat/internal/ledger"
	"github.com/cleared-dev/bankcat/internal/model"
	"github.com/cleared-dev/bankcat/internal/report"
	"github.com/cleared-dev/bankcat/internal/session"
)

func runImport(cmd *cobra.Command, settings config.Settings, inputDir, startArg string) error {
	start, err := model.ParseDate(startArg)
	if err != nil {
		return fmt.Errorf("invalid start date: %w", err)
	}

	cat, created, err := catalogue.Ensure(settings.CataloguePath)
	if err != nil {
		return fmt.Errorf("loading catalogue: %w", err)
	}
	if created {
		slog.Info("Created catalogue", "path", settings.CataloguePath)
	} else {
		slog.Info("Loaded catalogue", "path", settings.CataloguePath)
	}

	parser := importer.DefaultRegistry().Get(settings.Format)
	if parser == nil {
		return fmt.Errorf("unknown statement format %q", settings.Format)
	}

	entries, err := importer.ReadDir(inputDir, parser, start)
	if err != nil {
		return fmt.Errorf("reading statements: %w", err)
	}
	from, until := importer.MonthWindow(start)
	slog.Info("Loaded entries",
		"count", len(entries),
		"from", from.Format(model.DateFormat),
		"until", until.Format(model.DateFormat))

	prompter := cli.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	prompter.Start(len(entries))

	sess := session.New(cat, prompter, catalogue.FileStore{Path: settings.CataloguePath},
		session.WithLogger(slog.Default()))
	if err := sess.Run(cmd.Context(), entries); err != nil {
		return fmt.Errorf("import session: %w", err)
	}

	grouped := report.Build(sess.Report(), cat.Categories)
	if err := cli.RenderSummary(cmd.OutOrStdout(), grouped, sess.Report()); err != nil {
		return err
	}

	if settings.LedgerPath != "" {
		if err := ledger.Append(settings.LedgerPath, sess.Report().Entries()); err != nil {
			return fmt.Errorf("exporting ledger: %w", err)
		}
		slog.Info("Exported ledger", "path", settings.LedgerPath, "entries", sess.Report().Len())
	}

	return nil
}
