// Package commands wires the bankcat command line.
package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/bankcat/internal/buildinfo"
	"github.com/cleared-dev/bankcat/internal/config"
)

// NewRootCommand creates the bankcat command.
func NewRootCommand() *cobra.Command {
	var settings config.Settings

	rootCmd := &cobra.Command{
		Use:   "bankcat <input_directory> <start_date>",
		Short: "Classify bank statement entries into a personal ledger",
		Long: `bankcat reads the CSV statements in input_directory, keeps the entries
dated within the month starting at start_date (YYYYMMDD) and asks how to
classify each one. Answers can be saved as patterns in the catalogue so
later runs classify matching entries without asking.`,
		Version: buildinfo.String(),
		Args:    cobra.ExactArgs(2),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			s, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := newLogger(s.LogLevel, s.LogFormat, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			settings = s
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, settings, args[0], args[1])
		},
	}

	config.RegisterFlags(rootCmd.Flags())

	return rootCmd
}
