package main

import (
	"github.com/spf13/cobra"

	"webenum/internal/adapters/history"
	"webenum/internal/adapters/output"
	"webenum/internal/core/ports"
	"webenum/internal/platform/config"
	"webenum/internal/platform/validator"
)

// NewHistoryCmd creates the history subcommand.
func NewHistoryCmd() *cobra.Command {
	var (
		limit  int
		target string
		dbPath string
	)

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs, most recent first",
		Long: `List the runs recorded with --history. The database lives under
$XDG_DATA_HOME/webenum unless history.path or WEBENUM_HISTORY_PATH says otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dbPath == "" {
				cfg, err := config.Load(nil)
				if err != nil {
					return &exitError{code: 1, err: err}
				}
				dbPath = cfg.History.Path
			}

			store, err := history.Open(dbPath)
			if err != nil {
				return &exitError{code: 1, err: err}
			}
			defer store.Close()

			records, err := store.ListRuns(cmd.Context(), ports.RunFilter{
				Target: validator.NormalizeDomain(target),
				Limit:  limit,
			})
			if err != nil {
				return &exitError{code: 1, err: err}
			}
			return output.HistoryTable(cmd.OutOrStdout(), records)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "Maximum number of runs to show")
	cmd.Flags().StringVarP(&target, "target", "t", "", "Only show runs for this domain")
	cmd.Flags().StringVar(&dbPath, "db", "", "History database (default from config)")

	return cmd
}
