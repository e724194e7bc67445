package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mailscout/mailscout/internal/config"
	"github.com/mailscout/mailscout/internal/database"
	"github.com/mailscout/mailscout/internal/report"
)

// NewHistoryCmd creates the history command.
// This command lists past runs stored in the history database.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List past searches",
		Long: `History lists past searches recorded in the local database.

Every 'mailscout find' run is recorded unless --no-history was given.
The listing shows the start URL, date, and addresses found.

Examples:
  # Show the 20 most recent runs
  mailscout history

  # Show more runs
  mailscout history --limit 100

  # Show findings of a specific run
  mailscout history --run-id 5

  # Output JSON
  mailscout history --json`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", 20,
		"Maximum number of runs to list (0 for all)")
	cmd.Flags().Int64P("run-id", "i", 0,
		"Show the findings of a specific run")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	limit, err := cmd.Flags().GetInt("limit")
	if err != nil {
		return err
	}
	runID, err := cmd.Flags().GetInt64("run-id")
	if err != nil {
		return err
	}
	jsonOut, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOut, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOut && markdownOut {
		return config.ErrConflictingReportFormats
	}

	// Opening read-only: a missing database just means no history yet.
	opts := database.Options{CreateIfNotExists: false, EnableWAL: true}
	db, err := database.Open(config.XDGDataDir(), opts)
	if err != nil {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
		return nil
	}
	defer db.Close()

	var writer report.Writer
	switch {
	case jsonOut:
		writer = report.NewJSONWriter(cmd.OutOrStdout(), report.WithPrettyPrint())
	case markdownOut:
		writer = report.NewMarkdownWriter(cmd.OutOrStdout())
	default:
		writer = report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(true))
	}

	ctx := cmd.Context()

	// Single-run detail view
	if runID > 0 {
		runs, err := db.RecentRuns(ctx, 0)
		if err != nil {
			return fmt.Errorf("failed to read history: %w", err)
		}
		for i := range runs {
			if runs[i].ID != runID {
				continue
			}
			findings, err := db.FindingsForRun(ctx, runID)
			if err != nil {
				return fmt.Errorf("failed to read findings: %w", err)
			}
			runs[i].Findings = findings
			_, err = writer.Write(&runs[i])
			return err
		}
		return fmt.Errorf("run %d not found", runID)
	}

	runs, err := db.RecentRuns(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	_, err = writer.WriteHistory(runs)
	return err
}
