package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mailscout/mailscout"
	"github.com/mailscout/mailscout/internal/config"
	"github.com/mailscout/mailscout/internal/database"
	"github.com/mailscout/mailscout/internal/log"
	"github.com/mailscout/mailscout/internal/model"
	"github.com/mailscout/mailscout/internal/pipeline"
	"github.com/mailscout/mailscout/internal/report"
)

// NewFindCmd creates the find command.
func NewFindCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find [url...]",
		Short: "Find contact email addresses on a website",
		Long: `Find fetches the start page and searches it for contact email addresses.

Heuristics run in order of reliability:
1. mailto links on the start page
2. address-shaped text anywhere on the start page
3. pages behind contact-like menu entries (one level deep)
4. the other pages the start page links to

The first heuristic that yields addresses wins. Network failures are
treated as "not found" unless --strict is given.

Examples:
  # Search a single site
  mailscout find https://example.com

  # Search several sites concurrently
  mailscout find https://a.example https://b.example

  # Stop at the very first address
  mailscout find --first-match https://example.com

  # Surface network errors instead of swallowing them
  mailscout find --strict https://example.com

  # Output JSON
  mailscout find --json https://example.com

Configuration file (.mailscout) example:
  separator: "; "
  timeout: 45s
  ignore_patterns:
    - "/careers"
  contact_labels:
    - "support"
  deny_emails:
    - "@example-cdn"`,
		Args: cobra.ArbitraryArgs,
		RunE: runFindCmd,
	}

	// Search behavior flags
	cmd.Flags().BoolP("first-match", "f", false,
		"Stop at the first address found")
	cmd.Flags().BoolP("strict", "s", false,
		"Return errors for unreachable pages instead of treating them as not found")
	cmd.Flags().StringP("separator", "S", config.DefaultSeparator,
		"String used to join multiple addresses")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().StringP("user-agent", "u", config.DefaultUserAgent,
		"User-Agent header sent with every request")

	// Batch flags
	cmd.Flags().IntP("concurrency", "b", config.DefaultConcurrency,
		"Number of concurrent searches when several URLs are given")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .mailscout in current or home directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON result (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown result (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write result to specified file path (creates directories if needed)")

	// History flags
	cmd.Flags().Bool("no-history", false,
		"Do not record this run in the history database")

	return cmd
}

// runFindCmd executes the find command.
func runFindCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runFind(ctx, cmd, cfg, logger)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from cobra command flags.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error

	cfg.FirstMatchOnly, err = cmd.Flags().GetBool("first-match")
	if err != nil {
		return nil, err
	}

	cfg.StrictErrors, err = cmd.Flags().GetBool("strict")
	if err != nil {
		return nil, err
	}

	cfg.Separator, err = cmd.Flags().GetString("separator")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.UserAgent, err = cmd.Flags().GetString("user-agent")
	if err != nil {
		return nil, err
	}

	cfg.Concurrency, err = cmd.Flags().GetInt("concurrency")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load settings from a config file when one is present.
	// If the user explicitly specified a path, error when it is missing.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	// Flags win over the config file when both set a value.
	if cmd.Flags().Changed("separator") {
		cfg.Separator, _ = cmd.Flags().GetString("separator")
	}
	if cmd.Flags().Changed("timeout") {
		cfg.Timeout, _ = cmd.Flags().GetDuration("timeout")
	}
	if cmd.Flags().Changed("user-agent") {
		cfg.UserAgent, _ = cmd.Flags().GetString("user-agent")
	}

	cfg.JSONReport, err = cmd.Flags().GetBool("json")
	if err != nil {
		return nil, err
	}

	cfg.MarkdownReport, err = cmd.Flags().GetBool("markdown")
	if err != nil {
		return nil, err
	}

	cfg.ReportFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	noHistory, err := cmd.Flags().GetBool("no-history")
	if err != nil {
		return nil, err
	}
	cfg.SaveHistory = !noHistory
	cfg.DBDir = config.XDGDataDir()

	cfg.Verbose = getVerboseFlag(cmd)

	// Positional arguments (start URLs)
	cfg.StartURLs = args

	return cfg, nil
}

// runFind executes the search.
func runFind(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting search",
		"targets", cfg.StartURLs,
		"firstMatch", cfg.FirstMatchOnly,
		"strict", cfg.StrictErrors,
		"concurrency", cfg.Concurrency,
	)

	// Open the history database unless recording is disabled
	var db *database.HistoryDB
	if cfg.SaveHistory {
		var err error
		db, err = database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		logger.Info("history database opened", "dir", cfg.DBDir)
	}

	runOne := func(ctx context.Context, startURL string) *model.Run {
		scout, err := mailscout.New(startURL, extractorOptions(cfg, logger)...)
		if err != nil {
			return &model.Run{
				StartURL:     startURL,
				StartedAt:    time.Now(),
				ErrorMessage: err.Error(),
			}
		}

		if _, _, err := scout.FindEmail(ctx); err != nil {
			// The run already carries the error message.
			logger.Error("search failed", "target", startURL, "error", err)
		}
		return scout.LastRun()
	}

	// Batch mode for multiple URLs
	if len(cfg.StartURLs) > 1 && cfg.Concurrency > 1 {
		bp := pipeline.NewBatchProcessor(runOne,
			pipeline.WithConcurrency(cfg.Concurrency),
			pipeline.WithBatchLogger(logger),
		)
		runs, err := bp.Process(ctx, cfg.StartURLs)
		if err != nil {
			return err
		}
		return outputRuns(ctx, cmd, cfg, db, logger, runs)
	}

	// Single target or sequential searching
	runs := make([]*model.Run, 0, len(cfg.StartURLs))
	for _, target := range cfg.StartURLs {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		runs = append(runs, runOne(ctx, target))
	}
	return outputRuns(ctx, cmd, cfg, db, logger, runs)
}

// extractorOptions converts the configuration into extractor options.
func extractorOptions(cfg *config.Config, logger *slog.Logger) []mailscout.Option {
	opts := []mailscout.Option{
		mailscout.WithFirstMatchOnly(cfg.FirstMatchOnly),
		mailscout.WithStrictErrors(cfg.StrictErrors),
		mailscout.WithSeparator(cfg.Separator),
		mailscout.WithTimeout(cfg.Timeout),
		mailscout.WithUserAgent(cfg.UserAgent),
		mailscout.WithLogger(logger),
	}
	if len(cfg.IgnorePatterns) > 0 {
		opts = append(opts, mailscout.WithIgnoreRules(cfg.IgnorePatterns))
	}
	if len(cfg.ContactLabels) > 0 {
		opts = append(opts, mailscout.WithContactLabels(cfg.ContactLabels))
	}
	if len(cfg.DenyEmails) > 0 {
		opts = append(opts, mailscout.WithDenyPatterns(cfg.DenyEmails))
	}
	return opts
}

// outputRuns writes results and saves them to the history database.
func outputRuns(ctx context.Context, cmd *cobra.Command, cfg *config.Config, db *database.HistoryDB, logger *slog.Logger, runs []*model.Run) error {
	writer, closer, err := newWriter(cmd, cfg)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer()
	}

	var firstErr error
	for _, run := range runs {
		if run == nil {
			continue
		}

		if _, err := writer.Write(run); err != nil {
			logger.Error("failed to write result", "target", run.StartURL, "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}

		if db != nil {
			if _, err := db.SaveRun(ctx, run); err != nil {
				logger.Error("failed to save run", "target", run.StartURL, "error", err)
			}
		}

		if run.ErrorMessage != "" && cfg.StrictErrors && firstErr == nil {
			firstErr = errors.New(run.ErrorMessage)
		}
	}

	return firstErr
}

// newWriter builds the result writer from the report flags. The returned
// closer, when non-nil, must be called after writing.
func newWriter(cmd *cobra.Command, cfg *config.Config) (report.Writer, func(), error) {
	output := cmd.OutOrStdout()
	var closer func()

	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create output file: %w", err)
		}
		output = f
		closer = func() { _ = f.Close() }
	}

	switch {
	case cfg.JSONReport:
		return report.NewJSONWriter(output, report.WithPrettyPrint()), closer, nil
	case cfg.MarkdownReport:
		return report.NewMarkdownWriter(output), closer, nil
	default:
		return report.NewSimpleWriter(output, report.WithVerbose(cfg.Verbose)), closer, nil
	}
}
