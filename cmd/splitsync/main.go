package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/iho/splitsync/internal/adapter/cli"
	"github.com/iho/splitsync/internal/adapter/splitwise"
	"github.com/iho/splitsync/internal/adapter/ynab"
	"github.com/iho/splitsync/internal/domain"
	"github.com/iho/splitsync/internal/infrastructure/config"
	"github.com/iho/splitsync/internal/infrastructure/logger"
	"github.com/iho/splitsync/internal/usecase"
)

var (
	startDate  string
	dryRun     bool
	skipFilter bool
	assumeYes  bool
	logLevel   string
	logFormat  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "splitsync",
		Short: "Import your share of Splitwise expenses into YNAB",
		Long: `splitsync fetches shared expenses from Splitwise, derives your net
share of each one, and imports the result into a YNAB account as
uncleared transactions. Expenses already present in the account are
recognized by their import id and skipped, so re-running is safe.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}

	rootCmd.Flags().StringVar(&startDate, "start-date", "", "Import expenses on or after this date (YYYY-MM-DD); prompted when omitted")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Run every stage except the final import")
	rootCmd.Flags().BoolVar(&skipFilter, "skip-filter", false, "Import all candidates without the interactive filter")
	rootCmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFormat, "log-format", "", "Log format: console, json")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// A missing .env file is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFormat != "" {
		cfg.LogFormat = logFormat
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	if err := cfg.Validate(); err != nil {
		return err
	}

	stdin := bufio.NewReader(os.Stdin)
	since, err := resolveStartDate(stdin, startDate)
	if err != nil {
		return err
	}

	source := splitwise.NewClient(cfg.SplitwiseAPIURL, cfg.SplitwiseAPIKey, cfg.HTTPTimeout, log)
	sink := ynab.NewClient(cfg.YNABAPIURL, cfg.YNABAccessToken, cfg.YNABBudgetID, cfg.HTTPTimeout, log)

	selector := cli.NewSelector(stdin, os.Stdout)
	selector.AssumeYes = assumeYes

	uc := usecase.NewSyncUseCase(source, sink, selector, log)
	summary, err := uc.Run(ctx, usecase.SyncInput{
		StartDate:   since,
		AccountName: cfg.YNABAccountName,
		DryRun:      dryRun,
		SkipFilter:  skipFilter,
	})
	if summary != nil {
		cli.WriteSummary(os.Stdout, summary)
	}
	return err
}

// resolveStartDate parses the --start-date flag, prompting on stdin when the
// flag was omitted.
func resolveStartDate(in *bufio.Reader, flag string) (time.Time, error) {
	raw := strings.TrimSpace(flag)
	if raw == "" {
		fmt.Print("Import expenses starting from (YYYY-MM-DD): ")
		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			return time.Time{}, fmt.Errorf("%w: no date provided", domain.ErrInvalidStartDate)
		}
		raw = strings.TrimSpace(line)
	}

	since, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a YYYY-MM-DD date", domain.ErrInvalidStartDate, raw)
	}
	if since.After(time.Now().UTC()) {
		return time.Time{}, fmt.Errorf("%w: %s is in the future", domain.ErrInvalidStartDate, raw)
	}
	return since, nil
}
