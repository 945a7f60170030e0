// Package main provides the CLI entry point for sheetcharts.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dibaltzis/sheetcharts-go/pkg/sheetcharts/config"
)

var (
	configPath    string
	sourcePath    string
	sheetName     string
	mode          string
	spreadsheetID string
	credentials   string
	inventoryPath string
	batchPath     string
	metricsFile   string
	pretty        bool
	verbose       bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetcharts",
		Short: "Keep date and metric charts in sync with a spreadsheet",
		Long: `sheetcharts reads a date + metric grid and creates or updates either one chart
over the whole data span or one chart per calendar week, matching existing
charts by title.`,
		SilenceUsage: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "sheetcharts.toml", "Config file path")
	pf.StringVar(&sourcePath, "source", "", "Local .xlsx, .xls or .csv source (default: remote spreadsheet)")
	pf.StringVar(&sheetName, "sheet", "", "Source sheet name")
	pf.StringVar(&spreadsheetID, "spreadsheet", "", "Remote spreadsheet id")
	pf.StringVar(&credentials, "credentials", "", "Service account key file")
	pf.StringVar(&inventoryPath, "inventory", "", "Record charts in a local inventory file instead of a workbook or spreadsheet")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Debug logging")

	syncCmd := &cobra.Command{
		Use:   "sync",
		Short: "Create or update the configured charts",
		Args:  cobra.NoArgs,
		RunE:  runSync,
	}
	syncCmd.Flags().StringVar(&mode, "mode", "", "Chart mode: whole or weekly")
	syncCmd.Flags().StringVar(&batchPath, "batch", "", "Write submitted requests as a batchUpdate body (with --inventory)")
	syncCmd.Flags().StringVar(&metricsFile, "metrics-textfile", "", "Write run metrics in Prometheus text format")

	normalizeCmd := &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite dd/mm/yy dates and decimal-comma metrics in the source sheet",
		Args:  cobra.NoArgs,
		RunE:  runNormalize,
	}

	inventoryCmd := &cobra.Command{
		Use:   "inventory",
		Short: "List existing charts as JSON",
		Args:  cobra.NoArgs,
		RunE:  runInventory,
	}

	rootCmd.AddCommand(syncCmd, normalizeCmd, inventoryCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads the configuration, applies flag overrides and builds the run logger.
func setup(cmd *cobra.Command) (context.Context, context.CancelFunc, *config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("source") {
		cfg.Source.Path = sourcePath
	}
	if flags.Changed("sheet") {
		cfg.Source.Sheet = sheetName
	}
	if flags.Changed("spreadsheet") {
		cfg.Remote.SpreadsheetID = spreadsheetID
	}
	if flags.Changed("credentials") {
		cfg.Remote.Credentials = credentials
	}
	if flags.Changed("inventory") {
		cfg.Output.InventoryPath = inventoryPath
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = pretty
	}
	if flags.Changed("mode") {
		cfg.Chart.Mode = mode
	}
	if flags.Changed("batch") {
		cfg.Output.BatchPath = batchPath
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = metricsFile
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, nil, fmt.Errorf("invalid config: %w", err)
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
		With("run_id", uuid.NewString(), "command", cmd.Name())

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	return ctx, cancel, cfg, logger, nil
}
