package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"empresascli/internal/config"
	"empresascli/internal/infrastructure"
	"empresascli/internal/snapshot"
	"empresascli/internal/validation"
	"empresascli/pkg/contracts"
)

const shutdownTimeout = 5 * time.Second

// globalOptions are the persistent flags shared by every job
type globalOptions struct {
	configFile   string
	rawDir       string
	processedDir string
	reportsDir   string
}

func newRootCmd() *cobra.Command {
	var g globalOptions

	root := &cobra.Command{
		Use:           "empresas",
		Short:         "Company registry ETL: spreadsheets to parquet snapshots to reports",
		Version:       contracts.GetFullVersionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&g.configFile, "config", "", "YAML config file (default: config.yaml or configs/config.yaml if present)")
	root.PersistentFlags().StringVar(&g.rawDir, "raw", "", "directory holding the source spreadsheets")
	root.PersistentFlags().StringVar(&g.processedDir, "processed", "", "directory for parquet snapshots")
	root.PersistentFlags().StringVar(&g.reportsDir, "reports", "", "directory for exported reports")

	root.AddCommand(
		newCommercialCmd(&g),
		newFederalCmd(&g),
		newReportCmd(&g),
		newVersionCmd(),
	)
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(contracts.GetVersionInfo())
		},
	}
}

// app holds what every job needs once configuration is resolved
type app struct {
	cfg       *config.Config
	paths     *config.Paths
	logger    *slog.Logger
	telemetry *infrastructure.Telemetry
	store     *snapshot.Store
	validator *validation.FileValidator
}

// loadConfig reads the file and environment configuration and applies the
// directory flags on top.
func loadConfig(g *globalOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if g.configFile != "" {
		cfg, err = config.LoadFrom(g.configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	if g.rawDir != "" {
		cfg.Paths.RawDir = g.rawDir
	}
	if g.processedDir != "" {
		cfg.Paths.ProcessedDir = g.processedDir
	}
	if g.reportsDir != "" {
		cfg.Paths.ReportsDir = g.reportsDir
	}
	return cfg, nil
}

// setup prepares logging, telemetry, directories and the snapshot store.
// The returned context carries the run trace ID.
func setup(ctx context.Context, g *globalOptions, job string) (*app, context.Context, error) {
	cfg, err := loadConfig(g)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to initialize logger: %w", err)
	}

	ctx = infrastructure.EnsureTraceID(ctx)

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return nil, ctx, err
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, ctx, err
	}
	paths.LogPathResolution(logger)

	validator := validation.NewFileValidator(logger)
	for _, dir := range []string{paths.ProcessedDir, paths.ReportsDir} {
		if err := validator.ValidateOutputDirectory(dir); err != nil {
			return nil, ctx, err
		}
	}

	tel, err := infrastructure.InitializeTelemetry(cfg.Observability, logger)
	if err != nil {
		return nil, ctx, fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	store, err := snapshot.Open(logger)
	if err != nil {
		shutdownTelemetry(tel, logger)
		return nil, ctx, err
	}

	logger.InfoContext(ctx, "Starting job",
		slog.String("job", job),
		slog.String("version", contracts.Version))

	return &app{
		cfg:       cfg,
		paths:     paths,
		logger:    logger,
		telemetry: tel,
		store:     store,
		validator: validator,
	}, ctx, nil
}

func (a *app) close() {
	if err := a.store.Close(); err != nil {
		a.logger.Warn("Failed to close snapshot store", slog.String("error", err.Error()))
	}
	shutdownTelemetry(a.telemetry, a.logger)
	if err := infrastructure.CloseLogFile(); err != nil {
		a.logger.Warn("Failed to close log file", slog.String("error", err.Error()))
	}
}

// shutdownTelemetry flushes traces and metrics even when the run was cancelled
func shutdownTelemetry(tel *infrastructure.Telemetry, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := tel.Shutdown(ctx); err != nil {
		logger.Warn("Failed to shut down telemetry", slog.String("error", err.Error()))
	}
}
