package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"empresascli/internal/dataprocessing"
	"empresascli/pkg/contracts/domain"
)

type reportOptions struct {
	snapshot string
	analysis string
	format   string
	output   string
}

func newReportCmd(g *globalOptions) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Apply an analysis to a snapshot and export the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd.Context(), g, opts)
		},
	}

	names := strings.Join(dataprocessing.DefaultAnalyses().Names(), ", ")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "snapshot to load (default: <processed>/summary_<Mon-DD-YYYY>.parquet for today)")
	cmd.Flags().StringVar(&opts.analysis, "analysis", dataprocessing.DefaultAnalysis, "analysis to apply: "+names)
	cmd.Flags().StringVar(&opts.format, "format", string(domain.ReportFormatXLSX), "report format: xlsx or csv")
	cmd.Flags().StringVar(&opts.output, "output", "", "report path (default: <reports>/Excel_Analysis_<Mon-DD-YYYY>.<format>)")
	return cmd
}

func runReport(ctx context.Context, g *globalOptions, opts reportOptions) error {
	format, err := domain.ParseReportFormat(opts.format)
	if err != nil {
		return err
	}

	a, ctx, err := setup(ctx, g, "report")
	if err != nil {
		return err
	}
	defer a.close()

	req := dataprocessing.NewReportRequest(a.paths, time.Now(), opts.snapshot, opts.analysis, format, opts.output)
	if err := a.validator.ValidateSnapshotFile(req.SnapshotPath); err != nil {
		return err
	}
	gen := dataprocessing.NewReportGenerator(dataprocessing.DefaultAnalyses(), a.store, a.telemetry, a.logger)
	if _, err := gen.Generate(ctx, req); err != nil {
		return fmt.Errorf("report %s: %w", req.Analysis, err)
	}
	return nil
}
