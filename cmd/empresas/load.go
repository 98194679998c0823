package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"empresascli/internal/dataprocessing"
	"empresascli/pkg/contracts/domain"
)

func newCommercialCmd(g *globalOptions) *cobra.Command {
	var opts dataprocessing.LoaderOptions

	cmd := &cobra.Command{
		Use:   "ccm",
		Short: "Normalize municipal commercial registry listings (LISTAGEM CADASTRO*.xlsx)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoader(cmd.Context(), g, domain.RegistryCommercial, opts)
		},
	}
	addLoaderFlags(cmd, &opts, "worksheet to read (default: sources.ccm_sheet, FINAL)")
	return cmd
}

func newFederalCmd(g *globalOptions) *cobra.Command {
	var opts dataprocessing.LoaderOptions

	cmd := &cobra.Command{
		Use:   "rfb",
		Short: "Normalize federal tax registry extracts (CNPJ DE MOGI*.xlsx)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLoader(cmd.Context(), g, domain.RegistryFederal, opts)
		},
	}
	addLoaderFlags(cmd, &opts, "worksheet to read (default: first sheet)")
	return cmd
}

func addLoaderFlags(cmd *cobra.Command, opts *dataprocessing.LoaderOptions, sheetUsage string) {
	cmd.Flags().BoolVar(&opts.Reprocess, "reprocess", false, "delete existing snapshots and process every source again")
	cmd.Flags().StringVar(&opts.Sheet, "sheet", "", sheetUsage)
	cmd.Flags().BoolVar(&opts.FailFast, "fail-fast", false, "stop at the first source that fails instead of continuing with the rest")
}

func runLoader(ctx context.Context, g *globalOptions, registry domain.Registry, opts dataprocessing.LoaderOptions) error {
	a, ctx, err := setup(ctx, g, string(registry))
	if err != nil {
		return err
	}
	defer a.close()

	prefix := a.cfg.Sources.RFBPrefix
	if registry == domain.RegistryCommercial {
		prefix = a.cfg.Sources.CCMPrefix
	}
	if err := a.validator.ValidateInputDirectory(a.paths.RawDir, prefix); err != nil {
		return err
	}

	var loader *dataprocessing.Loader
	switch registry {
	case domain.RegistryCommercial:
		loader = dataprocessing.NewCommercialLoader(a.cfg.Sources, a.paths, a.store, a.telemetry, a.logger, opts)
	default:
		loader = dataprocessing.NewFederalLoader(a.cfg.Sources, a.paths, a.store, a.telemetry, a.logger, opts)
	}

	summary, err := loader.Run(ctx)
	for _, r := range summary.Results {
		if r.Status == domain.FileStatusFailed {
			a.logger.ErrorContext(ctx, "Source not processed",
				slog.String("file", r.Source),
				slog.Any("error", r.Err))
		}
	}
	return err
}
