package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"empresascli/internal/config"
	apperrors "empresascli/internal/errors"
	"empresascli/internal/files"
	"empresascli/internal/infrastructure"
	"empresascli/internal/table"
	"empresascli/pkg/contracts/domain"
)

// duplicateSampleSize bounds the duplicate tax IDs echoed in the log
const duplicateSampleSize = 10

// Loader runs one registry job: it finds the pending source workbooks,
// normalizes each one and writes its snapshots. A failing file is logged and
// skipped; the remaining files are still processed.
type Loader struct {
	registry  domain.Registry
	prefix    string
	opts      LoaderOptions
	paths     *config.Paths
	discovery *files.Discovery
	manager   *files.Manager
	store     SnapshotWriter
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger

	process func(ctx context.Context, f files.FileInfo, result *domain.FileResult) error
}

// NewCommercialLoader creates the loader for the municipal commercial registry
func NewCommercialLoader(sources config.SourcesConfig, paths *config.Paths, store SnapshotWriter, tel *infrastructure.Telemetry, logger *slog.Logger, opts LoaderOptions) *Loader {
	if opts.Sheet == "" {
		opts.Sheet = sources.CCMSheet
	}
	l := newLoader(domain.RegistryCommercial, sources.CCMPrefix, paths, store, tel, logger, opts)
	l.process = l.processCommercial
	return l
}

// NewFederalLoader creates the loader for the federal tax registry extract
func NewFederalLoader(sources config.SourcesConfig, paths *config.Paths, store SnapshotWriter, tel *infrastructure.Telemetry, logger *slog.Logger, opts LoaderOptions) *Loader {
	l := newLoader(domain.RegistryFederal, sources.RFBPrefix, paths, store, tel, logger, opts)
	l.process = l.processFederal
	return l
}

func newLoader(registry domain.Registry, prefix string, paths *config.Paths, store SnapshotWriter, tel *infrastructure.Telemetry, logger *slog.Logger, opts LoaderOptions) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	if tel == nil {
		tel = &infrastructure.Telemetry{}
	}
	logger = infrastructure.WithComponent(logger, string(registry))
	return &Loader{
		registry:  registry,
		prefix:    prefix,
		opts:      opts,
		paths:     paths,
		discovery: files.NewDiscovery(paths.WorkingDir),
		manager:   files.NewManager(paths, logger),
		store:     store,
		telemetry: tel,
		logger:    logger,
	}
}

// Run processes every pending source file. The returned error is non-nil
// when discovery fails, the context is cancelled, or at least one file failed.
// With FailFast the run stops at the first failure and returns its error.
func (l *Loader) Run(ctx context.Context) (domain.JobSummary, error) {
	summary := domain.JobSummary{
		Registry:  l.registry,
		TraceID:   infrastructure.GetTraceID(ctx),
		StartedAt: time.Now(),
	}

	ctx, span := l.telemetry.StartSpan(ctx, "job."+string(l.registry),
		attribute.String("prefix", l.prefix),
		attribute.Bool("reprocess", l.opts.Reprocess))
	var runErr error
	defer func() { infrastructure.EndSpan(span, runErr) }()

	sources, err := l.discovery.FindSourceFiles(l.paths.RawDir, l.prefix)
	if err != nil {
		runErr = apperrors.NewAppError(apperrors.ErrTypeNotFound, "raw directory not readable", err).
			WithContext("path", l.paths.RawDir)
		return summary, runErr
	}

	if l.opts.Reprocess {
		for _, f := range sources {
			if err := l.manager.RemoveSnapshots(f.Stem); err != nil {
				runErr = apperrors.NewStorageError("failed to remove snapshot for reprocessing", err)
				return summary, runErr
			}
		}
	}

	pending := l.manager.Pending(sources)
	for _, f := range sources {
		if !containsFile(pending, f) {
			summary.Results = append(summary.Results, domain.FileResult{
				Source: f.Name, Stem: f.Stem, Status: domain.FileStatusSkipped,
			})
			l.telemetry.Metrics.RecordFile(ctx, string(l.registry), string(domain.FileStatusSkipped), 0, 0)
		}
	}

	l.logger.InfoContext(ctx, "Source files discovered",
		slog.String("prefix", l.prefix),
		slog.Int("found", len(sources)),
		slog.Int("pending", len(pending)))

	for _, f := range pending {
		if err := ctx.Err(); err != nil {
			l.logger.WarnContext(ctx, "Run interrupted", slog.String("next_file", f.Name))
			runErr = err
			return summary, runErr
		}
		result := l.processFile(ctx, f)
		summary.Results = append(summary.Results, result)
		if result.Status == domain.FileStatusFailed && l.opts.FailFast {
			l.logger.WarnContext(ctx, "Run aborted after failed file", slog.String("file", f.Name))
			runErr = result.Err
			return summary, runErr
		}
	}

	failed := summary.Count(domain.FileStatusFailed)
	l.logger.InfoContext(ctx, "Run complete",
		slog.Int("processed", summary.Count(domain.FileStatusProcessed)),
		slog.Int("skipped", summary.Count(domain.FileStatusSkipped)),
		slog.Int("failed", failed),
		slog.Duration("duration", time.Since(summary.StartedAt)))

	if failed > 0 {
		runErr = fmt.Errorf("%d of %d %s files failed", failed, len(pending), l.registry)
	}
	return summary, runErr
}

func (l *Loader) processFile(ctx context.Context, f files.FileInfo) domain.FileResult {
	start := time.Now()
	result := domain.FileResult{Source: f.Name, Stem: f.Stem}

	ctx, span := l.telemetry.StartSpan(ctx, string(l.registry)+".file",
		attribute.String("file", f.Name),
		attribute.Int64("size_bytes", f.Size))

	l.logger.InfoContext(ctx, "Processing file", slog.String("file", f.Name))

	err := l.process(ctx, f, &result)
	result.Duration = time.Since(start)
	if err != nil {
		err = apperrors.Annotate(err, "file", f.Name)
		result.Status = domain.FileStatusFailed
		result.Err = err
		infrastructure.WithError(l.logger, err).ErrorContext(ctx, "File failed",
			slog.String("file", f.Name))
	} else {
		result.Status = domain.FileStatusProcessed
		span.SetAttributes(attribute.Int("rows", result.Rows))
		l.logger.InfoContext(ctx, "File processed",
			slog.String("file", f.Name),
			slog.Int("rows", result.Rows),
			slog.Duration("duration", result.Duration))
	}
	infrastructure.EndSpan(span, err)

	l.telemetry.Metrics.RecordFile(ctx, string(l.registry), string(result.Status), result.Rows, result.Duration)
	return result
}

func (l *Loader) processCommercial(ctx context.Context, f files.FileInfo, result *domain.FileResult) error {
	t, err := ReadSheet(f.Path, l.opts.Sheet, l.logger)
	if err != nil {
		return err
	}
	if err := NormalizeCommercial(t); err != nil {
		return err
	}

	if dups := DuplicateValues(t, ColTaxID); len(dups) > 0 {
		l.logger.WarnContext(ctx, "Duplicate tax IDs",
			slog.String("file", f.Name),
			slog.Int("count", len(dups)),
			slog.Any("sample", sampleKeys(dups, duplicateSampleSize)))
	}

	codes := ExtractActivityCodes(t)
	l.telemetry.Metrics.RecordActivityCodes(ctx, len(codes))

	// The main snapshot marks the source as processed, so it is written last.
	if err := l.store.Write(ctx, l.paths.GetActivityCodeSnapshotPath(f.Stem), ActivityCodeTable(codes)); err != nil {
		return err
	}
	if err := l.store.Write(ctx, l.paths.GetSnapshotPath(f.Stem), t); err != nil {
		return err
	}

	result.Rows = t.NumRows()
	result.ActivityCodes = len(codes)
	return nil
}

func (l *Loader) processFederal(ctx context.Context, f files.FileInfo, result *domain.FileResult) error {
	t, err := ReadSheet(f.Path, l.opts.Sheet, l.logger)
	if err != nil {
		return err
	}
	if err := NormalizeFederal(t); err != nil {
		return err
	}

	if residues := NonDigitResidues(t, ColStreetNumber); len(residues) > 0 {
		l.logger.DebugContext(ctx, "Street number residues",
			slog.String("file", f.Name),
			slog.Any("residues", residues))
	}
	if n := countContaining(t, ColCompanyName, "BANCO DO BRASIL"); n > 0 {
		l.logger.DebugContext(ctx, "Banco do Brasil branches", slog.String("file", f.Name), slog.Int("rows", n))
	}

	if err := l.store.Write(ctx, l.paths.GetSnapshotPath(f.Stem), t); err != nil {
		return err
	}

	result.Rows = t.NumRows()
	return nil
}

func countContaining(t *table.Table, column, substr string) int {
	c, ok := t.Column(column)
	if !ok {
		return 0
	}
	n := 0
	for i := 0; i < c.Len(); i++ {
		if v := c.Value(i); v.Valid && strings.Contains(v.Str, substr) {
			n++
		}
	}
	return n
}

func containsFile(list []files.FileInfo, f files.FileInfo) bool {
	for _, x := range list {
		if x.Path == f.Path {
			return true
		}
	}
	return false
}
