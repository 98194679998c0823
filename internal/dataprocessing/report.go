package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"go.opentelemetry.io/otel/attribute"

	"empresascli/internal/config"
	apperrors "empresascli/internal/errors"
	"empresascli/internal/exporter"
	"empresascli/internal/infrastructure"
	"empresascli/internal/table"
	"empresascli/pkg/contracts/domain"
)

const reportJob = "report"

// SnapshotReader loads a table from a path
type SnapshotReader interface {
	Read(ctx context.Context, path string) (*table.Table, error)
}

// NewReportRequest fills the defaults of a report run: today's summary
// snapshot, the identity analysis, xlsx output and the dated report path.
func NewReportRequest(paths *config.Paths, now time.Time, snapshotPath, analysis string, format domain.ReportFormat, output string) domain.ReportRequest {
	if snapshotPath == "" {
		snapshotPath = paths.GetSummarySnapshotPath(now)
	}
	if analysis == "" {
		analysis = DefaultAnalysis
	}
	if format == "" {
		format = domain.ReportFormatXLSX
	}
	if output == "" {
		output = paths.GetReportPath(now, format.Ext())
	}
	return domain.ReportRequest{
		SnapshotPath: snapshotPath,
		Analysis:     analysis,
		Format:       format,
		OutputPath:   output,
	}
}

// ReportGenerator runs the report job: load one snapshot, apply an analysis
// and export the result.
type ReportGenerator struct {
	analyses  *AnalysisRegistry
	store     SnapshotReader
	telemetry *infrastructure.Telemetry
	logger    *slog.Logger
	validate  *validator.Validate
}

// NewReportGenerator creates a report generator. A nil registry uses the
// built-in analyses.
func NewReportGenerator(analyses *AnalysisRegistry, store SnapshotReader, tel *infrastructure.Telemetry, logger *slog.Logger) *ReportGenerator {
	if analyses == nil {
		analyses = DefaultAnalyses()
	}
	if tel == nil {
		tel = &infrastructure.Telemetry{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportGenerator{
		analyses:  analyses,
		store:     store,
		telemetry: tel,
		logger:    infrastructure.WithComponent(logger, reportJob),
		validate:  validator.New(),
	}
}

// Generate writes the report described by req and returns the report table
func (g *ReportGenerator) Generate(ctx context.Context, req domain.ReportRequest) (report *table.Table, err error) {
	start := time.Now()
	ctx, span := g.telemetry.StartSpan(ctx, "job."+reportJob,
		attribute.String("analysis", req.Analysis),
		attribute.String("format", string(req.Format)))
	defer func() {
		infrastructure.EndSpan(span, err)
		status := domain.FileStatusProcessed
		rows := 0
		if err != nil {
			status = domain.FileStatusFailed
		} else {
			rows = report.NumRows()
		}
		g.telemetry.Metrics.RecordFile(ctx, reportJob, string(status), rows, time.Since(start))
	}()

	if err := g.validate.Struct(req); err != nil {
		return nil, apperrors.NewConfigError("invalid report request", err)
	}

	analysis, err := g.analyses.Get(req.Analysis)
	if err != nil {
		return nil, err
	}

	writer, err := exporter.New(req.Format, g.logger)
	if err != nil {
		return nil, apperrors.NewConfigError("invalid report format", err)
	}

	g.logger.InfoContext(ctx, "Loading snapshot", slog.String("snapshot", req.SnapshotPath))
	snap, err := g.store.Read(ctx, req.SnapshotPath)
	if err != nil {
		return nil, err
	}

	report, err = analysis.Apply(ctx, snap)
	if err != nil {
		return nil, apperrors.Annotate(err, "analysis", req.Analysis)
	}

	if err := writer.WriteTable(req.OutputPath, report); err != nil {
		return nil, apperrors.NewStorageError("failed to write report", err).
			WithContext("path", req.OutputPath)
	}

	g.logger.InfoContext(ctx, "Report written",
		slog.String("analysis", analysis.Name()),
		slog.String("output", req.OutputPath),
		slog.Int("rows", report.NumRows()),
		slog.Int("snapshot_rows", snap.NumRows()),
		slog.Duration("duration", time.Since(start)))
	return report, nil
}
