package infrastructure

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"empresascli/internal/config"
)

const (
	ServiceName = "empresas"
	MeterName   = "empresascli"
)

// Telemetry holds the tracing and metrics providers of one job run.
//
// Spans are written as JSON to the configured trace file. Metrics are kept in
// a private Prometheus registry and written once, at Shutdown, in the
// textfile-collector format.
type Telemetry struct {
	Tracer   trace.Tracer
	Meter    metric.Meter
	Metrics  *JobMetrics
	Registry *prometheus.Registry

	tracerProvider *sdktrace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	traceFile      *os.File
	metricsFile    string
	logger         *slog.Logger
}

// JobMetrics are the counters every loader and the report job update
type JobMetrics struct {
	FilesProcessed metric.Int64Counter
	RowsWritten    metric.Int64Counter
	ActivityCodes  metric.Int64Counter
	FileDuration   metric.Float64Histogram
}

// InitializeTelemetry sets up tracing and metrics for a job run.
// Tracing is a no-op unless cfg.TraceFile is set.
func InitializeTelemetry(cfg config.ObservabilityConfig, logger *slog.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = GetLogger()
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(ServiceName),
		semconv.ServiceVersion(config.AppVersion),
		semconv.DeploymentEnvironmentName(cfg.Environment),
	)

	t := &Telemetry{
		metricsFile: cfg.MetricsFile,
		logger:      logger,
	}

	if err := t.initializeTracing(cfg, res); err != nil {
		return nil, err
	}
	if err := t.initializeMetrics(res); err != nil {
		t.closeTraceFile()
		return nil, err
	}

	logger.Debug("Telemetry initialized",
		slog.Bool("tracing_enabled", t.tracerProvider != nil),
		slog.String("metrics_file", cfg.MetricsFile))

	return t, nil
}

func (t *Telemetry) initializeTracing(cfg config.ObservabilityConfig, res *resource.Resource) error {
	if cfg.TraceFile == "" {
		t.Tracer = noop.NewTracerProvider().Tracer(MeterName)
		return nil
	}

	file, err := os.OpenFile(cfg.TraceFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open trace file: %w", err)
	}

	exporter, err := stdouttrace.New(stdouttrace.WithWriter(file))
	if err != nil {
		file.Close()
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	t.traceFile = file
	t.tracerProvider = tp
	t.Tracer = tp.Tracer(MeterName, trace.WithInstrumentationVersion(config.AppVersion))
	return nil
}

func (t *Telemetry) initializeMetrics(res *resource.Resource) error {
	registry := prometheus.NewRegistry()

	exporter, err := otelprom.New(otelprom.WithRegisterer(registry))
	if err != nil {
		return fmt.Errorf("failed to create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(exporter),
	)

	t.Registry = registry
	t.meterProvider = mp
	t.Meter = mp.Meter(MeterName, metric.WithInstrumentationVersion(config.AppVersion))

	metrics, err := CreateJobMetrics(t.Meter)
	if err != nil {
		return fmt.Errorf("failed to create job metrics: %w", err)
	}
	t.Metrics = metrics
	return nil
}

// CreateJobMetrics creates the job instruments on meter
func CreateJobMetrics(meter metric.Meter) (*JobMetrics, error) {
	filesProcessed, err := meter.Int64Counter(
		"empresas_files_processed",
		metric.WithDescription("Source files handled, by job and status"),
	)
	if err != nil {
		return nil, err
	}

	rowsWritten, err := meter.Int64Counter(
		"empresas_rows_written",
		metric.WithDescription("Rows written to snapshots and reports"),
	)
	if err != nil {
		return nil, err
	}

	activityCodes, err := meter.Int64Counter(
		"empresas_activity_codes_extracted",
		metric.WithDescription("Secondary activity-code pairs extracted from commercial registry rows"),
	)
	if err != nil {
		return nil, err
	}

	fileDuration, err := meter.Float64Histogram(
		"empresas_file_duration_seconds",
		metric.WithDescription("Time spent processing one source file"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	return &JobMetrics{
		FilesProcessed: filesProcessed,
		RowsWritten:    rowsWritten,
		ActivityCodes:  activityCodes,
		FileDuration:   fileDuration,
	}, nil
}

// RecordFile records the outcome of one source file
func (m *JobMetrics) RecordFile(ctx context.Context, job, status string, rows int, duration time.Duration) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("job", job), attribute.String("status", status))
	m.FilesProcessed.Add(ctx, 1, attrs)
	m.FileDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attribute.String("job", job)))
	if rows > 0 {
		m.RowsWritten.Add(ctx, int64(rows), metric.WithAttributes(attribute.String("job", job)))
	}
}

// RecordActivityCodes adds n extracted activity-code pairs
func (m *JobMetrics) RecordActivityCodes(ctx context.Context, n int) {
	if m == nil || n == 0 {
		return
	}
	m.ActivityCodes.Add(ctx, int64(n))
}

// StartSpan starts a span on the run tracer
func (t *Telemetry) StartSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	tracer := t.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer(MeterName)
	}
	ctx, span := tracer.Start(ctx, name, trace.WithAttributes(attrs...))
	if traceID := GetTraceID(ctx); traceID != "" {
		span.SetAttributes(attribute.String("empresas.run_id", traceID))
	}
	return ctx, span
}

// EndSpan ends span, recording err when not nil
func EndSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}

// Shutdown flushes spans, writes the metrics textfile and releases files.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if t.tracerProvider != nil {
		keep(t.tracerProvider.Shutdown(ctx))
	}

	if t.metricsFile != "" && t.Registry != nil {
		if err := prometheus.WriteToTextfile(t.metricsFile, t.Registry); err != nil {
			keep(fmt.Errorf("failed to write metrics file: %w", err))
		} else {
			t.logger.Debug("Metrics written", slog.String("path", t.metricsFile))
		}
	}

	if t.meterProvider != nil {
		keep(t.meterProvider.Shutdown(ctx))
	}

	keep(t.closeTraceFile())
	return firstErr
}

func (t *Telemetry) closeTraceFile() error {
	if t.traceFile == nil {
		return nil
	}
	err := t.traceFile.Close()
	t.traceFile = nil
	return err
}
