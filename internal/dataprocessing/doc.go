// Package dataprocessing turns municipal company registry workbooks into
// normalized snapshots and derives reports from them.
//
// # Architecture
//
// The package is organized into three main components:
//
// 1. Parser: reads one worksheet of an xlsx workbook into a table.Table
// 2. Normalizers: NormalizeCommercial (CCM listing) and NormalizeFederal (RFB extract)
// 3. Analytics: named Analysis implementations applied to a snapshot by the report job
//
// A Loader ties them together for one registry: it discovers workbooks in the
// raw directory, skips those with an existing snapshot, normalizes the rest
// and hands each table to a SnapshotWriter.
//
// # Usage
//
//	loader := dataprocessing.NewFederalLoader(cfg.Sources, paths, store, tel, logger, dataprocessing.LoaderOptions{})
//	summary, err := loader.Run(ctx)
//
// # Data Flow
//
//	xlsx → ReadSheet → Normalize* → SnapshotWriter (parquet) → Analysis → exporter
//
// # Error Handling
//
// Errors are *errors.AppError values. Cell level failures carry the column,
// the sheet row and the offending value in their context; loader failures
// add the source file name. A failed file does not stop the run.
package dataprocessing
