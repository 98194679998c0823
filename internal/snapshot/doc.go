// Package snapshot persists tables as Parquet files using an embedded,
// in-memory DuckDB. A table is staged in DuckDB and written with
// COPY ... (FORMAT PARQUET); snapshots are read back with read_parquet.
//
// Snapshots are immutable: the loaders only write a snapshot when none exists
// for the source stem.
package snapshot
