package dataprocessing

import (
	"context"

	"empresascli/internal/table"
)

// SnapshotWriter persists a table at a path
type SnapshotWriter interface {
	Write(ctx context.Context, path string, t *table.Table) error
}

// LoaderOptions configures a loader run
type LoaderOptions struct {
	// Reprocess deletes existing snapshots so every source is processed again
	Reprocess bool

	// Sheet selects the worksheet; empty means the first one
	Sheet string

	// FailFast stops the run at the first failed file
	FailFast bool
}
