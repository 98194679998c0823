// Package files finds source workbooks and tracks their snapshots.
//
// Discovery lists the .xlsx files of the raw directory that start with a
// loader's prefix. Manager decides which of them still need processing by
// looking for <stem>.parquet in the processed directory, and removes
// snapshots when a source must be reprocessed.
//
// Example usage:
//
//	discovery := files.NewDiscovery(paths.WorkingDir)
//	sources, err := discovery.FindSourceFiles(paths.RawDir, "LISTAGEM CADASTRO")
//
//	manager := files.NewManager(paths, logger)
//	for _, f := range manager.Pending(sources) {
//	    // process f
//	}
package files
