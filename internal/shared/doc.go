// Package shared holds code used across packages that belongs to no single
// job. The testutil subpackage provides test helpers:
//
//   - CaptureHandler: an slog.Handler recording every record for assertions
//   - WriteWorkbook: builds an xlsx source file from rows of cell values
//
// Only test files import testutil.
package shared
