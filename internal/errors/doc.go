// Package errors classifies the failures of the data-preparation jobs.
//
// Every failure a job reports is an *AppError carrying an ErrorType:
//
//	MALFORMED_INPUT    the spreadsheet does not have the expected shape
//	UNPARSEABLE_VALUE  a cell value matched none of the normalization rules
//	STORAGE            a snapshot or report could not be read or written
//	NOT_FOUND          an explicitly requested input does not exist
//	CONFIG             configuration could not be loaded
//
// AppError implements slog.LogValuer so it can be logged as a structured group.
package errors
