// Package errors provides structured error types for the hdf5-ext library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error category).
// The Error type includes rich context: table name, memory/file type names, and cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRead, errors.KindOutOfBounds).
//		Table("measurements").
//		Detail("read past end of table").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.OutOfBounds(errors.PhaseRead, 10, 5, 12)
//	err := errors.Configuration("either plist or chunk need to be set")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
