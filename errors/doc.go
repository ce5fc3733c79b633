// Package errors provides structured error types for the png-codec library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type includes codec context: the chunk type tag, the
// header field, and the expected/actual values, plus a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseValidate, errors.KindUnsupportedHeader).
//		Field("bit_depth").
//		Want(8).
//		Got(16).
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.ChecksumMismatch("IDAT", length, want, got)
//	err := errors.UnknownFilter(row, tag)
//
// All errors implement the standard error interface and support errors.Is/As.
// Two *Error values match under errors.Is when their Phase and Kind agree,
// so callers can classify failures without string matching:
//
//	if errors.Is(err, &errors.Error{Phase: errors.PhaseParse, Kind: errors.KindChecksumMismatch}) {
//		// corrupted chunk
//	}
package errors
