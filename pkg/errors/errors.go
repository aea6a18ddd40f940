// Package errors carries the pipeline error taxonomy and a stack-preserving
// error tracer.
//
// Recoverable conditions (truncated input, missing source) let a stage finish
// with partial results; fatal conditions (unwritable output, malformed
// arguments) abort the current unit of work.
package errors

import (
	stderrors "errors"
)

var (
	// ErrTruncatedInput reports fewer bytes available than one fixed-size
	// unit requires. The reader stops consuming that stream and the caller
	// proceeds with the whole units already read.
	ErrTruncatedInput = stderrors.New("truncated input")

	// ErrMissingSource reports an expected input file that is absent or
	// unreadable. The source contributes zero records and the operation
	// continues with the remaining sources.
	ErrMissingSource = stderrors.New("missing source")

	// ErrOutputUnwritable reports an output path that cannot be opened,
	// created or written. Fatal to the current unit of work.
	ErrOutputUnwritable = stderrors.New("output unwritable")

	// ErrMalformedArgument reports invalid CLI input, rejected before any
	// I/O happens.
	ErrMalformedArgument = stderrors.New("malformed argument")
)

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// IsRecoverable reports whether err is one of the recoverable conditions a
// stage may absorb while still producing partial results.
func IsRecoverable(err error) bool {
	return stderrors.Is(err, ErrTruncatedInput) || stderrors.Is(err, ErrMissingSource)
}
