package vidsz

import "errors"

var (
	// ErrSourceUnavailable indicates a backend handle could not be opened
	// for the requested source or sink.
	ErrSourceUnavailable = errors.New("source is not available")

	// ErrUnsupportedFormat indicates an output extension with no codec
	// mapping.
	ErrUnsupportedFormat = errors.New("unsupported output format")

	// ErrMissingTarget indicates a writer was constructed with neither a
	// source reader nor an explicit output name.
	ErrMissingTarget = errors.New("writer requires a source reader or an output name")

	// ErrWriterClosed indicates a write after the sink was released or
	// failed to open.
	ErrWriterClosed = errors.New("writer is not open")

	// ErrInvalidBatchSize indicates a non-positive batch size.
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)
