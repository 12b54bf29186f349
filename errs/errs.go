// Package errs holds the sentinel errors shared by all fitskit packages.
//
// Errors are returned wrapped with context, use errors.Is to classify them:
//
//	if errors.Is(err, errs.ErrTable) {
//	    // contract violation on a table mutation
//	}
package errs

import "errors"

var (
	// ErrInconsistentTable reports columns and row sizes that do not describe a rectangular
	// table: mismatched counts, non-dividing row sizes, or disagreeing row counts.
	ErrInconsistentTable = errors.New("inconsistent table")

	// ErrTable reports a mutation contract violation: out of range rows or columns, or a
	// value whose kind or length does not match the target column.
	ErrTable = errors.New("table error")

	// ErrFormat reports malformed ASCII input or a value shape the codec cannot handle.
	ErrFormat = errors.New("format error")

	// ErrTruncation reports a value that could not be written within its field width.
	// The field has already been filled with the truncation fill character.
	ErrTruncation = errors.New("truncation error")

	// ErrUnsupportedKind reports a leaf element type outside the supported kinds.
	ErrUnsupportedKind = errors.New("unsupported element kind")

	// ErrRectangularArray reports a multi-dimensional Go array passed to the generic codec.
	ErrRectangularArray = errors.New("rectangular array not supported")

	// ErrNotSeekable reports a backward seek on a stream whose transport cannot seek.
	ErrNotSeekable = errors.New("stream is not seekable")

	// ErrStreamClosed reports use of a stream after Close.
	ErrStreamClosed = errors.New("stream closed")

	// ErrShortRead reports fewer elements read than the destination required.
	ErrShortRead = errors.New("short read")

	// ErrUnsupportedCompression reports an unknown compression type.
	ErrUnsupportedCompression = errors.New("unsupported compression type")

	// ErrCorruptData reports compressed input that a codec could not decode.
	ErrCorruptData = errors.New("corrupt compressed data")

	// ErrDuplicateColumn reports two columns of one table with the same name.
	ErrDuplicateColumn = errors.New("duplicate column name")

	// ErrInvalidHeader reports a FITS header without an END card.
	ErrInvalidHeader = errors.New("invalid FITS header")
)
