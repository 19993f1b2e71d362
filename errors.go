package codec

import "errors"

var (
	// ErrNilIO indicates that NewReader/NewWriter was called with a nil source or sink.
	ErrNilIO = errors.New("codec: NewReader/NewWriter called with a nil io.Reader/io.Writer")

	// ErrSizeTooSmall indicates a buffer size below what bufio accepts.
	ErrSizeTooSmall = errors.New("codec: buffer size smaller than 16 conflicts with bufio")

	// ErrAlreadyBuffered indicates that the caller passed a bufio reader or writer
	// smaller than the requested buffer; wrapping it again would double-buffer.
	ErrAlreadyBuffered = errors.New("codec: reader or writer is already buffered")

	// ErrDiscardNegative indicates a Discard with a negative byte count.
	ErrDiscardNegative = errors.New("codec: cannot discard negative number of bytes")

	// ErrTrailingData is returned by UnmarshalBinary when non-zero bytes follow
	// the decoded value.
	ErrTrailingData = errors.New("codec: non-zero trailing data found after decoding")

	// ErrTruncatedInput indicates that the source ended before all declared
	// content was consumed.
	ErrTruncatedInput = errors.New("codec: truncated input")

	// ErrUnknownVariant indicates a discriminator value that selects no known record shape.
	ErrUnknownVariant = errors.New("codec: unknown variant")

	// ErrCorruptCount indicates a declared element count that is negative, exceeds
	// the configured limit, or cannot fit in the remaining input.
	ErrCorruptCount = errors.New("codec: corrupt element count")

	// ErrWrite wraps any failure reported by the underlying sink.
	ErrWrite = errors.New("codec: write failed")
)
