package codec

import (
	"encoding/binary"
	"fmt"
	"io"

	"golang.org/x/exp/constraints"
)

var (
	BE = binary.BigEndian
	LE = binary.LittleEndian
	// Order is default binary order. Fox engine assets are little-endian.
	Order binary.ByteOrder = LE
)

const BUFFER_SIZE = 4096

// empty is only ever read from, so concurrent writers may share it.
var empty [BUFFER_SIZE]byte

// Discard reads and drops exactly n bytes from r.
// A source that ends early yields io.EOF or io.ErrUnexpectedEOF.
func Discard(r io.Reader, n int64) (int64, error) {
	if n == 0 {
		return 0, nil
	}
	if n < 0 {
		return 0, ErrDiscardNegative
	}
	skipped, err := io.CopyN(io.Discard, r, n)
	if err == io.EOF && skipped > 0 {
		err = io.ErrUnexpectedEOF
	}
	return skipped, err
}

// Roundup rounds n up to the nearest multiple of align. align must be a power of two.
func Roundup[T constraints.Integer](n, align T) T { return (n + (align - 1)) &^ (align - 1) }

// MAX_PADDING defines the maximum number of trailing bytes to check.
// Anything larger is considered a format error.
const MAX_PADDING = 1024 // 1KB

// CheckBufferNotZeros verifies that trailing bytes left after decoding are all zero.
func CheckBufferNotZeros(trailing []byte) error {
	if len(trailing) > MAX_PADDING {
		return fmt.Errorf("%w: exceeds maximum expected size of %d bytes", ErrTrailingData, MAX_PADDING)
	}
	for i, b := range trailing {
		if b != 0 {
			return fmt.Errorf("%w: found non-zero byte 0x%02x at offset %d", ErrTrailingData, b, i)
		}
	}
	return nil
}
