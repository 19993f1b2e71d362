package codec

import (
	"fmt"
	"math"
)

// PrimitiveReader is the read half of the primitive I/O port: the only
// operations the asset codecs use to consume bytes. Implementations latch the
// first error; every later call is a no-op and Err keeps reporting it.
type PrimitiveReader interface {
	ReadFloat32(dest *float32)
	ReadUint16(dest *uint16)
	ReadUint32(dest *uint32)
	ReadInt32(dest *int32)
	// ReadBytes returns exactly n bytes, or nil once the port has failed.
	ReadBytes(n int) []byte
	// Skip consumes n reserved bytes without interpreting them.
	Skip(n int64)
	Err() error
}

// PrimitiveWriter is the write half of the primitive I/O port.
type PrimitiveWriter interface {
	WriteFloat32(v float32)
	WriteUint16(v uint16)
	WriteUint32(v uint32)
	WriteInt32(v int32)
	WriteBytes(b []byte)
	// WriteZeros emits n zero bytes of padding.
	WriteZeros(n int64)
	Err() error
}

// Remainer is implemented by ports that know how many unread bytes their
// backing store still holds.
type Remainer interface {
	Remaining() (int64, bool)
}

// Limits bounds what a decoder is willing to allocate for a single declared count.
type Limits struct {
	// MaxCount is the largest element count accepted for any one collection.
	MaxCount uint32
}

// DefaultLimits is used whenever a caller passes no explicit limits.
var DefaultLimits = Limits{MaxCount: 1 << 20}

// CheckCount rejects a declared element count before anything is allocated for it.
// The count must not exceed limits.MaxCount, and when r knows how much input is
// left, count elements of at least minSize bytes each must fit in it; that
// failure matches both ErrCorruptCount and ErrTruncatedInput.
func CheckCount(r PrimitiveReader, count uint32, minSize int, limits Limits) error {
	if limits.MaxCount == 0 {
		limits = DefaultLimits
	}
	if count > limits.MaxCount {
		return fmt.Errorf("%w: %d exceeds limit %d", ErrCorruptCount, count, limits.MaxCount)
	}
	rem, ok := r.(Remainer)
	if !ok || minSize <= 0 {
		return nil
	}
	left, known := rem.Remaining()
	if !known {
		return nil
	}
	if need := int64(count) * int64(minSize); need > left {
		return fmt.Errorf("%w: %w: %d elements need at least %d bytes, %d remain",
			ErrCorruptCount, ErrTruncatedInput, count, need, left)
	}
	return nil
}

// ReadCount reads an element count, stored as a signed 32-bit integer.
// A negative count is ErrCorruptCount.
func ReadCount(r PrimitiveReader) (uint32, error) {
	var n int32
	r.ReadInt32(&n)
	if err := r.Err(); err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrCorruptCount, n)
	}
	return uint32(n), nil
}

// WriteCount writes n as a signed 32-bit element count.
func WriteCount(w PrimitiveWriter, n int) error {
	if n > math.MaxInt32 {
		return fmt.Errorf("%w: %d elements do not fit an int32 count", ErrCorruptCount, n)
	}
	w.WriteInt32(int32(n))
	return w.Err()
}
