package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strings"
)

// DefaultBufferSize is the bufio size used by NewReader and NewWriter.
const DefaultBufferSize = BUFFER_SIZE

// Reader is the buffered PrimitiveReader. It keeps the first error it meets
// and turns every later read into a no-op.
type Reader struct {
	r     io.Reader
	count int64 // bytes consumed
	size  int64 // input length at construction, -1 if unknown
	err   error
	order binary.ByteOrder

	scratch [4]byte
}

var (
	_ PrimitiveReader = (*Reader)(nil)
	_ Remainer        = (*Reader)(nil)
)

// NewReaderSize wraps r for primitive reads. In-memory sources are read in
// place; a caller's bufio.Reader is reused if it is at least size bytes;
// anything else gets its own bufio.Reader of the given size.
func NewReaderSize(r io.Reader, size int) (*Reader, error) {
	if r == nil {
		return nil, ErrNilIO
	}

	rd := &Reader{r: r, size: -1, order: Order}
	switch src := r.(type) {
	case *bytes.Reader:
		rd.size = int64(src.Len())
	case *bytes.Buffer:
		rd.size = int64(src.Len())
	case *strings.Reader:
		rd.size = int64(src.Len())
	case *bufio.Reader:
		if src.Size() < size {
			return nil, ErrAlreadyBuffered
		}
	default:
		if size < 16 {
			return nil, ErrSizeTooSmall
		}
		rd.size = streamLength(r)
		rd.r = bufio.NewReaderSize(r, size)
	}
	return rd, nil
}

// NewReader creates a Reader with DefaultBufferSize.
func NewReader(r io.Reader) (*Reader, error) {
	return NewReaderSize(r, DefaultBufferSize)
}

// streamLength reports how many bytes a seekable source holds past its
// current offset, or -1 when it cannot tell. The offset is restored.
func streamLength(r io.Reader) int64 {
	s, ok := r.(io.Seeker)
	if !ok {
		return -1
	}
	cur, err := s.Seek(0, io.SeekCurrent)
	if err != nil {
		return -1
	}
	end, err := s.Seek(0, io.SeekEnd)
	if err != nil {
		return -1
	}
	if _, err := s.Seek(cur, io.SeekStart); err != nil {
		return -1
	}
	return end - cur
}

// WithByteOrder overrides Order for this reader.
func (r *Reader) WithByteOrder(order binary.ByteOrder) *Reader {
	r.order = order
	return r
}

func (r *Reader) Count() int64 { return r.count }
func (r *Reader) Err() error   { return r.err }

// Remaining reports how many unread bytes the source still holds, if its
// length was known when the Reader was built.
func (r *Reader) Remaining() (int64, bool) {
	if r.size < 0 {
		return 0, false
	}
	return max(r.size-r.count, 0), true
}

// fail records a failed read. Running out of input is reported as
// ErrTruncatedInput so callers need not tell EOF flavours apart.
func (r *Reader) fail(want int64, err error) {
	if r.err != nil || err == nil {
		return
	}
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = fmt.Errorf("%w: wanted %d bytes at offset %d: %w", ErrTruncatedInput, want, r.count, io.ErrUnexpectedEOF)
	}
	r.err = err
}

func (r *Reader) fill(buf []byte) bool {
	n, err := io.ReadFull(r.r, buf)
	r.count += int64(n)
	if err != nil {
		r.fail(int64(len(buf)), err)
		return false
	}
	return true
}

// word reads n <= 4 bytes into the scratch buffer.
func (r *Reader) word(n int) []byte {
	if r.err != nil || !r.fill(r.scratch[:n]) {
		return nil
	}
	return r.scratch[:n]
}

// ReadBytes returns exactly n freshly allocated bytes, or nil on failure.
func (r *Reader) ReadBytes(n int) []byte {
	if n <= 0 || r.err != nil {
		return nil
	}
	buf := make([]byte, n)
	if !r.fill(buf) {
		return nil
	}
	return buf
}

// Skip discards n bytes of padding or reserved data.
func (r *Reader) Skip(n int64) {
	if r.err != nil || n <= 0 {
		return
	}
	skipped, err := Discard(r.r, n)
	r.count += skipped
	r.fail(n, err)
}

func (r *Reader) ReadUint16(dest *uint16) {
	if b := r.word(2); b != nil {
		*dest = r.order.Uint16(b)
	}
}

func (r *Reader) ReadUint32(dest *uint32) {
	if b := r.word(4); b != nil {
		*dest = r.order.Uint32(b)
	}
}

func (r *Reader) ReadInt32(dest *int32) {
	if b := r.word(4); b != nil {
		*dest = int32(r.order.Uint32(b))
	}
}

func (r *Reader) ReadFloat32(dest *float32) {
	if b := r.word(4); b != nil {
		*dest = math.Float32frombits(r.order.Uint32(b))
	}
}
