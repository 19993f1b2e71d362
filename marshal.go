package codec

import (
	"bytes"
	"fmt"
	"io"
)

// BytesWriter writes into a caller-supplied slice and never grows it. A write
// that does not fit stores what it can and reports io.ErrShortWrite.
type BytesWriter struct {
	B []byte // destination
	N int    // bytes written
}

func NewBytesWriter(p []byte) *BytesWriter {
	return &BytesWriter{B: p}
}

func (w *BytesWriter) Write(p []byte) (int, error) {
	n := copy(w.B[w.N:], p)
	w.N += n
	if n < len(p) {
		return n, io.ErrShortWrite
	}
	return n, nil
}

func (w *BytesWriter) Reset()        { w.N = 0 }
func (w *BytesWriter) Bytes() []byte { return w.B[:w.N] }

type sizedWriterTo interface {
	Sizer
	io.WriterTo
}

// MarshalBinary encodes v into a new slice of exactly v.Size() bytes.
func MarshalBinary(v sizedWriterTo) ([]byte, error) {
	buf := make([]byte, v.Size())
	n, err := MarshalTo(v, buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

// MarshalTo encodes v into the front of p. It fails with io.ErrShortBuffer
// if p is smaller than v.Size(), and with ErrWrite if v writes a different
// number of bytes than it reports.
func MarshalTo(v sizedWriterTo, p []byte) (int, error) {
	size := v.Size()
	if len(p) < size {
		return 0, io.ErrShortBuffer
	}
	n, err := v.WriteTo(NewBytesWriter(p[:size:size]))
	if err != nil {
		return int(n), err
	}
	if n != int64(size) {
		return int(n), fmt.Errorf("%w: wrote %d of %d bytes: %w", ErrWrite, n, size, io.ErrShortWrite)
	}
	return int(n), nil
}

// UnmarshalBinary decodes data with v.ReadFrom. Anything after the decoded
// value must be zero padding.
func UnmarshalBinary(v io.ReaderFrom, data []byte) error {
	n, err := v.ReadFrom(bytes.NewReader(data))
	if err != nil {
		return err
	}
	return CheckBufferNotZeros(data[n:])
}
