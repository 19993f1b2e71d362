package codec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Writer is the buffered PrimitiveWriter. The first failure is kept, wrapped
// in ErrWrite, and every later write becomes a no-op.
type Writer struct {
	w     io.Writer
	buf   *bufio.Writer // owned buffer, nil when writing straight through
	count int64         // bytes accepted
	err   error
	order binary.ByteOrder

	scratch [4]byte
}

var _ PrimitiveWriter = (*Writer)(nil)

// NewWriterSize wraps w for primitive writes. In-memory sinks are written in
// place and a caller's bufio.Writer of at least size bytes is reused (the
// caller flushes it); any other sink gets an owned bufio.Writer.
func NewWriterSize(w io.Writer, size int) (*Writer, error) {
	if w == nil {
		return nil, ErrNilIO
	}

	wr := &Writer{w: w, order: Order}
	switch dst := w.(type) {
	case *bytes.Buffer, *BytesWriter:
	case *bufio.Writer:
		if dst.Size() < size {
			return nil, ErrAlreadyBuffered
		}
	default:
		wr.buf = bufio.NewWriterSize(w, size)
		wr.w = wr.buf
	}
	return wr, nil
}

// NewWriter creates a Writer with DefaultBufferSize.
func NewWriter(w io.Writer) (*Writer, error) {
	return NewWriterSize(w, DefaultBufferSize)
}

// WithByteOrder overrides Order for this writer.
func (w *Writer) WithByteOrder(order binary.ByteOrder) *Writer {
	w.order = order
	return w
}

func (w *Writer) Count() int64 { return w.count }
func (w *Writer) Err() error   { return w.err }

func (w *Writer) setError(err error) {
	if w.err == nil && err != nil {
		w.err = fmt.Errorf("%w: %w", ErrWrite, err)
	}
}

func (w *Writer) write(p []byte) {
	if w.err != nil {
		return
	}
	n, err := w.w.Write(p)
	w.count += int64(n)
	w.setError(err)
}

// Flush pushes the owned buffer, if any, to the sink.
func (w *Writer) Flush() error {
	if w.buf != nil && w.err == nil {
		w.setError(w.buf.Flush())
	}
	return w.err
}

// Result flushes and returns the byte count and final error state.
func (w *Writer) Result() (int64, error) {
	err := w.Flush()
	return w.count, err
}

func (w *Writer) WriteBytes(p []byte) {
	if len(p) > 0 {
		w.write(p)
	}
}

// WriteZeros writes n zero bytes of padding in BUFFER_SIZE chunks.
func (w *Writer) WriteZeros(n int64) {
	for n > 0 && w.err == nil {
		chunk := min(n, BUFFER_SIZE)
		w.write(empty[:chunk])
		n -= chunk
	}
}

func (w *Writer) WriteUint16(v uint16) {
	w.order.PutUint16(w.scratch[:2], v)
	w.write(w.scratch[:2])
}

func (w *Writer) WriteUint32(v uint32) {
	w.order.PutUint32(w.scratch[:], v)
	w.write(w.scratch[:])
}

func (w *Writer) WriteInt32(v int32) {
	w.WriteUint32(uint32(v))
}

func (w *Writer) WriteFloat32(v float32) {
	w.WriteUint32(math.Float32bits(v))
}
