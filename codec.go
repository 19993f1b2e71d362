// Package codec holds the byte-level plumbing shared by the Fox engine asset
// codecs: the primitive I/O port and its buffered Reader/Writer, counted and
// padded record sequences, and the engine's packed vector types.
//
// The format packages (lba, frt) only ever talk to a PrimitiveReader or
// PrimitiveWriter, so they can be exercised against byte slices as easily as
// against files.
package codec

import (
	"encoding"
	"io"
)

// Sizer reports the exact number of bytes a value encodes to.
type Sizer interface {
	Size() int
}

// Marshaler is the encode half of Codec. MarshalTo fills a caller buffer and
// fails with io.ErrShortBuffer when it is smaller than Size.
type Marshaler interface {
	encoding.BinaryMarshaler
	io.WriterTo
	MarshalTo(buf []byte) (int, error)
}

// Unmarshaler is the decode half of Codec.
type Unmarshaler interface {
	encoding.BinaryUnmarshaler
	io.ReaderFrom
}

// Codec is implemented by every top-level asset type. MarshalBinary, MarshalTo
// and UnmarshalBinary in this package derive the slice forms from Size,
// WriteTo and ReadFrom.
type Codec interface {
	Sizer
	Marshaler
	Unmarshaler
}
