// Package lba reads and writes gimmick locator sets (.lba files).
//
// A file holds one locator kind for all of its records:
//
//	[kind u32][count i32][count × record]
//
// Each record is position (4×f32) and rotation (4×f32), followed for Scaled
// sets by the scale, and for Named and Scaled sets by the locator and data set
// name hashes (u32 each). Records are zero-padded to a 16-byte stride.
package lba

import (
	"encoding/json"
	"fmt"
	"io"

	codec "github.com/oy3o/foxcodec"
)

// Stride is the boundary every locator record is padded to.
const Stride = 16

var _ codec.Codec = (*LocatorSet)(nil)

// Options tunes decoding. A nil *Options selects the defaults.
type Options struct {
	Limits codec.Limits
}

func (o *Options) limits() codec.Limits {
	if o == nil {
		return codec.DefaultLimits
	}
	return o.Limits
}

var records = [...]*codec.Sequence[Locator]{
	KindPowerCutArea: newRecords(codec.SizeOf[PowerCutAreaLocator](), decodePowerCutArea),
	KindNamed:        newRecords(codec.SizeOf[NamedLocator](), decodeNamed),
	KindScaled:       newRecords(codec.SizeOf[ScaledLocator](), decodeScaled),
}

func newRecords(size int, decode func(codec.PrimitiveReader) (Locator, error)) *codec.Sequence[Locator] {
	return &codec.Sequence[Locator]{
		Name:      "locator",
		MinSize:   codec.Roundup(size, Stride),
		Alignment: Stride,
		Size:      func(Locator) int { return size },
		Decode:    decode,
		Encode:    encodeLocator,
	}
}

// RecordSize returns the padded on-disk size of one locator of kind k.
func RecordSize(k Kind) int {
	if !k.valid() {
		return 0
	}
	return records[k].MinSize
}

// Read decodes a locator set from r. Nothing is returned unless the whole set
// decoded: a short stream is codec.ErrTruncatedInput, an unknown kind tag is
// codec.ErrUnknownVariant and an implausible count is codec.ErrCorruptCount.
func Read(r codec.PrimitiveReader, opts *Options) (*LocatorSet, error) {
	var tag uint32
	r.ReadUint32(&tag)
	if err := r.Err(); err != nil {
		return nil, fmt.Errorf("lba: kind: %w", err)
	}

	kind := Kind(tag)
	if !kind.valid() {
		return nil, fmt.Errorf("lba: %w: locator kind %d", codec.ErrUnknownVariant, tag)
	}

	locators, err := records[kind].Read(r, opts.limits())
	if err != nil {
		return nil, fmt.Errorf("lba: %v set: %w", kind, err)
	}
	return &LocatorSet{kind: kind, locators: locators}, nil
}

// Write encodes set to w. Only a failing sink can make it fail.
func Write(w codec.PrimitiveWriter, set *LocatorSet) error {
	w.WriteUint32(uint32(set.kind))
	if err := records[set.kind].Write(w, set.locators); err != nil {
		return fmt.Errorf("lba: %v set: %w", set.kind, err)
	}
	return nil
}

func decodePowerCutArea(r codec.PrimitiveReader) (Locator, error) {
	var l PowerCutAreaLocator
	l.Position.Decode(r)
	l.Rotation.Decode(r)
	return l, r.Err()
}

func decodeNamed(r codec.PrimitiveReader) (Locator, error) {
	var l NamedLocator
	l.Position.Decode(r)
	l.Rotation.Decode(r)
	r.ReadUint32(&l.LocatorName)
	r.ReadUint32(&l.DataSetName)
	return l, r.Err()
}

func decodeScaled(r codec.PrimitiveReader) (Locator, error) {
	var l ScaledLocator
	l.Position.Decode(r)
	l.Rotation.Decode(r)
	l.Scale.Decode(r)
	r.ReadUint32(&l.LocatorName)
	r.ReadUint32(&l.DataSetName)
	return l, r.Err()
}

func encodeLocator(w codec.PrimitiveWriter, l Locator) error {
	switch l := l.(type) {
	case PowerCutAreaLocator:
		l.Position.Encode(w)
		l.Rotation.Encode(w)
	case NamedLocator:
		l.Position.Encode(w)
		l.Rotation.Encode(w)
		w.WriteUint32(l.LocatorName)
		w.WriteUint32(l.DataSetName)
	case ScaledLocator:
		l.Position.Encode(w)
		l.Rotation.Encode(w)
		l.Scale.Encode(w)
		w.WriteUint32(l.LocatorName)
		w.WriteUint32(l.DataSetName)
	default:
		return fmt.Errorf("%w: %T", codec.ErrUnknownVariant, l)
	}
	return w.Err()
}

// Size returns the encoded size of the set in bytes.
func (s *LocatorSet) Size() int {
	return 4 + records[s.kind].EncodedSize(s.locators)
}

// WriteTo implements io.WriterTo.
func (s *LocatorSet) WriteTo(writer io.Writer) (int64, error) {
	w, err := codec.NewWriter(writer)
	if err != nil {
		return 0, err
	}
	if err := Write(w, s); err != nil {
		return w.Count(), err
	}
	return w.Result()
}

// ReadFrom implements io.ReaderFrom. s is replaced only if the whole set decodes.
func (s *LocatorSet) ReadFrom(reader io.Reader) (int64, error) {
	r, err := codec.NewReader(reader)
	if err != nil {
		return 0, err
	}
	set, err := Read(r, nil)
	if err != nil {
		return r.Count(), err
	}
	*s = *set
	return r.Count(), nil
}

func (s *LocatorSet) MarshalBinary() ([]byte, error) {
	return codec.MarshalBinary(s)
}

func (s *LocatorSet) UnmarshalBinary(data []byte) error {
	return codec.UnmarshalBinary(s, data)
}

func (s *LocatorSet) MarshalTo(buf []byte) (int, error) {
	return codec.MarshalTo(s, buf)
}

// MarshalJSON renders the set with its kind name; locators keep their order.
func (s *LocatorSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Kind     string    `json:"kind"`
		Locators []Locator `json:"locators"`
	}{s.kind.String(), s.locators})
}

// ReadFile decodes the locator set stored at path.
func ReadFile(path string, opts *Options) (*LocatorSet, error) {
	var set *LocatorSet
	err := codec.ReadFile(path, func(r *codec.Reader) (err error) {
		set, err = Read(r, opts)
		return err
	})
	if err != nil {
		return nil, err
	}
	return set, nil
}

// WriteFile encodes set to path, replacing any existing file.
func WriteFile(path string, set *LocatorSet) error {
	return codec.WriteFile(path, func(w *codec.Writer) error {
		return Write(w, set)
	})
}
