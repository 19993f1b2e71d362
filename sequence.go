package codec

import "fmt"

// preallocCap bounds how many elements are reserved up front for one count;
// larger collections grow by append as their elements actually decode.
const preallocCap = 1024

// Sequence describes a run of elements prefixed by an int32 count, each
// element zero-padded up to a multiple of Alignment bytes. Element order on
// the wire is element order in the slice.
type Sequence[T any] struct {
	// Name labels elements in error messages.
	Name string
	// MinSize is the smallest encoded size of one element, padding included.
	// It bounds declared counts against the remaining input.
	MinSize int
	// Alignment specifies the byte boundary each element is padded to.
	// A value of 0 or 1 means no padding. Must be a power of two.
	Alignment int
	// Size reports the unpadded encoded size of v.
	Size   func(v T) int
	Decode func(r PrimitiveReader) (T, error)
	Encode func(w PrimitiveWriter, v T) error
}

func (s *Sequence[T]) padding(v T) int64 {
	if s.Alignment <= 1 {
		return 0
	}
	size := s.Size(v)
	return int64(Roundup(size, s.Alignment) - size)
}

// EncodedSize returns the size of items on the wire, count prefix included.
func (s *Sequence[T]) EncodedSize(items []T) int {
	total := 4
	for _, item := range items {
		total += s.Size(item) + int(s.padding(item))
	}
	return total
}

// Read decodes the count prefix and then exactly that many elements.
func (s *Sequence[T]) Read(r PrimitiveReader, limits Limits) ([]T, error) {
	count, err := ReadCount(r)
	if err != nil {
		return nil, fmt.Errorf("%s count: %w", s.Name, err)
	}
	return s.ReadN(r, count, limits)
}

// ReadN decodes count elements whose count prefix has already been consumed.
// Zero elements decode to a nil slice. On any failure no elements are returned.
func (s *Sequence[T]) ReadN(r PrimitiveReader, count uint32, limits Limits) ([]T, error) {
	if err := CheckCount(r, count, s.MinSize, limits); err != nil {
		return nil, fmt.Errorf("%s count: %w", s.Name, err)
	}
	if count == 0 {
		return nil, nil
	}

	items := make([]T, 0, min(count, preallocCap))
	for i := range count {
		item, err := s.Decode(r)
		if err == nil {
			err = r.Err()
		}
		if err != nil {
			return nil, fmt.Errorf("%s %d: %w", s.Name, i, err)
		}

		r.Skip(s.padding(item))
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("%s %d padding: %w", s.Name, i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Write encodes the count prefix followed by every element and its padding.
func (s *Sequence[T]) Write(w PrimitiveWriter, items []T) error {
	if err := WriteCount(w, len(items)); err != nil {
		return fmt.Errorf("%s count: %w", s.Name, err)
	}

	for i, item := range items {
		if err := s.Encode(w, item); err != nil {
			return fmt.Errorf("%s %d: %w", s.Name, i, err)
		}
		w.WriteZeros(s.padding(item))
		if err := w.Err(); err != nil {
			return fmt.Errorf("%s %d: %w", s.Name, i, err)
		}
	}
	return w.Err()
}
