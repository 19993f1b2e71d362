package codec

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pair is a two-word value; claim overrides the size it reports.
type pair struct {
	A, B  uint32
	claim int
}

func (p *pair) Size() int {
	if p.claim != 0 {
		return p.claim
	}
	return 8
}

func (p *pair) WriteTo(dst io.Writer) (int64, error) {
	w, err := NewWriter(dst)
	if err != nil {
		return 0, err
	}
	w.WriteUint32(p.A)
	w.WriteUint32(p.B)
	return w.Result()
}

func (p *pair) ReadFrom(src io.Reader) (int64, error) {
	r, err := NewReader(src)
	if err != nil {
		return 0, err
	}
	r.ReadUint32(&p.A)
	r.ReadUint32(&p.B)
	return r.Count(), r.Err()
}

func TestMarshalBinary(t *testing.T) {
	data, err := MarshalBinary(&pair{A: 1, B: 2})
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 0, 0, 0, 2, 0, 0, 0}, data)
}

func TestMarshalSizeMismatch(t *testing.T) {
	t.Run("Overstated", func(t *testing.T) {
		_, err := MarshalBinary(&pair{claim: 12})
		assert.ErrorIs(t, err, ErrWrite)
		assert.ErrorIs(t, err, io.ErrShortWrite)
		assert.NotErrorIs(t, err, ErrTruncatedInput)
	})

	t.Run("Understated", func(t *testing.T) {
		buf := make([]byte, 16)
		_, err := MarshalTo(&pair{A: 1, B: 2, claim: 4}, buf)
		assert.ErrorIs(t, err, ErrWrite)
		assert.Equal(t, make([]byte, 12), buf[4:], "nothing is written past the reported size")
	})
}

func TestMarshalTo(t *testing.T) {
	buf := make([]byte, 10)
	n, err := MarshalTo(&pair{A: 3, B: 4}, buf)
	require.NoError(t, err)
	assert.Equal(t, 8, n)
	assert.Equal(t, []byte{3, 0, 0, 0, 4, 0, 0, 0, 0, 0}, buf)

	_, err = MarshalTo(&pair{}, make([]byte, 7))
	assert.ErrorIs(t, err, io.ErrShortBuffer)
}

func TestUnmarshalBinary(t *testing.T) {
	var p pair
	require.NoError(t, UnmarshalBinary(&p, []byte{5, 0, 0, 0, 6, 0, 0, 0, 0, 0}))
	assert.Equal(t, uint32(5), p.A)
	assert.Equal(t, uint32(6), p.B)

	err := UnmarshalBinary(&p, []byte{5, 0, 0, 0, 6, 0, 0, 0, 1})
	assert.ErrorIs(t, err, ErrTrailingData)

	err = UnmarshalBinary(&p, []byte{5, 0, 0})
	assert.ErrorIs(t, err, ErrTruncatedInput)
}
