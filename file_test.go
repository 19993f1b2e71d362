package codec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.bin")

	err := WriteFile(path, func(w *Writer) error {
		return words.Write(w, []uint32{3, 4, 5})
	})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.EqualValues(t, 4+3*8, info.Size())

	var got []uint32
	err = ReadFile(path, func(r *Reader) error {
		left, ok := r.Remaining()
		assert.True(t, ok, "a regular file knows its length")
		assert.EqualValues(t, info.Size(), left)

		got, err = words.Read(r, DefaultLimits)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []uint32{3, 4, 5}, got)
}

func TestReadFileMissing(t *testing.T) {
	err := ReadFile(filepath.Join(t.TempDir(), "absent.bin"), func(*Reader) error {
		t.Fatal("decode must not run")
		return nil
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteFileFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.bin")
	require.NoError(t, os.WriteFile(path, []byte("old contents"), 0o644))
	boom := errors.New("boom")

	err := WriteFile(path, func(w *Writer) error {
		w.WriteUint32(1)
		return boom
	})
	assert.ErrorIs(t, err, boom)

	data, readErr := os.ReadFile(path)
	require.NoError(t, readErr)
	assert.Equal(t, []byte("old contents"), data)

	entries, readErr := os.ReadDir(dir)
	require.NoError(t, readErr)
	assert.Len(t, entries, 1, "the temporary file is removed")
}

func TestWriteFileReplacesExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "words.bin")
	require.NoError(t, os.WriteFile(path, []byte("a much longer old file"), 0o644))

	require.NoError(t, WriteFile(path, func(w *Writer) error {
		w.WriteUint32(9)
		return w.Err()
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte{9, 0, 0, 0}, data)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFileMissingDirectory(t *testing.T) {
	err := WriteFile(filepath.Join(t.TempDir(), "absent", "words.bin"), func(*Writer) error {
		t.Fatal("encode must not run")
		return nil
	})
	assert.Error(t, err)
}

func TestReadFileCorruptCount(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.bin")
	require.NoError(t, os.WriteFile(path, []byte{0xFF, 0xFF, 0, 0, 1, 2}, 0o644))

	err := ReadFile(path, func(r *Reader) error {
		_, err := words.Read(r, DefaultLimits)
		return err
	})
	assert.ErrorIs(t, err, ErrCorruptCount)
}
