package codec

import (
	"errors"
	"os"
	"path/filepath"
)

// ReadFile opens path and hands decode a Reader over it. The file is closed
// on every exit path.
func ReadFile(path string, decode func(r *Reader) error) (err error) {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	r, err := NewReader(f)
	if err != nil {
		return err
	}
	return decode(r)
}

// WriteFile hands encode a Writer over a temporary file in the directory of
// path and renames it over path once encode, the flush and the close have
// all succeeded. On any failure the temporary file is removed and an
// existing file at path is left untouched.
func WriteFile(path string, encode func(w *Writer) error) (err error) {
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	closed := false
	defer func() {
		if err == nil {
			return
		}
		if !closed {
			_ = f.Close()
		}
		_ = os.Remove(f.Name())
	}()

	w, err := NewWriter(f)
	if err != nil {
		return err
	}
	if err = encode(w); err != nil {
		return err
	}
	if _, err = w.Result(); err != nil {
		return err
	}
	if err = f.Chmod(0o644); err != nil {
		return err
	}
	closed = true
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), path)
}
