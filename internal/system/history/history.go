// Released under an MIT license. See LICENSE.

// Package history reads and writes the line editor's history file.
package history

import (
	"errors"
	"io"
	"os"
)

// Load passes the history file at path to read. A missing file is not an
// error.
func Load(path string, read func(r io.Reader) (int, error)) error {
	if path == "" {
		return nil
	}

	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}

	_, err = read(f)
	if err != nil {
		f.Close()

		return err
	}

	return f.Close()
}

// Save passes the history file at path, truncated, to write. The file is
// only readable by its owner.
func Save(path string, write func(w io.Writer) (int, error)) error {
	if path == "" {
		return nil
	}

	f, err := Private(func() (*os.File, error) {
		return os.Create(path)
	})
	if err != nil {
		return err
	}

	_, err = write(f)
	if err != nil {
		f.Close()

		return err
	}

	return f.Close()
}
