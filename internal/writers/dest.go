package writers

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"
)

// IsBrokenPipe reports whether an error is a broken pipe / closed pipe.
// Useful when downstream consumers (like `head`) close early.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Destination is an output target. For files, data goes to a temp file in the
// same directory and is renamed into place on Commit. "-" writes to stdout.
type Destination struct {
	io.Writer
	path string
	tmp  *os.File
	done bool
}

// Create opens a destination for path. stdout is used for "-".
func Create(path string, stdout io.Writer) (*Destination, error) {
	if path == "-" {
		return &Destination{Writer: stdout, path: path}, nil
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create output: %w", err)
	}
	return &Destination{Writer: tmp, path: path, tmp: tmp}, nil
}

// Path is the final output path ("-" for stdout).
func (d *Destination) Path() string { return d.path }

// Commit closes the temp file and renames it over the final path.
func (d *Destination) Commit() error {
	if d.done {
		return nil
	}
	d.done = true
	if d.tmp == nil {
		return nil
	}
	if err := d.tmp.Close(); err != nil {
		_ = os.Remove(d.tmp.Name())
		return err
	}
	if err := os.Chmod(d.tmp.Name(), 0o644); err != nil {
		_ = os.Remove(d.tmp.Name())
		return err
	}
	if err := os.Rename(d.tmp.Name(), d.path); err != nil {
		_ = os.Remove(d.tmp.Name())
		return err
	}
	return nil
}

// Abort discards the temp file. It is a no-op after Commit, so it is safe to defer.
func (d *Destination) Abort() {
	if d.done {
		return
	}
	d.done = true
	if d.tmp != nil {
		_ = d.tmp.Close()
		_ = os.Remove(d.tmp.Name())
	}
}
