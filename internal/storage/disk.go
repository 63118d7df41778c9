package storage

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Disk persists uploaded files under a single directory, the same one the
// HTTP server serves statically.
type Disk struct {
	dir string
}

func NewDisk(dir string) (*Disk, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Disk{dir: dir}, nil
}

func (d *Disk) Dir() string {
	return d.dir
}

// Save writes the reader's content to filename inside the store directory
// and returns the number of bytes written. Filenames containing path
// separators are rejected.
func (d *Disk) Save(filename string, r io.Reader) (int64, error) {
	if !validFilename(filename) {
		return 0, fmt.Errorf("invalid filename %q", filename)
	}

	f, err := os.OpenFile(filepath.Join(d.dir, filename), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return 0, fmt.Errorf("create file: %w", err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(f.Name())
		return 0, fmt.Errorf("write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close file: %w", err)
	}
	return n, nil
}

func (d *Disk) Remove(filename string) error {
	if !validFilename(filename) {
		return fmt.Errorf("invalid filename %q", filename)
	}
	return os.Remove(filepath.Join(d.dir, filename))
}

// List returns the entries currently on disk.
func (d *Disk) List() ([]fs.DirEntry, error) {
	return os.ReadDir(d.dir)
}

func validFilename(filename string) bool {
	return filename != "" &&
		filename != "." &&
		filename != ".." &&
		!strings.ContainsAny(filename, `/\`)
}
