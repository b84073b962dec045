package fs

import (
	"os"

	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.FileSystem = (*FileSystem)(nil)

// FileSystem implements ports.FileSystem on the local disk.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Exists reports whether path exists. Symbolic links are followed.
func (f *FileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ListDir returns the entry names of dir in the order the directory yields them.
func (f *FileSystem) ListDir(dir string) ([]string, error) {
	d, err := os.Open(dir) //nolint:gosec // Path comes from the activation script
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open directory"), "path", dir)
	}
	defer d.Close() //nolint:errcheck // Best effort close in defer

	names, err := d.Readdirnames(-1)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to list directory"), "path", dir)
	}
	return names, nil
}
