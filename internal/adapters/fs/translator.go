package fs

import (
	"path/filepath"

	"go.trai.ch/kindle/internal/core/ports"
)

var _ ports.PathTranslator = (*PathTranslator)(nil)

// PathTranslator aligns relative activation paths to the project directory.
type PathTranslator struct{}

// NewPathTranslator creates a new PathTranslator.
func NewPathTranslator() *PathTranslator {
	return &PathTranslator{}
}

// AlignToBaseDirectory joins a relative path onto basedir.
func (t *PathTranslator) AlignToBaseDirectory(path, basedir string) string {
	if path == "" && basedir == "" {
		return ""
	}
	if basedir == "" || filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(basedir, path)
}
