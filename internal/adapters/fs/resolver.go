package fs

import (
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/zerr"
)

// Resolver expands module glob patterns into directories.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// ResolveDirs resolves patterns relative to root and returns the sorted,
// de-duplicated directories they match. Files are ignored.
func (r *Resolver) ResolveDirs(patterns []string, root string) ([]string, error) {
	unique := make(map[string]struct{})

	for _, pattern := range patterns {
		path := filepath.Join(root, pattern)

		matches, err := filepath.Glob(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to glob path"), "path", path)
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil || !info.IsDir() {
				continue
			}
			unique[match] = struct{}{}
		}
	}

	result := make([]string, 0, len(unique))
	for path := range unique {
		result = append(result, path)
	}
	slices.Sort(result)

	return result, nil
}
