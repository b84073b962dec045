// Package fs provides the filesystem adapters: activation predicates, path
// alignment, directory walking, module discovery and fingerprinting.
package fs

import (
	"io/fs"
	"iter"
	"path/filepath"
)

// Walker provides directory walking functionality.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// WalkDirs yields root and every directory below it, skipping VCS metadata,
// kindle state and directories whose name matches one of ignores.
func (w *Walker) WalkDirs(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				// Unreadable directories are skipped, the walk continues.
				return nil //nolint:nilerr // Intentional
			}
			if !d.IsDir() {
				return nil
			}
			if path != root && w.shouldSkipDir(d.Name(), ignores) {
				return filepath.SkipDir
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// WalkFiles yields all files below root, skipping the same directories as WalkDirs.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && w.shouldSkipDir(d.Name(), ignores) {
					return filepath.SkipDir
				}
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

var alwaysSkipped = map[string]bool{
	".git":         true,
	".jj":          true,
	".kindle":      true,
	"node_modules": true,
}

func (w *Walker) shouldSkipDir(name string, ignores []string) bool {
	if alwaysSkipped[name] {
		return true
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return true
		}
	}
	return false
}
