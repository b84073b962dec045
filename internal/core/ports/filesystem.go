package ports

// FileSystem provides the read-only filesystem predicates used during activation.
//
//go:generate mockgen -source=filesystem.go -destination=mocks/mock_filesystem.go -package=mocks
type FileSystem interface {
	// Exists reports whether path exists.
	Exists(path string) bool
	// ListDir returns the entry names of dir in directory order, unsorted.
	ListDir(dir string) ([]string, error)
}

// PathTranslator maps activation paths onto the project directory.
type PathTranslator interface {
	// AlignToBaseDirectory resolves a relative path against basedir.
	// Absolute paths, and every path when basedir is empty, are returned cleaned.
	AlignToBaseDirectory(path, basedir string) string
}
