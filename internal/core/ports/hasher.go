package ports

import "go.trai.ch/kindle/internal/core/domain"

// Hasher fingerprints module activations.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// ComputeFileHash returns the hash of the file content at path.
	ComputeFileHash(path string) (uint64, error)
	// ComputeActivationHash returns a fingerprint of the module descriptor,
	// the module profile files and the active profile ids.
	ComputeActivationHash(module *domain.Module, active []string) (string, error)
}
