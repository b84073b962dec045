package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Hasher = (*Hasher)(nil)

// profilesDir holds the marker files scripts inspect with type, jdk and profile.
const profilesDir = "profiles"

// Hasher provides xxhash fingerprints for module activations.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// ComputeActivationHash hashes the module name, the active profile ids in
// order, the descriptor content and every file below the module profiles
// directory.
func (h *Hasher) ComputeActivationHash(module *domain.Module, active []string) (string, error) {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(module.Name)
	_, _ = hasher.Write([]byte{0})

	for _, id := range active {
		_, _ = hasher.WriteString(id)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0}) // Section separator

	if module.DescriptorPath != "" {
		if err := h.hashFile(module.DescriptorPath, module.Dir, hasher); err != nil {
			return "", err
		}
	}
	_, _ = hasher.Write([]byte{0})

	dir := filepath.Join(module.Dir, profilesDir)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		for path := range h.walker.WalkFiles(dir, nil) {
			if err := h.hashFile(path, module.Dir, hasher); err != nil {
				return "", err
			}
		}
	}

	return fmt.Sprintf("%016x", hasher.Sum64()), nil
}

func (h *Hasher) hashFile(path, root string, mainHasher io.Writer) error {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	_, _ = mainHasher.Write([]byte(filepath.ToSlash(rel)))
	_, _ = mainHasher.Write([]byte{0})

	hash, err := h.ComputeFileHash(path)
	if err != nil {
		return err
	}

	if err := binary.Write(mainHasher, binary.LittleEndian, hash); err != nil {
		return zerr.Wrap(err, "failed to write hash to digest")
	}
	return nil
}
