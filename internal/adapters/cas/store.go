// Package cas implements the activation record store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.RecordStore = (*Store)(nil)

// Store implements ports.RecordStore using one flat JSON file per workspace
// at <root>/.kindle/activation.json.
type Store struct {
	mu     sync.RWMutex
	caches map[string]map[string]domain.ActivationRecord
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{caches: make(map[string]map[string]domain.ActivationRecord)}
}

// Path returns the record file of the workspace at root.
func Path(root string) string {
	return filepath.Join(filepath.Clean(root), domain.StateDirName, domain.RecordFileName)
}

// records returns the records of root, loading them on first use.
func (s *Store) records(root string) (map[string]domain.ActivationRecord, error) {
	s.mu.RLock()
	cache, ok := s.caches[root]
	s.mu.RUnlock()
	if ok {
		return cache, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if cache, ok := s.caches[root]; ok {
		return cache, nil
	}

	cache, err := load(Path(root))
	if err != nil {
		return nil, err
	}
	s.caches[root] = cache
	return cache, nil
}

func load(path string) (map[string]domain.ActivationRecord, error) {
	cache := make(map[string]domain.ActivationRecord)

	//nolint:gosec // Path is derived from the workspace root
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cache, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to read activation record store"), "path", path)
	}

	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to unmarshal activation record store"), "path", path)
	}

	return cache, nil
}

// save writes the records of root. Callers hold mu.
func (s *Store) save(root string) error {
	path := Path(root)

	data, err := json.MarshalIndent(s.caches[root], "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal activation record store")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create directory for activation record store"), "path", path)
	}

	//nolint:gosec // Path is derived from the workspace root
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write activation record store"), "path", path)
	}

	return nil
}

// Get retrieves the activation record of a module.
func (s *Store) Get(root, module string) (*domain.ActivationRecord, error) {
	cache, err := s.records(root)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := cache[module]
	if !ok {
		return nil, nil
	}
	return &record, nil
}

// Put stores the activation record and writes the file.
func (s *Store) Put(root string, record domain.ActivationRecord) error {
	cache, err := s.records(root)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cache[record.Module] = record
	return s.save(root)
}
