package ports

import "go.trai.ch/kindle/internal/core/domain"

// RecordStore defines the interface for storing and retrieving activation records.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type RecordStore interface {
	// Get retrieves the activation record of a module in the workspace at root.
	// Returns nil, nil if not found.
	Get(root, module string) (*domain.ActivationRecord, error)

	// Put stores the activation record.
	Put(root string, record domain.ActivationRecord) error
}
