package ports

import "go.trai.ch/kindle/internal/core/domain"

// ConfigLoader defines the interface for loading the workspace configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load discovers the workspace from the given working directory and loads
	// every module descriptor in it.
	Load(cwd string) (*domain.Workspace, error)
}
