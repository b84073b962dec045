package ports

import "go.trai.ch/kindle/internal/core/domain"

// ProblemSink collects problems reported while activating profiles.
//
//go:generate mockgen -source=activation.go -destination=mocks/mock_activation.go -package=mocks
type ProblemSink interface {
	Add(problem domain.Problem)
}

// ProfileActivator is one activator of the host default activation chain.
type ProfileActivator interface {
	// PresentInConfig reports whether the profile configures this activator.
	PresentInConfig(profile *domain.Profile, ctx *domain.Context, problems ProblemSink) bool
	// IsActive decides whether the profile is active according to this activator.
	IsActive(profile *domain.Profile, ctx *domain.Context, problems ProblemSink) (bool, error)
}
