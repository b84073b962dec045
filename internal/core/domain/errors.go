package domain

import "go.trai.ch/zerr"

var (
	// ErrMalformedScript is reported when an activation script lacks "(" or ")".
	ErrMalformedScript = zerr.New("malformed activation script")

	// ErrUnknownKeyword is reported for a script keyword outside the vocabulary.
	ErrUnknownKeyword = zerr.New("unrecognized script keyword")

	// ErrInterpolationFailed is reported when a path template cannot be interpolated.
	ErrInterpolationFailed = zerr.New("failed to interpolate path")

	// ErrBasedirUnavailable is reported when a path uses ${basedir} without a project directory.
	ErrBasedirUnavailable = zerr.New("basedir is not available")

	// ErrInvalidVersion is reported when a jdk comparison carries a non-numeric version.
	ErrInvalidVersion = zerr.New("invalid version in jdk comparison")

	// ErrActivatorFailed is reported when a host activator cannot decide on a profile.
	ErrActivatorFailed = zerr.New("profile activator failed")

	// ErrNilContext is returned when a selection is requested without a context.
	ErrNilContext = zerr.New("activation context is required")

	// ErrDuplicateProfile is returned when two candidate profiles share an id.
	ErrDuplicateProfile = zerr.New("duplicate profile id")

	// ErrInterpolationCycle is returned when a placeholder refers back to itself.
	ErrInterpolationCycle = zerr.New("interpolation cycle detected")

	// ErrWorkspaceNotFound is returned when neither a workfile nor a descriptor is found.
	ErrWorkspaceNotFound = zerr.New("could not find kindle.work.yaml or kindle.yaml")

	// ErrInvalidDescriptor is returned when a descriptor fails validation.
	ErrInvalidDescriptor = zerr.New("invalid module descriptor")

	// ErrDuplicateModule is returned when two modules share a name.
	ErrDuplicateModule = zerr.New("duplicate module name")

	// ErrModuleNotFound is returned when a requested module is not in the workspace.
	ErrModuleNotFound = zerr.New("module not found")

	// ErrModuleProblems marks a module whose selection reported error problems.
	ErrModuleProblems = zerr.New("profile activation reported errors")
)

var (
	// ErrConfigReadFailed is returned when a configuration file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read configuration file")

	// ErrConfigParseFailed is returned when a configuration file is not valid YAML.
	ErrConfigParseFailed = zerr.New("failed to parse configuration file")
)
