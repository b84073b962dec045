package domain

import "fmt"

// Severity classifies a reported Problem.
type Severity int

const (
	// SeverityWarning is a problem that does not fail the build.
	SeverityWarning Severity = iota
	// SeverityError is a problem that the host should treat as an error.
	SeverityError
	// SeverityFatal stops processing of the affected module.
	SeverityFatal
)

// String returns the lower-case name of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Problem is a non-fatal failure reported while activating profiles.
type Problem struct {
	Severity  Severity `json:"severity"`
	ProfileID string   `json:"profile,omitzero"`
	Message   string   `json:"message"`
	Location  Location `json:"location"`
	// Err is the sentinel classifying the problem, possibly wrapped.
	Err error `json:"-"`
}

// String renders the problem the way the CLI prints it.
func (p Problem) String() string {
	return fmt.Sprintf("[%s] %s (%s)", p.Severity, p.Message, p.Location)
}
