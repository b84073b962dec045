package domain

// VertexStatus is the lifecycle state of one module selection in a run.
type VertexStatus string

const (
	// VertexStatusPending indicates the module is waiting to be processed.
	VertexStatusPending VertexStatus = "pending"
	// VertexStatusRunning indicates selection is in progress.
	VertexStatusRunning VertexStatus = "running"
	// VertexStatusCompleted indicates selection finished without error problems.
	VertexStatusCompleted VertexStatus = "completed"
	// VertexStatusFailed indicates selection reported error problems.
	VertexStatusFailed VertexStatus = "failed"
	// VertexStatusCached indicates every classification came from the activation cache.
	VertexStatusCached VertexStatus = "cached"
	// VertexStatusSkipped indicates the module declares no profiles.
	VertexStatusSkipped VertexStatus = "skipped"
)

// IsTerminal checks if a status is a terminal state (Completed, Failed, Cached, Skipped).
func (s VertexStatus) IsTerminal() bool {
	switch s {
	case VertexStatusCompleted, VertexStatusFailed, VertexStatusCached, VertexStatusSkipped:
		return true
	default:
		return false
	}
}

// LogLevel represents the severity of a log message, mirroring the standard slog levels.
type LogLevel int

const (
	// LogLevelDebug represents debug-level verbosity.
	LogLevelDebug LogLevel = -4
	// LogLevelInfo represents informational verbosity.
	LogLevelInfo LogLevel = 0
	// LogLevelWarn represents warning verbosity.
	LogLevelWarn LogLevel = 4
	// LogLevelError represents error verbosity.
	LogLevelError LogLevel = 8
)

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// LogLevel maps a problem severity to the level it is logged at.
func (s Severity) LogLevel() LogLevel {
	if s == SeverityWarning {
		return LogLevelWarn
	}
	return LogLevelError
}
