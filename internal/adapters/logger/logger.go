// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
)

var _ ports.Logger = (*Logger)(nil)

// zerrError describes an error that can report its own message and metadata
// without the chain, as zerr.Error does.
type zerrError interface {
	Message() string
	Metadata() map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	level    *slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// New creates a new Logger writing pretty output to stderr at info level.
func New() *Logger {
	l := &Logger{level: &slog.LevelVar{}, output: os.Stderr}
	l.logger = slog.New(l.handler())
	return l
}

// handler builds the slog handler for the current mode. Callers hold mu.
func (l *Logger) handler() slog.Handler {
	w := l.output
	if w == nil {
		w = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: l.level}
	if l.jsonMode {
		return slog.NewJSONHandler(w, opts)
	}
	return NewPrettyHandler(w, opts)
}

// SetOutput updates the logger's output destination.
// It preserves the current JSON mode setting.
// If w is nil, os.Stderr is used as the default.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.output = w
	l.logger = slog.New(l.handler())
}

// SetJSON switches between JSON and pretty logging.
// The output destination is preserved from SetOutput calls.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.logger = slog.New(l.handler())
}

// SetLevel changes the minimum level that is emitted.
func (l *Logger) SetLevel(level domain.LogLevel) {
	l.level.Set(slog.Level(level))
}

// DebugEnabled reports whether Debug messages are emitted.
func (l *Logger) DebugEnabled() bool {
	return l.level.Level() <= slog.LevelDebug
}

// Debug logs a debug message.
func (l *Logger) Debug(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Debug(msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error. In pretty mode the zerr chain is printed as a list of
// causes.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err)
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

type errorEntry struct {
	Message  string
	Metadata map[string]any
}

// collectErrorEntries walks the error chain. Metadata of a wrapper without a
// message belongs to the error it wraps.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var carry map[string]any

	for current := err; current != nil; {
		z, ok := current.(zerrError)
		if !ok {
			entries = append(entries, errorEntry{Message: current.Error(), Metadata: carry})
			break
		}

		meta := z.Metadata()
		if z.Message() == "" {
			if carry == nil {
				carry = make(map[string]any, len(meta))
			}
			maps.Copy(carry, meta)
			current = errors.Unwrap(current)
			continue
		}
		if carry != nil {
			maps.Copy(meta, carry)
			carry = nil
		}
		entries = append(entries, errorEntry{Message: z.Message(), Metadata: meta})
		current = errors.Unwrap(current)
	}
	if carry != nil && len(entries) > 0 {
		last := &entries[len(entries)-1]
		if last.Metadata == nil {
			last.Metadata = carry
		} else {
			maps.Copy(last.Metadata, carry)
		}
	}
	return entries
}

func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message+formatMetadata(entry.Metadata), "\n")

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	parts := make([]string, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		parts = append(parts, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return " (" + strings.Join(parts, ", ") + ")"
}
