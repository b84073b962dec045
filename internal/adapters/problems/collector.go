// Package problems collects the problems reported during profile activation.
package problems

import (
	"slices"
	"sync"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
)

var _ ports.ProblemSink = (*Collector)(nil)

// Collector is a goroutine safe ports.ProblemSink that keeps problems in the
// order they were reported.
type Collector struct {
	mu       sync.Mutex
	problems []domain.Problem
}

// NewCollector creates an empty Collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Add records a problem.
func (c *Collector) Add(problem domain.Problem) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.problems = append(c.problems, problem)
}

// Problems returns a copy of the recorded problems.
func (c *Collector) Problems() []domain.Problem {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.problems)
}

// HasErrors reports whether any recorded problem is an error or worse.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.ContainsFunc(c.problems, func(p domain.Problem) bool {
		return p.Severity >= domain.SeverityError
	})
}

// Len returns the number of recorded problems.
func (c *Collector) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.problems)
}
