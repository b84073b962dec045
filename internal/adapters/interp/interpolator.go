// Package interp expands ${...} placeholders in activation path templates.
package interp

import (
	"regexp"
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Interpolator = (*Interpolator)(nil)

var placeholder = regexp.MustCompile(`\$\{([^}]+)\}`)

// maxDepth bounds nested expansion of values that contain placeholders.
const maxDepth = 32

// Interpolator implements ports.Interpolator. Values that themselves contain
// placeholders are expanded recursively against the same sources.
type Interpolator struct{}

// New creates a new Interpolator.
func New() *Interpolator {
	return &Interpolator{}
}

// Interpolate replaces every ${expr} in template with the value of the first
// source that resolves expr. Unresolved placeholders are kept verbatim.
func (i *Interpolator) Interpolate(template string, sources ...ports.ValueSource) (string, error) {
	return i.expand(template, sources, nil)
}

func (i *Interpolator) expand(template string, sources []ports.ValueSource, stack []string) (string, error) {
	if !strings.Contains(template, "${") {
		return template, nil
	}
	if len(stack) > maxDepth {
		return "", zerr.With(zerr.Wrap(domain.ErrInterpolationCycle, "expansion too deep"), "chain", strings.Join(stack, " -> "))
	}

	var firstErr error
	out := placeholder.ReplaceAllStringFunc(template, func(match string) string {
		if firstErr != nil {
			return match
		}
		expr := strings.TrimSpace(match[2 : len(match)-1])
		for _, seen := range stack {
			if seen == expr {
				firstErr = zerr.With(
					zerr.Wrap(domain.ErrInterpolationCycle, "cannot expand ${"+expr+"}"),
					"chain", strings.Join(append(stack, expr), " -> "),
				)
				return match
			}
		}

		value, ok := lookup(expr, sources)
		if !ok {
			return match
		}
		expanded, err := i.expand(value, sources, append(stack, expr))
		if err != nil {
			firstErr = err
			return match
		}
		return expanded
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}

func lookup(expr string, sources []ports.ValueSource) (string, bool) {
	for _, source := range sources {
		if source == nil {
			continue
		}
		if v, ok := source(expr); ok {
			return v, true
		}
	}
	return "", false
}
