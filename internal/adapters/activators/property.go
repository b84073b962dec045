// Package activators implements the host default activation chain: the
// native property and file conditions a profile may carry besides a script.
package activators

import (
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ProfileActivator = (*PropertyActivator)(nil)

// errEmptyPropertyName is returned for a property condition without a name.
var errEmptyPropertyName = zerr.New("activation property name is empty")

// PropertyActivator activates profiles on a user or system property. The
// forms are name, !name, name=value and name=!value.
type PropertyActivator struct{}

// NewPropertyActivator creates a new PropertyActivator.
func NewPropertyActivator() *PropertyActivator {
	return &PropertyActivator{}
}

// PresentInConfig reports whether p carries a property condition. Script
// governed profiles are not handled here.
func (a *PropertyActivator) PresentInConfig(p *domain.Profile, _ *domain.Context, _ ports.ProblemSink) bool {
	if p.Activation == nil || p.Activation.Property == nil {
		return false
	}
	return p.Activation.Property.Name != domain.MarkerPropertyName
}

// IsActive evaluates the property condition of p. User properties shadow
// system properties.
func (a *PropertyActivator) IsActive(p *domain.Profile, ctx *domain.Context, _ ports.ProblemSink) (bool, error) {
	prop := p.Activation.Property

	name, reverseName := strings.CutPrefix(strings.TrimSpace(prop.Name), "!")
	if name == "" {
		return false, zerr.With(zerr.Wrap(errEmptyPropertyName, "cannot check activation"), "profile", p.ID)
	}

	actual, ok := ctx.UserProperties()[name]
	if !ok {
		actual = ctx.SystemProperties()[name]
	}

	expected := strings.TrimSpace(prop.Value)
	if expected == "" {
		return (actual != "") != reverseName, nil
	}

	expected, reverseValue := strings.CutPrefix(expected, "!")
	return (actual == expected) != reverseValue, nil
}
