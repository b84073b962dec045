package domain

import "fmt"

const (
	// MarkerPropertyName is the activation property name that hands a profile's
	// activation over to the activation script language.
	MarkerPropertyName = "[KINDLE]"

	// PresenceProperty is injected into the system properties of every
	// selection call so that host-native activation can detect kindle.
	PresenceProperty = "[KINDLE-PROFILE-ACTIVATOR]"

	// DebugProperty is the system property that enables the selection trace.
	DebugProperty = "KindleProfileSelectorDebug"

	// SkipPropertyPrefix prefixes the per-profile opt-out property skip<id>.
	SkipPropertyPrefix = "skip"
)

// ProfileSource tells where a profile was declared.
type ProfileSource string

const (
	// SourceDescriptor marks profiles declared in the module descriptor itself.
	SourceDescriptor ProfileSource = "descriptor"
	// SourceExternal marks profiles contributed from anywhere else.
	SourceExternal ProfileSource = "external"
)

// Location points at a place in a descriptor file.
type Location struct {
	File   string `json:"file,omitzero"`
	Line   int    `json:"line,omitzero"`
	Column int    `json:"column,omitzero"`
}

// String renders the location as file:line:column.
func (l Location) String() string {
	if l.File == "" {
		return "<unknown>"
	}
	if l.Line == 0 {
		return l.File
	}
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// ActivationProperty is a name/value activation condition. When Name is
// MarkerPropertyName, Value holds an activation script.
type ActivationProperty struct {
	Name     string
	Value    string
	Location Location
}

// ActivationFile is the host-native file activation condition.
type ActivationFile struct {
	Exists  string
	Missing string
}

// Activation groups the activation conditions of a profile.
type Activation struct {
	ActiveByDefault bool
	Property        *ActivationProperty
	File            *ActivationFile
}

// Profile is a named, conditionally included configuration unit.
type Profile struct {
	ID         string
	Source     ProfileSource
	Activation *Activation
	Location   Location
}

// Script returns the activation script of the profile and whether the
// profile's activation is governed by the script language.
func (p *Profile) Script() (string, bool) {
	if p.Activation == nil || p.Activation.Property == nil {
		return "", false
	}
	if p.Activation.Property.Name != MarkerPropertyName {
		return "", false
	}
	return p.Activation.Property.Value, true
}

// ScriptLocation returns where the activation script was declared.
func (p *Profile) ScriptLocation() Location {
	if p.Activation != nil && p.Activation.Property != nil && p.Activation.Property.Location.File != "" {
		return p.Activation.Property.Location
	}
	return p.Location
}

// ActiveByDefault reports whether the profile is marked active by default.
func (p *Profile) ActiveByDefault() bool {
	return p.Activation != nil && p.Activation.ActiveByDefault
}

// FromDescriptor reports whether the profile was declared in the module descriptor.
func (p *Profile) FromDescriptor() bool {
	return p.Source == SourceDescriptor
}

// SkipGuard wraps script so that the property skip<id>=true disables the profile.
func SkipGuard(profileID, script string) string {
	return "and(not(property(" + SkipPropertyPrefix + profileID + "=true)), " + script + ")"
}

// ProfileIDs returns the ids of the given profiles in order.
func ProfileIDs(profiles []*Profile) []string {
	ids := make([]string, len(profiles))
	for i, p := range profiles {
		ids[i] = p.ID
	}
	return ids
}
