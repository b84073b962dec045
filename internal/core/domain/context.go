package domain

import (
	"maps"
	"sync/atomic"
)

// ContextID identifies one Context snapshot. Two contexts are the same only if
// their identifiers are equal, regardless of their contents.
type ContextID uint64

// NoContext is the zero ContextID. It is never assigned to a Context.
const NoContext ContextID = 0

var lastContextID atomic.Uint64

// NextContextID returns a fresh, monotonically increasing ContextID.
func NextContextID() ContextID {
	return ContextID(lastContextID.Add(1))
}

// Context is an immutable snapshot of the build context handed to one
// profile selection call.
type Context struct {
	id                 ContextID
	activeProfileIDs   []string
	inactiveProfileIDs []string
	systemProperties   map[string]string
	userProperties     map[string]string
	projectProperties  map[string]string
	projectDir         string
}

// ContextSpec carries the values a Context is built from.
type ContextSpec struct {
	ActiveProfileIDs   []string
	InactiveProfileIDs []string
	SystemProperties   map[string]string
	UserProperties     map[string]string
	ProjectProperties  map[string]string
	// ProjectDir is the absolute project directory, or empty when there is none.
	ProjectDir string
}

// NewContext creates a Context with a fresh identity. The maps and
// slices are copied.
func NewContext(cs ContextSpec) *Context {
	return &Context{
		id:                 NextContextID(),
		activeProfileIDs:   append([]string(nil), cs.ActiveProfileIDs...),
		inactiveProfileIDs: append([]string(nil), cs.InactiveProfileIDs...),
		systemProperties:   copyProperties(cs.SystemProperties),
		userProperties:     copyProperties(cs.UserProperties),
		projectProperties:  copyProperties(cs.ProjectProperties),
		projectDir:         cs.ProjectDir,
	}
}

// WithSystemProperty returns a view of c with one extra system property.
// The view keeps the identity of c.
func (c *Context) WithSystemProperty(key, value string) *Context {
	view := *c
	view.systemProperties = copyProperties(c.systemProperties)
	view.systemProperties[key] = value
	return &view
}

// ID returns the identity token of the context.
func (c *Context) ID() ContextID { return c.id }

// ActiveProfileIDs returns the explicitly activated profile ids.
func (c *Context) ActiveProfileIDs() []string { return c.activeProfileIDs }

// InactiveProfileIDs returns the explicitly deactivated profile ids.
func (c *Context) InactiveProfileIDs() []string { return c.inactiveProfileIDs }

// SystemProperties returns the system property scope. Callers must not mutate it.
func (c *Context) SystemProperties() map[string]string { return c.systemProperties }

// UserProperties returns the user property scope. Callers must not mutate it.
func (c *Context) UserProperties() map[string]string { return c.userProperties }

// ProjectProperties returns the project property scope. Callers must not mutate it.
func (c *Context) ProjectProperties() map[string]string { return c.projectProperties }

// ProjectDir returns the project directory, or "" when there is none.
func (c *Context) ProjectDir() string { return c.projectDir }

// HasProjectDir reports whether the context carries a project directory.
func (c *Context) HasProjectDir() bool { return c.projectDir != "" }

func copyProperties(props map[string]string) map[string]string {
	out := make(map[string]string, len(props)+1)
	maps.Copy(out, props)
	return out
}
