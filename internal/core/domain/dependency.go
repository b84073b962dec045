package domain

import "fmt"

// Dependency is one externally observable fact that an activation result
// relied upon. The set of variants is closed: FileExistence, NoFileWithPrefix,
// PropertyPredicate, ProjectDirectory and AlwaysFails.
type Dependency interface {
	fmt.Stringer
	dependency()
}

// FileExistence pins the existence of Path as observed when it was recorded.
type FileExistence struct {
	Path    string
	Existed bool
}

// NoFileWithPrefix holds while Dir has no entry whose name starts with Prefix.
type NoFileWithPrefix struct {
	Dir    string
	Prefix string
}

// PropertyScope names the property map a PropertyPredicate is re-checked against.
type PropertyScope string

const (
	// ScopeUser is the user property map.
	ScopeUser PropertyScope = "user"
	// ScopeSystem is the system property map.
	ScopeSystem PropertyScope = "system"
)

// PropertyPredicate pins the outcome of a property(...) test.
type PropertyPredicate struct {
	Scope PropertyScope
	Key   string
	// Value is compared only when HasValue is set.
	Value    string
	HasValue bool
	Negate   bool
	// Outcome is the result observed when the predicate was recorded.
	Outcome bool
}

// ProjectDirectory pins the project directory. Dir is empty for "no directory".
type ProjectDirectory struct {
	Dir string
}

// AlwaysFails never holds. It is recorded when a path could not be resolved.
type AlwaysFails struct{}

func (FileExistence) dependency()    {}
func (NoFileWithPrefix) dependency() {}
func (PropertyPredicate) dependency() {}
func (ProjectDirectory) dependency() {}
func (AlwaysFails) dependency()      {}

func (d FileExistence) String() string {
	return fmt.Sprintf("file %s existed=%t", d.Path, d.Existed)
}

func (d NoFileWithPrefix) String() string {
	return fmt.Sprintf("no %s* in %s", d.Prefix, d.Dir)
}

func (d PropertyPredicate) String() string {
	expr := d.Key
	if d.Negate {
		expr = "!" + expr
	}
	if d.HasValue {
		expr += "=" + d.Value
	}
	return fmt.Sprintf("%s property %s is %t", d.Scope, expr, d.Outcome)
}

func (d ProjectDirectory) String() string {
	if d.Dir == "" {
		return "no project directory"
	}
	return "project directory " + d.Dir
}

func (AlwaysFails) String() string { return "always fails" }

// NewPropertyPredicate evaluates "[!]key[=value]" against ctx and returns the
// predicate with its observed outcome. The key is looked up in the user
// properties first and in the system properties only when it is absent there.
func NewPropertyPredicate(ctx *Context, key, value string, hasValue, negate bool) PropertyPredicate {
	p := PropertyPredicate{
		Scope:    propertyScope(ctx, key),
		Key:      key,
		Value:    value,
		HasValue: hasValue,
		Negate:   negate,
	}
	p.Outcome = p.Test(ctx)
	return p
}

// propertyScope returns the map key is read from in ctx.
func propertyScope(ctx *Context, key string) PropertyScope {
	if _, ok := ctx.UserProperties()[key]; ok {
		return ScopeUser
	}
	return ScopeSystem
}

// Test evaluates the predicate against the scope it was recorded for.
func (d PropertyPredicate) Test(ctx *Context) bool {
	props := ctx.SystemProperties()
	if d.Scope == ScopeUser {
		props = ctx.UserProperties()
	}
	actual := props[d.Key]

	var result bool
	switch {
	case actual == "":
		result = false
	case d.HasValue:
		result = actual == d.Value
	default:
		result = true
	}
	if d.Negate {
		return !result
	}
	return result
}

// Holds reports whether ctx still reads the key from the recorded scope and
// the predicate still yields its recorded outcome.
func (d PropertyPredicate) Holds(ctx *Context) bool {
	return propertyScope(ctx, d.Key) == d.Scope && d.Test(ctx) == d.Outcome
}

// Holds reports whether ctx carries the pinned project directory.
func (d ProjectDirectory) Holds(ctx *Context) bool {
	return ctx.ProjectDir() == d.Dir
}
