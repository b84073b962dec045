package ports

// ValueSource resolves the expression inside a ${...} placeholder.
type ValueSource func(expr string) (string, bool)

// MapSource exposes a property map as a ValueSource.
func MapSource(props map[string]string) ValueSource {
	return func(expr string) (string, bool) {
		v, ok := props[expr]
		return v, ok
	}
}

// Interpolator expands ${...} placeholders in path templates.
type Interpolator interface {
	// Interpolate replaces every placeholder with the value of the first source
	// that resolves it. Unresolved placeholders are left in place.
	Interpolate(template string, sources ...ValueSource) (string, error)
}
