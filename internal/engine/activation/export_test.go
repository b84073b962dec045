package activation

// ParseVersionComparison exposes parseVersionComparison for tests.
func ParseVersionComparison(expr string) (op string, version int, err error) {
	c, err := parseVersionComparison(expr)
	return c.op, c.version, err
}

// VersionMatches exposes versionComparison.matches for tests.
func VersionMatches(expr string, detected int) (bool, error) {
	c, err := parseVersionComparison(expr)
	if err != nil {
		return false, err
	}
	return c.matches(detected), nil
}

// JavaVersion exposes javaVersion for tests.
var JavaVersion = javaVersion
