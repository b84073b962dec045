package activation

import (
	"strconv"
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/zerr"
)

type versionComparison struct {
	op      string
	version int
}

// Two-character operators come first so that "<=" is not read as "<".
var versionOperators = []struct {
	prefix string
	op     string
}{
	{"<=", "<="},
	{"=<", "<="},
	{">=", ">="},
	{"=>", ">="},
	{"<", "<"},
	{">", ">"},
	{"=", "="},
}

func parseVersionComparison(expr string) (versionComparison, error) {
	expr = strings.TrimSpace(expr)
	op, rest := "=", expr
	for _, candidate := range versionOperators {
		if after, ok := strings.CutPrefix(expr, candidate.prefix); ok {
			op, rest = candidate.op, after
			break
		}
	}

	v, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return versionComparison{}, zerr.With(zerr.Wrap(domain.ErrInvalidVersion, "parsing "+expr), "comparison", expr)
	}
	return versionComparison{op: op, version: v}, nil
}

func (c versionComparison) matches(detected int) bool {
	switch c.op {
	case "<=":
		return detected <= c.version
	case ">=":
		return detected >= c.version
	case "<":
		return detected < c.version
	case ">":
		return detected > c.version
	default:
		return detected == c.version
	}
}
