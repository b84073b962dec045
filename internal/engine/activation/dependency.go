package activation

import (
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
)

// Holds reports whether dep is still true against ctx.
func Holds(dep domain.Dependency, ctx *domain.Context, fs ports.FileSystem) bool {
	switch d := dep.(type) {
	case domain.FileExistence:
		return fs.Exists(d.Path) == d.Existed
	case domain.NoFileWithPrefix:
		entries, err := fs.ListDir(d.Dir)
		if err != nil {
			return false
		}
		for _, entry := range entries {
			if strings.HasPrefix(entry, d.Prefix) {
				return false
			}
		}
		return true
	case domain.PropertyPredicate:
		return d.Holds(ctx)
	case domain.ProjectDirectory:
		return d.Holds(ctx)
	case domain.AlwaysFails:
		return false
	default:
		return false
	}
}
