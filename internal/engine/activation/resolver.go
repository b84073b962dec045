package activation

import (
	"path/filepath"
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

const basedirPlaceholder = "${basedir}"

// Resolver turns activation path templates into absolute paths.
type Resolver struct {
	interp ports.Interpolator
	paths  ports.PathTranslator
}

// NewResolver creates a Resolver.
func NewResolver(interp ports.Interpolator, paths ports.PathTranslator) *Resolver {
	return &Resolver{interp: interp, paths: paths}
}

// Resolve interpolates template against ctx and aligns the result to the
// project directory. Only ${basedir} is honored as a project placeholder;
// every other placeholder is looked up in the project, user and system
// properties in that order. A ProjectDirectory dependency is returned when
// the result depends on the project directory.
func (r *Resolver) Resolve(template string, ctx *domain.Context) (string, []domain.Dependency, error) {
	usesBasedir := strings.Contains(template, basedirPlaceholder)

	sources := make([]ports.ValueSource, 0, 4)
	if ctx.HasProjectDir() {
		basedir := ctx.ProjectDir()
		sources = append(sources, func(expr string) (string, bool) {
			if expr == "basedir" {
				return basedir, true
			}
			return "", false
		})
	} else if usesBasedir {
		return "", nil, zerr.With(zerr.Wrap(domain.ErrBasedirUnavailable, "resolving "+template), "path", template)
	}
	sources = append(sources,
		ports.MapSource(ctx.ProjectProperties()),
		ports.MapSource(ctx.UserProperties()),
		ports.MapSource(ctx.SystemProperties()),
	)

	path, err := r.interp.Interpolate(template, sources...)
	if err != nil {
		failed := zerr.Wrap(domain.ErrInterpolationFailed, "resolving "+template+" ("+err.Error()+")")
		return "", nil, zerr.With(failed, "path", template)
	}

	var deps []domain.Dependency
	if !filepath.IsAbs(path) || usesBasedir {
		deps = append(deps, domain.ProjectDirectory{Dir: ctx.ProjectDir()})
	}
	return r.paths.AlignToBaseDirectory(path, ctx.ProjectDir()), deps, nil
}
