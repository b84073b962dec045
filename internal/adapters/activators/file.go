package activators

import (
	"fmt"
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
)

var _ ports.ProfileActivator = (*FileActivator)(nil)

const basedirPlaceholder = "${basedir}"

// FileActivator activates profiles on the existence or absence of a file.
// Paths are interpolated against ${basedir} and the context properties and
// aligned to the project directory.
type FileActivator struct {
	fs     ports.FileSystem
	interp ports.Interpolator
	paths  ports.PathTranslator
}

// NewFileActivator creates a new FileActivator.
func NewFileActivator(fs ports.FileSystem, interp ports.Interpolator, paths ports.PathTranslator) *FileActivator {
	return &FileActivator{fs: fs, interp: interp, paths: paths}
}

// PresentInConfig reports whether p carries a file condition.
func (a *FileActivator) PresentInConfig(p *domain.Profile, _ *domain.Context, _ ports.ProblemSink) bool {
	if p.Activation == nil || p.Activation.File == nil {
		return false
	}
	f := p.Activation.File
	return strings.TrimSpace(f.Exists) != "" || strings.TrimSpace(f.Missing) != ""
}

// IsActive evaluates the file condition of p. Exists takes precedence when
// both are set.
func (a *FileActivator) IsActive(p *domain.Profile, ctx *domain.Context, problems ports.ProblemSink) (bool, error) {
	f := p.Activation.File

	path, missing := strings.TrimSpace(f.Exists), false
	if path == "" {
		path, missing = strings.TrimSpace(f.Missing), true
	}

	if !ctx.HasProjectDir() && strings.Contains(path, basedirPlaceholder) {
		problems.Add(domain.Problem{
			Severity:  domain.SeverityWarning,
			ProfileID: p.ID,
			Message:   fmt.Sprintf("Failed to interpolate file location %s for profile %s: ${basedir} can only be used in a module", path, p.ID),
			Location:  p.Location,
			Err:       domain.ErrBasedirUnavailable,
		})
		return false, nil
	}

	sources := []ports.ValueSource{
		ports.MapSource(ctx.ProjectProperties()),
		ports.MapSource(ctx.UserProperties()),
		ports.MapSource(ctx.SystemProperties()),
	}
	if ctx.HasProjectDir() {
		basedir := ctx.ProjectDir()
		sources = append([]ports.ValueSource{func(expr string) (string, bool) {
			return basedir, expr == "basedir"
		}}, sources...)
	}

	resolved, err := a.interp.Interpolate(path, sources...)
	if err != nil {
		return false, err
	}
	resolved = a.paths.AlignToBaseDirectory(resolved, ctx.ProjectDir())

	return a.fs.Exists(resolved) != missing, nil
}
