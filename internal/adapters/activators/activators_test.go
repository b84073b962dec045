package activators_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindle/internal/adapters/activators"
	"go.trai.ch/kindle/internal/adapters/fs"
	"go.trai.ch/kindle/internal/adapters/interp"
	"go.trai.ch/kindle/internal/adapters/problems"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func propertyProfile(name, value string) *domain.Profile {
	return &domain.Profile{
		ID:         "p",
		Source:     domain.SourceDescriptor,
		Activation: &domain.Activation{Property: &domain.ActivationProperty{Name: name, Value: value}},
	}
}

func TestPropertyActivator_PresentInConfig(t *testing.T) {
	a := activators.NewPropertyActivator()
	ctx := domain.NewContext(domain.ContextSpec{})

	assert.True(t, a.PresentInConfig(propertyProfile("env", "dev"), ctx, nil))
	assert.False(t, a.PresentInConfig(propertyProfile(domain.MarkerPropertyName, "file(x)"), ctx, nil))
	assert.False(t, a.PresentInConfig(&domain.Profile{ID: "bare"}, ctx, nil))
	assert.False(t, a.PresentInConfig(&domain.Profile{ID: "empty", Activation: &domain.Activation{}}, ctx, nil))
}

func TestPropertyActivator_IsActive(t *testing.T) {
	ctx := domain.NewContext(domain.ContextSpec{
		UserProperties:   map[string]string{"env": "dev", "shadowed": "user"},
		SystemProperties: map[string]string{"shadowed": "system", "os.name": "linux"},
	})

	tests := []struct {
		name  string
		prop  string
		value string
		want  bool
	}{
		{"defined", "env", "", true},
		{"undefined", "missing", "", false},
		{"negated name on undefined", "!missing", "", true},
		{"negated name on defined", "!env", "", false},
		{"value matches", "env", "dev", true},
		{"value differs", "env", "prod", false},
		{"negated value differs", "env", "!prod", true},
		{"negated value matches", "env", "!dev", false},
		{"system fallback", "os.name", "linux", true},
		{"user shadows system", "shadowed", "user", true},
	}

	a := activators.NewPropertyActivator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := a.IsActive(propertyProfile(tt.prop, tt.value), ctx, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPropertyActivator_EmptyName(t *testing.T) {
	a := activators.NewPropertyActivator()
	ctx := domain.NewContext(domain.ContextSpec{})

	_, err := a.IsActive(propertyProfile("!", ""), ctx, nil)
	require.Error(t, err)
}

func fileProfile(exists, missing string) *domain.Profile {
	return &domain.Profile{
		ID:         "f",
		Source:     domain.SourceDescriptor,
		Activation: &domain.Activation{File: &domain.ActivationFile{Exists: exists, Missing: missing}},
	}
}

func newFileActivator() *activators.FileActivator {
	return activators.NewFileActivator(fs.NewFileSystem(), interp.New(), fs.NewPathTranslator())
}

func TestFileActivator_PresentInConfig(t *testing.T) {
	a := newFileActivator()
	ctx := domain.NewContext(domain.ContextSpec{})

	assert.True(t, a.PresentInConfig(fileProfile("a", ""), ctx, nil))
	assert.True(t, a.PresentInConfig(fileProfile("", "b"), ctx, nil))
	assert.False(t, a.PresentInConfig(fileProfile(" ", ""), ctx, nil))
	assert.False(t, a.PresentInConfig(propertyProfile("env", ""), ctx, nil))
}

func TestFileActivator_IsActive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "present.txt"), nil, 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "conf"), 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "conf", "app.yaml"), nil, 0o600))

	ctx := domain.NewContext(domain.ContextSpec{
		ProjectDir:        dir,
		ProjectProperties: map[string]string{"conf.dir": "conf"},
	})

	tests := []struct {
		name    string
		exists  string
		missing string
		want    bool
	}{
		{"relative exists", "present.txt", "", true},
		{"relative absent", "absent.txt", "", false},
		{"missing holds", "", "absent.txt", true},
		{"missing fails", "", "present.txt", false},
		{"basedir", "${basedir}/present.txt", "", true},
		{"project property", "${conf.dir}/app.yaml", "", true},
		{"exists wins over missing", "present.txt", "present.txt", true},
	}

	a := newFileActivator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sink := problems.NewCollector()
			got, err := a.IsActive(fileProfile(tt.exists, tt.missing), ctx, sink)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Empty(t, sink.Problems())
		})
	}
}

func TestFileActivator_BasedirWithoutProject(t *testing.T) {
	ctrl := gomock.NewController(t)
	sink := mocks.NewMockProblemSink(ctrl)
	sink.EXPECT().Add(gomock.Any()).Do(func(p domain.Problem) {
		assert.Equal(t, domain.SeverityWarning, p.Severity)
		assert.ErrorIs(t, p.Err, domain.ErrBasedirUnavailable)
	})

	ctx := domain.NewContext(domain.ContextSpec{})
	got, err := newFileActivator().IsActive(fileProfile("${basedir}/x", ""), ctx, sink)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestFileActivator_InterpolationCycle(t *testing.T) {
	ctx := domain.NewContext(domain.ContextSpec{
		ProjectDir:        t.TempDir(),
		ProjectProperties: map[string]string{"a": "${a}"},
	})

	_, err := newFileActivator().IsActive(fileProfile("${a}", ""), ctx, problems.NewCollector())
	require.ErrorIs(t, err, domain.ErrInterpolationCycle)
}

func TestChain(t *testing.T) {
	chain := activators.Chain(fs.NewFileSystem(), interp.New(), fs.NewPathTranslator())
	require.Len(t, chain, 2)
	assert.IsType(t, &activators.PropertyActivator{}, chain[0])
	assert.IsType(t, &activators.FileActivator{}, chain[1])
}
