package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindle/internal/adapters/config"
	"go.trai.ch/kindle/internal/adapters/fs"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn(gomock.Any()).AnyTimes()

	loader := config.NewLoader(log, fs.NewResolver())
	loader.Environ = func() []string { return []string{"HOME=/home/dev", "EMPTY=", "=ignored"} }
	return loader
}

const apiDescriptor = `
version: "1"
module: api
properties:
  conf.dir: conf
profiles:
  - id: dev
    activation:
      script: "and(file(src), property(env=dev))"
  - id: ci
    source: external
    activation:
      property: {name: CI, value: "true"}
  - id: marker
    activeByDefault: true
    activation:
      file: {exists: marker.txt}
  - id: plain
`

func TestLoad_Standalone(t *testing.T) {
	tmpDir := t.TempDir()
	descriptorPath := filepath.Join(tmpDir, domain.DescriptorFileName)
	writeFile(t, descriptorPath, apiDescriptor)

	ws, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, ws.Root)
	require.Len(t, ws.Modules, 1)

	m := ws.Modules[0]
	assert.Equal(t, "api", m.Name)
	assert.Equal(t, tmpDir, m.Dir)
	assert.Equal(t, descriptorPath, m.DescriptorPath)
	assert.Equal(t, map[string]string{"conf.dir": "conf"}, m.Properties)
	require.Len(t, m.Profiles, 4)

	dev := m.Profiles[0]
	script, ok := dev.Script()
	require.True(t, ok)
	assert.Equal(t, "and(file(src), property(env=dev))", script)
	assert.True(t, dev.FromDescriptor())
	assert.Equal(t, descriptorPath, dev.ScriptLocation().File)
	assert.Equal(t, 9, dev.ScriptLocation().Line)
	assert.Equal(t, 7, dev.Location.Line)

	ci := m.Profiles[1]
	assert.Equal(t, domain.SourceExternal, ci.Source)
	_, ok = ci.Script()
	assert.False(t, ok)
	assert.Equal(t, "CI", ci.Activation.Property.Name)

	marker := m.Profiles[2]
	assert.True(t, marker.ActiveByDefault())
	assert.Equal(t, "marker.txt", marker.Activation.File.Exists)

	assert.Nil(t, m.Profiles[3].Activation)

	assert.Equal(t, "/home/dev", ws.SystemProperties["env.HOME"])
	assert.Contains(t, ws.SystemProperties, "env.EMPTY")
	assert.NotContains(t, ws.SystemProperties, "env.")
	assert.Equal(t, runtime.GOOS, ws.SystemProperties["os.name"])
	assert.Equal(t, runtime.GOARCH, ws.SystemProperties["os.arch"])
}

func TestLoad_StandaloneDefaultsModuleName(t *testing.T) {
	tmpDir := filepath.Join(t.TempDir(), "web")
	writeFile(t, filepath.Join(tmpDir, domain.DescriptorFileName), "version: \"1\"\n")

	ws, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)
	require.Len(t, ws.Modules, 1)
	assert.Equal(t, "web", ws.Modules[0].Name)
}

func TestLoad_BubblesUpFromSubdirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, domain.DescriptorFileName), apiDescriptor)
	deep := filepath.Join(tmpDir, "src", "main")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	ws, err := newLoader(t).Load(deep)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, ws.Root)
	assert.Equal(t, "api", ws.Modules[0].Name)
}

func TestLoad_NotFound(t *testing.T) {
	_, err := newLoader(t).Load(t.TempDir())
	require.ErrorIs(t, err, domain.ErrWorkspaceNotFound)
}

func TestLoad_InvalidDescriptors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			content: "profiles: [",
			wantErr: domain.ErrConfigParseFailed,
		},
		{
			name:    "invalid module name",
			content: "module: \"has space\"\n",
			wantErr: domain.ErrInvalidDescriptor,
		},
		{
			name:    "missing profile id",
			content: "module: a\nprofiles:\n  - activeByDefault: true\n",
			wantErr: domain.ErrInvalidDescriptor,
		},
		{
			name:    "duplicate profile id",
			content: "module: a\nprofiles:\n  - id: x\n  - id: x\n",
			wantErr: domain.ErrDuplicateProfile,
		},
		{
			name:    "unknown source",
			content: "module: a\nprofiles:\n  - id: x\n    source: pom\n",
			wantErr: domain.ErrInvalidDescriptor,
		},
		{
			name: "script and property",
			content: `module: a
profiles:
  - id: x
    activation:
      script: "file(a)"
      property: {name: env}
`,
			wantErr: domain.ErrInvalidDescriptor,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeFile(t, filepath.Join(tmpDir, domain.DescriptorFileName), tt.content)

			_, err := newLoader(t).Load(tmpDir)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}
