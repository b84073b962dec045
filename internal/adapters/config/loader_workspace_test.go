package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindle/internal/adapters/config"
	"go.trai.ch/kindle/internal/adapters/fs"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func TestLoad_Workspace(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, domain.WorkFileName), `
version: "1"
modules: ["services/*"]
system:
  os.name: plan9
  region: eu
`)
	writeFile(t, filepath.Join(tmpDir, "services", "b", domain.DescriptorFileName), "module: b\n")
	writeFile(t, filepath.Join(tmpDir, "services", "a", domain.DescriptorFileName), "module: a\n")
	writeFile(t, filepath.Join(tmpDir, "services", "a", "src", "keep"), "")

	ws, err := newLoader(t).Load(filepath.Join(tmpDir, "services", "a", "src"))
	require.NoError(t, err)

	assert.Equal(t, tmpDir, ws.Root)
	require.Len(t, ws.Modules, 2)
	assert.Equal(t, "a", ws.Modules[0].Name)
	assert.Equal(t, "b", ws.Modules[1].Name)
	assert.Equal(t, filepath.Join(tmpDir, "services", "a"), ws.Modules[0].Dir)

	// Workfile system properties override the host ones.
	assert.Equal(t, "plan9", ws.SystemProperties["os.name"])
	assert.Equal(t, "eu", ws.SystemProperties["region"])

	m, ok := ws.Module("b")
	require.True(t, ok)
	assert.Equal(t, "b", m.Name)
	_, ok = ws.Module("c")
	assert.False(t, ok)
}

func TestLoad_WorkspaceWinsOverNearerDescriptor(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, domain.WorkFileName), "modules: [\"app\"]\n")
	writeFile(t, filepath.Join(tmpDir, "app", domain.DescriptorFileName), "module: app\n")

	ws, err := newLoader(t).Load(filepath.Join(tmpDir, "app"))
	require.NoError(t, err)
	assert.Equal(t, tmpDir, ws.Root)
}

func TestLoad_WorkspaceSkipsDirectoriesWithoutDescriptor(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, domain.WorkFileName), "modules: [\"*\"]\n")
	writeFile(t, filepath.Join(tmpDir, "app", domain.DescriptorFileName), "module: app\n")
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "docs"), 0o750))

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Warn("kindle.yaml missing in module docs, skipping")

	ws, err := config.NewLoader(log, fs.NewResolver()).Load(tmpDir)
	require.NoError(t, err)
	require.Len(t, ws.Modules, 1)
	assert.Equal(t, "app", ws.Modules[0].Name)
}

func TestLoad_WorkspaceDuplicateModule(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, domain.WorkFileName), "modules: [\"*\"]\n")
	writeFile(t, filepath.Join(tmpDir, "one", domain.DescriptorFileName), "module: same\n")
	writeFile(t, filepath.Join(tmpDir, "two", domain.DescriptorFileName), "module: same\n")

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrDuplicateModule)
}

func TestLoad_WorkspaceRequiresModuleName(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, domain.WorkFileName), "modules: [\"app\"]\n")
	writeFile(t, filepath.Join(tmpDir, "app", domain.DescriptorFileName), "version: \"1\"\n")

	_, err := newLoader(t).Load(tmpDir)
	require.ErrorIs(t, err, domain.ErrInvalidDescriptor)
}

func TestLoad_WorkspaceCustomRoot(t *testing.T) {
	tmpDir := t.TempDir()
	writeFile(t, filepath.Join(tmpDir, "config", domain.WorkFileName), "root: ..\nmodules: [\"app\"]\n")
	writeFile(t, filepath.Join(tmpDir, "app", domain.DescriptorFileName), "module: app\n")

	ws, err := newLoader(t).Load(filepath.Join(tmpDir, "config"))
	require.NoError(t, err)
	assert.Equal(t, tmpDir, ws.Root)
	require.Len(t, ws.Modules, 1)
}
