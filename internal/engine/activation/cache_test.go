package activation_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kindle/internal/adapters/fs"
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/engine/activation"
)

func TestCache_StoreKeepsSetsDisjoint(t *testing.T) {
	t.Parallel()

	c := activation.NewCache(fs.NewFileSystem())

	c.Store("a", true, nil)
	c.Store("a", false, nil)
	c.Store("b", true, nil)

	active, ok := c.Lookup("a")
	assert.True(t, ok)
	assert.False(t, active)

	active, ok = c.Lookup("b")
	assert.True(t, ok)
	assert.True(t, active)

	_, ok = c.Lookup("c")
	assert.False(t, ok)

	nActive, nInactive, _ := c.Size()
	assert.Equal(t, 1, nActive)
	assert.Equal(t, 1, nInactive)
}

func TestCache_RevalidateSkipsSameContext(t *testing.T) {
	t.Parallel()

	c := activation.NewCache(fs.NewFileSystem())
	ctx := domain.NewContext(domain.ContextSpec{})

	first := c.Revalidate(ctx)
	assert.True(t, first.Checked)

	c.Store("a", true, []domain.Dependency{domain.AlwaysFails{}})

	again := c.Revalidate(ctx)
	assert.False(t, again.Checked)
	assert.False(t, again.Cleared())
	_, ok := c.Lookup("a")
	assert.True(t, ok)
}

func TestCache_RevalidateClearsAtFirstFailure(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	flipped := filepath.Join(dir, "flag")
	c := activation.NewCache(fs.NewFileSystem())
	c.Revalidate(domain.NewContext(domain.ContextSpec{}))

	c.Store("a", true, []domain.Dependency{domain.FileExistence{Path: dir, Existed: true}})
	c.Store("b", false, []domain.Dependency{
		domain.FileExistence{Path: flipped, Existed: false},
		domain.AlwaysFails{},
	})

	require.NoError(t, os.WriteFile(flipped, nil, 0o600))
	res := c.Revalidate(domain.NewContext(domain.ContextSpec{}))

	assert.True(t, res.Checked)
	assert.Equal(t, domain.FileExistence{Path: flipped, Existed: false}, res.Failed)
	nActive, nInactive, nDeps := c.Size()
	assert.Zero(t, nActive)
	assert.Zero(t, nInactive)
	assert.Zero(t, nDeps)
	assert.Empty(t, c.Dependencies())
}

func TestCache_RevalidateKeepsValidEntries(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	c := activation.NewCache(fs.NewFileSystem())
	c.Store("a", true, []domain.Dependency{domain.FileExistence{Path: dir, Existed: true}})

	res := c.Revalidate(domain.NewContext(domain.ContextSpec{}))

	assert.True(t, res.Checked)
	assert.False(t, res.Cleared())
	active, ok := c.Lookup("a")
	assert.True(t, ok)
	assert.True(t, active)
	assert.Len(t, c.Dependencies(), 1)
}

func TestCache_DependenciesReturnsCopy(t *testing.T) {
	t.Parallel()

	c := activation.NewCache(fs.NewFileSystem())
	c.Store("a", true, []domain.Dependency{domain.AlwaysFails{}})

	deps := c.Dependencies()
	deps[0] = domain.ProjectDirectory{}

	assert.Equal(t, []domain.Dependency{domain.AlwaysFails{}}, c.Dependencies())
}
