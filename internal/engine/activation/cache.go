package activation

import (
	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
)

// Cache remembers profile classifications together with the dependencies
// that justify them. A profile id is never in both sets.
//
// Cache is not safe for concurrent use; Selector serializes access.
type Cache struct {
	fs       ports.FileSystem
	active   map[domain.InternedString]struct{}
	inactive map[domain.InternedString]struct{}
	deps     []domain.Dependency
	last     domain.ContextID
}

// NewCache creates an empty Cache.
func NewCache(fs ports.FileSystem) *Cache {
	return &Cache{
		fs:       fs,
		active:   make(map[domain.InternedString]struct{}),
		inactive: make(map[domain.InternedString]struct{}),
	}
}

// Revalidation describes what Revalidate did.
type Revalidation struct {
	// Checked is false when ctx was the last context seen.
	Checked bool
	// Failed is the first dependency that no longer holds, or nil.
	Failed domain.Dependency
}

// Cleared reports whether the cache was cleared.
func (r Revalidation) Cleared() bool { return r.Failed != nil }

// Revalidate checks the recorded dependencies in order when ctx differs from
// the last context seen, and clears the whole cache at the first one that
// fails. Dependencies are trusted without checking for the same context.
func (c *Cache) Revalidate(ctx *domain.Context) Revalidation {
	if ctx.ID() == c.last {
		return Revalidation{}
	}
	c.last = ctx.ID()

	for _, dep := range c.deps {
		if !Holds(dep, ctx, c.fs) {
			c.Clear()
			return Revalidation{Checked: true, Failed: dep}
		}
	}
	return Revalidation{Checked: true}
}

// Lookup returns the cached classification of id.
func (c *Cache) Lookup(id string) (active, ok bool) {
	key := domain.NewInternedString(id)
	if _, ok := c.active[key]; ok {
		return true, true
	}
	if _, ok := c.inactive[key]; ok {
		return false, true
	}
	return false, false
}

// Store records the classification of id and the dependencies it relied on.
func (c *Cache) Store(id string, active bool, deps []domain.Dependency) {
	key := domain.NewInternedString(id)
	if active {
		delete(c.inactive, key)
		c.active[key] = struct{}{}
	} else {
		delete(c.active, key)
		c.inactive[key] = struct{}{}
	}
	c.deps = append(c.deps, deps...)
}

// Clear drops every classification and dependency.
func (c *Cache) Clear() {
	clear(c.active)
	clear(c.inactive)
	c.deps = nil
}

// Size returns the number of active and inactive classifications and of
// recorded dependencies.
func (c *Cache) Size() (active, inactive, deps int) {
	return len(c.active), len(c.inactive), len(c.deps)
}

// Dependencies returns a copy of the recorded dependencies.
func (c *Cache) Dependencies() []domain.Dependency {
	return append([]domain.Dependency(nil), c.deps...)
}
