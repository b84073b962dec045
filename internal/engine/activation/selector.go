package activation

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

// Selector decides which profiles are active for a context. One Selector
// owns one Cache; every Select call runs as a single critical section.
type Selector struct {
	eval       *Evaluator
	activators []ports.ProfileActivator
	log        ports.Logger
	tracer     ports.Tracer

	mu    sync.Mutex
	cache *Cache
	stats Stats
	hint  sync.Once
}

// Stats counts what the selector did since it was created.
type Stats struct {
	Calls         int
	Revalidations int
	Clears        int
	Hits          int
	Misses        int
}

// Selection is the outcome of one Select call.
type Selection struct {
	Active []*domain.Profile
	// Hits and Misses count cache lookups of script governed profiles.
	Hits   int
	Misses int
	// Revalidation tells whether the cache was checked or cleared.
	Revalidation Revalidation
}

// NewSelector creates a Selector with an empty cache.
func NewSelector(
	eval *Evaluator,
	fs ports.FileSystem,
	activators []ports.ProfileActivator,
	log ports.Logger,
	tracer ports.Tracer,
) *Selector {
	return &Selector{
		eval:       eval,
		activators: activators,
		log:        log,
		tracer:     tracer,
		cache:      NewCache(fs),
	}
}

// Select returns the active profiles among profiles, in order: first the
// profiles activated by their activation script, then the profiles activated
// by the host default chain. A profile appears once.
func (s *Selector) Select(
	ctx context.Context,
	profiles []*domain.Profile,
	actx *domain.Context,
	problems ports.ProblemSink,
) (sel *Selection, err error) {
	if actx == nil {
		return nil, domain.ErrNilContext
	}
	if err := checkUniqueIDs(profiles); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, span := s.tracer.Start(ctx, "activation.select")
	defer span.End()

	debug, _ := strconv.ParseBool(actx.SystemProperties()[domain.DebugProperty])
	s.hint.Do(func() {
		s.log.Debug("set the system property " + domain.DebugProperty + "=true to trace profile activation")
	})

	defer func() {
		if r := recover(); r != nil {
			err := zerr.With(zerr.New("unexpected panic during profile selection"), "panic", fmt.Sprint(r))
			span.RecordError(err)
			s.log.Error(err)
			panic(r)
		}
	}()

	trace := s.traceFunc(debug)
	trace("select([%s])", strings.Join(domain.ProfileIDs(profiles), ", "))

	view := actx.WithSystemProperty(domain.PresenceProperty, "true")
	sel = &Selection{}
	s.stats.Calls++

	sel.Revalidation = s.cache.Revalidate(view)
	if sel.Revalidation.Checked {
		s.stats.Revalidations++
		if sel.Revalidation.Cleared() {
			s.stats.Clears++
			trace("dependency %s no longer holds; all cached profiles have been cleared", sel.Revalidation.Failed)
		} else {
			trace("context changed; all dependencies still hold")
		}
	}
	trace("context %d: dir=%q active=%v inactive=%v",
		view.ID(), view.ProjectDir(), view.ActiveProfileIDs(), view.InactiveProfileIDs())

	scripted := make([]*domain.Profile, 0, len(profiles))
	for _, p := range profiles {
		if s.classify(p, view, problems, trace, sel) {
			trace("activating profile %s", p.ID)
			scripted = append(scripted, p)
		}
	}

	sel.Active = s.merge(profiles, scripted, view, problems)

	active, inactive, deps := s.cache.Size()
	span.SetAttribute("profiles", len(profiles))
	span.SetAttribute("cache.hits", sel.Hits)
	span.SetAttribute("cache.misses", sel.Misses)
	span.SetAttribute("cache.cleared", sel.Revalidation.Cleared())
	span.SetAttribute("cache.active", active)
	span.SetAttribute("cache.inactive", inactive)
	span.SetAttribute("cache.dependencies", deps)

	if debug || (s.log.DebugEnabled() && len(sel.Active) > 0) {
		msg := "activated profiles: " + strings.Join(domain.ProfileIDs(sel.Active), ", ")
		if debug {
			s.log.Info(msg)
		} else {
			s.log.Debug(msg)
		}
	}
	return sel, nil
}

// classify returns whether the activation script of p holds. Profiles not
// governed by a script are classified inactive.
func (s *Selector) classify(
	p *domain.Profile,
	view *domain.Context,
	problems ports.ProblemSink,
	trace Tracef,
	sel *Selection,
) bool {
	if active, ok := s.cache.Lookup(p.ID); ok {
		trace("cached %s profile %s", classification(active), p.ID)
		sel.Hits++
		s.stats.Hits++
		return active
	}
	sel.Misses++
	s.stats.Misses++

	script, ok := p.Script()
	if !ok {
		s.cache.Store(p.ID, false, nil)
		return false
	}

	guarded := domain.SkipGuard(p.ID, script)
	trace("resolving %s", guarded)
	result := s.eval.Evaluate(p, view, problems, guarded, trace)
	s.cache.Store(p.ID, result.Active, result.Dependencies)
	return result.Active
}

// Stats returns a snapshot of the selector counters.
func (s *Selector) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// CacheDependencies returns the dependencies the cache currently relies on.
func (s *Selector) CacheDependencies() []domain.Dependency {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Dependencies()
}

func (s *Selector) traceFunc(debug bool) Tracef {
	switch {
	case debug:
		return func(format string, args ...any) { s.log.Info(fmt.Sprintf(format, args...)) }
	case s.log.DebugEnabled():
		return func(format string, args ...any) { s.log.Debug(fmt.Sprintf(format, args...)) }
	default:
		return func(string, ...any) {}
	}
}

func classification(active bool) string {
	if active {
		return "active"
	}
	return "inactive"
}

func checkUniqueIDs(profiles []*domain.Profile) error {
	seen := make(map[string]struct{}, len(profiles))
	for _, p := range profiles {
		if _, ok := seen[p.ID]; ok {
			return zerr.With(zerr.Wrap(domain.ErrDuplicateProfile, "cannot select profiles"), "profile", p.ID)
		}
		seen[p.ID] = struct{}{}
	}
	return nil
}
