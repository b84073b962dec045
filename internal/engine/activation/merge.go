package activation

import (
	"fmt"
	"slices"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
)

// merge appends the outcome of the host default chain to the script
// activated profiles. Default active profiles declared in the descriptor are
// dropped when a descriptor profile was activated by any mechanism.
func (s *Selector) merge(
	profiles, scripted []*domain.Profile,
	view *domain.Context,
	problems ports.ProblemSink,
) []*domain.Profile {
	descriptorTriggered := slices.ContainsFunc(scripted, (*domain.Profile).FromDescriptor)

	result := make([]*domain.Profile, 0, len(profiles))
	result = append(result, scripted...)

	var pendingDefaults []*domain.Profile
	for _, p := range profiles {
		if slices.Contains(view.InactiveProfileIDs(), p.ID) {
			continue
		}
		switch {
		case slices.Contains(view.ActiveProfileIDs(), p.ID) || s.hostActive(p, view, problems):
			result = append(result, p)
			if p.FromDescriptor() {
				descriptorTriggered = true
			}
		case p.ActiveByDefault():
			if p.FromDescriptor() {
				pendingDefaults = append(pendingDefaults, p)
			} else {
				result = append(result, p)
			}
		}
	}
	if !descriptorTriggered {
		result = append(result, pendingDefaults...)
	}
	return dedupe(result)
}

// hostActive reports whether every host activator configured for p agrees
// that p is active. A profile no activator is configured for is inactive.
func (s *Selector) hostActive(p *domain.Profile, view *domain.Context, problems ports.ProblemSink) (active bool) {
	defer func() {
		if r := recover(); r != nil {
			s.reportActivatorFailure(p, problems, zerr.With(zerr.New("activator panicked: "+fmt.Sprint(r)), "panic", fmt.Sprint(r)))
			active = false
		}
	}()

	present := make([]ports.ProfileActivator, 0, len(s.activators))
	for _, a := range s.activators {
		if a.PresentInConfig(p, view, problems) {
			present = append(present, a)
		}
	}
	if len(present) == 0 {
		return false
	}

	active = true
	for _, a := range present {
		ok, err := a.IsActive(p, view, problems)
		if err != nil {
			s.reportActivatorFailure(p, problems, err)
			return false
		}
		active = active && ok
	}
	return active
}

func (s *Selector) reportActivatorFailure(p *domain.Profile, problems ports.ProblemSink, err error) {
	problems.Add(domain.Problem{
		Severity:  domain.SeverityError,
		ProfileID: p.ID,
		Message:   fmt.Sprintf("Failed to determine activation for profile %s: %v", p.ID, err),
		Location:  p.Location,
		Err:       zerr.With(zerr.Wrap(domain.ErrActivatorFailed, err.Error()), "profile", p.ID),
	})
}

func dedupe(profiles []*domain.Profile) []*domain.Profile {
	seen := make(map[string]struct{}, len(profiles))
	out := profiles[:0]
	for _, p := range profiles {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	return out
}
