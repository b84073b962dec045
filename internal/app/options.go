package app

import (
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
)

// SelectOptions configures Select and Watch.
type SelectOptions struct {
	// Dir is where workspace discovery starts. Empty means the working directory.
	Dir string
	// Modules restricts the run to the named modules.
	Modules []string
	// Properties are -D definitions, "key=value" or "key".
	Properties []string
	// Profiles are -P lists such as "a,!b".
	Profiles []string
	// Trace enables the activation trace for every selection call.
	Trace bool
	// JSON prints machine readable reports.
	JSON bool
	// Record stores the activation of every module and flags changes.
	Record bool
	// Parallelism bounds concurrent module selection. Zero means one per CPU.
	Parallelism int
}

// EvalOptions configures Eval.
type EvalOptions struct {
	Dir        string
	Properties []string
	Profiles   []string
	Trace      bool
	JSON       bool
}

// ParseProperties turns -D definitions into a property map. A definition
// without "=" sets the property to "true".
func ParseProperties(defs []string) map[string]string {
	props := make(map[string]string, len(defs))
	for _, def := range defs {
		key, value, ok := strings.Cut(def, "=")
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if !ok {
			value = "true"
		}
		props[key] = value
	}
	return props
}

// ParseProfiles splits -P lists into active and inactive profile ids. An id
// prefixed with "!" or "-" is inactive; a "+" prefix is ignored.
func ParseProfiles(lists []string) (active, inactive []string) {
	for _, list := range lists {
		for id := range strings.SplitSeq(list, ",") {
			id = strings.TrimSpace(id)
			switch {
			case id == "":
			case strings.HasPrefix(id, "!"), strings.HasPrefix(id, "-"):
				if rest := strings.TrimSpace(id[1:]); rest != "" {
					inactive = append(inactive, rest)
				}
			default:
				if rest := strings.TrimSpace(strings.TrimPrefix(id, "+")); rest != "" {
					active = append(active, rest)
				}
			}
		}
	}
	return active, inactive
}

func overrides(properties, profiles []string, trace bool) domain.Overrides {
	o := domain.Overrides{UserProperties: ParseProperties(properties)}
	o.ActiveProfileIDs, o.InactiveProfileIDs = ParseProfiles(profiles)
	if trace {
		o.SystemProperties = map[string]string{domain.DebugProperty: "true"}
	}
	return o
}
