package domain

import (
	"maps"
	"runtime"
	"strings"
	"time"
)

const (
	// DescriptorFileName is the module descriptor file name.
	DescriptorFileName = "kindle.yaml"
	// WorkFileName is the workspace file name.
	WorkFileName = "kindle.work.yaml"
	// StateDirName is the directory holding kindle state inside the workspace root.
	StateDirName = ".kindle"
	// RecordFileName is the activation record file inside StateDirName.
	RecordFileName = "activation.json"
)

// Module is one module of a workspace with its declared profiles.
type Module struct {
	Name           string
	Dir            string
	DescriptorPath string
	Properties     map[string]string
	Profiles       []*Profile
}

// Workspace is a loaded set of modules sharing one set of system properties.
type Workspace struct {
	Root             string
	SystemProperties map[string]string
	Modules          []*Module
}

// Module returns the module with the given name.
func (w *Workspace) Module(name string) (*Module, bool) {
	for _, m := range w.Modules {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// Overrides are the command line inputs applied to every module context.
type Overrides struct {
	UserProperties     map[string]string
	SystemProperties   map[string]string
	ActiveProfileIDs   []string
	InactiveProfileIDs []string
}

// NewModuleContext builds a fresh Context for m.
func (w *Workspace) NewModuleContext(m *Module, o Overrides) *Context {
	system := make(map[string]string, len(w.SystemProperties)+len(o.SystemProperties))
	maps.Copy(system, w.SystemProperties)
	maps.Copy(system, o.SystemProperties)
	return NewContext(ContextSpec{
		ActiveProfileIDs:   o.ActiveProfileIDs,
		InactiveProfileIDs: o.InactiveProfileIDs,
		SystemProperties:   system,
		UserProperties:     o.UserProperties,
		ProjectProperties:  m.Properties,
		ProjectDir:         m.Dir,
	})
}

// ModuleReport is the outcome of profile selection for one module.
type ModuleReport struct {
	Module         string       `json:"module"`
	ActiveProfiles []string     `json:"active"`
	Problems       []Problem    `json:"problems,omitempty"`
	Status         VertexStatus `json:"status"`
	Fingerprint    string       `json:"fingerprint,omitzero"`
	// Changed is set when the activation differs from the stored record.
	Changed bool `json:"changed,omitzero"`
}

// HasErrors reports whether any problem is an error or worse.
func (r *ModuleReport) HasErrors() bool {
	for _, p := range r.Problems {
		if p.Severity >= SeverityError {
			return true
		}
	}
	return false
}

// ActivationRecord is the persisted activation of a module.
type ActivationRecord struct {
	Module         string    `json:"module"`
	ActiveProfiles []string  `json:"active"`
	Fingerprint    string    `json:"fingerprint"`
	Timestamp      time.Time `json:"timestamp,omitzero"`
}

// HostProperties returns the system properties describing the host: env.<NAME>
// for every KEY=VALUE pair of environ, os.name and os.arch.
func HostProperties(environ []string) map[string]string {
	props := make(map[string]string, len(environ)+2)
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			props["env."+k] = v
		}
	}
	props["os.name"] = runtime.GOOS
	props["os.arch"] = runtime.GOARCH
	return props
}
