// Package config provides the workspace configuration loader for kindle.
package config

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.trai.ch/kindle/internal/core/domain"
	"go.trai.ch/kindle/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// DirResolver expands module glob patterns into directories.
type DirResolver interface {
	ResolveDirs(patterns []string, root string) ([]string, error)
}

// Loader implements ports.ConfigLoader using YAML files.
type Loader struct {
	Logger   ports.Logger
	Resolver DirResolver
	// Environ returns the process environment as KEY=VALUE pairs.
	Environ func() []string
}

// NewLoader creates a new Loader with the given logger and module resolver.
func NewLoader(logger ports.Logger, resolver DirResolver) *Loader {
	return &Loader{Logger: logger, Resolver: resolver, Environ: os.Environ}
}

// Mode represents the configuration mode of kindle.
type Mode string

const (
	// ModeWorkspace indicates that kindle has a workfile.
	ModeWorkspace Mode = "workspace"
	// ModeStandalone indicates that kindle has only one module descriptor.
	ModeStandalone Mode = "standalone"
)

var validModuleNameRegex = regexp.MustCompile("^[a-zA-Z0-9_.-]+$")

// Load discovers the configuration from cwd and returns the loaded workspace.
func (l *Loader) Load(cwd string) (*domain.Workspace, error) {
	configPath, mode, err := l.findConfiguration(cwd)
	if err != nil {
		return nil, err
	}

	switch mode {
	case ModeStandalone:
		return l.loadStandalone(configPath)
	case ModeWorkspace:
		return l.loadWorkfile(configPath)
	default:
		return nil, zerr.With(zerr.Wrap(domain.ErrWorkspaceNotFound, "unsupported mode"), "mode", mode)
	}
}

func (l *Loader) findConfiguration(cwd string) (string, Mode, error) {
	currentDir := cwd
	var standaloneCandidate string

	for {
		workfilePath := filepath.Join(currentDir, domain.WorkFileName)
		if _, err := os.Stat(workfilePath); err == nil {
			return workfilePath, ModeWorkspace, nil
		}

		if standaloneCandidate == "" {
			descriptorPath := filepath.Join(currentDir, domain.DescriptorFileName)
			if _, err := os.Stat(descriptorPath); err == nil {
				standaloneCandidate = descriptorPath
			}
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root
			break
		}
		currentDir = parentDir
	}

	if standaloneCandidate != "" {
		return standaloneCandidate, ModeStandalone, nil
	}

	return "", "", zerr.With(zerr.Wrap(domain.ErrWorkspaceNotFound, "discovery failed"), "cwd", cwd)
}

func (l *Loader) loadStandalone(configPath string) (*domain.Workspace, error) {
	dir := filepath.Dir(configPath)
	module, err := l.loadModule(configPath, filepath.Base(dir))
	if err != nil {
		return nil, err
	}

	return &domain.Workspace{
		Root:             dir,
		SystemProperties: l.systemProperties(nil),
		Modules:          []*domain.Module{module},
	}, nil
}

func (l *Loader) loadWorkfile(configPath string) (*domain.Workspace, error) {
	var workfile Workfile
	if err := readAndUnmarshalYAML(configPath, &workfile); err != nil {
		return nil, err
	}

	root := resolveRoot(configPath, workfile.Root)
	ws := &domain.Workspace{
		Root:             root,
		SystemProperties: l.systemProperties(workfile.System),
	}

	dirs, err := l.Resolver.ResolveDirs(workfile.Modules, root)
	if err != nil {
		return nil, err
	}

	// Track module names to ensure uniqueness
	names := make(map[string]string)
	for _, dir := range dirs {
		relPath, _ := filepath.Rel(root, dir)

		descriptorPath := filepath.Join(dir, domain.DescriptorFileName)
		if _, statErr := os.Stat(descriptorPath); os.IsNotExist(statErr) {
			l.Logger.Warn(fmt.Sprintf("%s missing in module %s, skipping", domain.DescriptorFileName, relPath))
			continue
		}

		module, err := l.loadModule(descriptorPath, "")
		if err != nil {
			return nil, zerr.With(err, "directory", relPath)
		}

		if existingPath, exists := names[module.Name]; exists {
			err := zerr.With(zerr.Wrap(domain.ErrDuplicateModule, "cannot load workspace"), "module", module.Name)
			err = zerr.With(err, "first_occurrence", existingPath)
			return nil, zerr.With(err, "duplicate_at", relPath)
		}
		names[module.Name] = relPath

		ws.Modules = append(ws.Modules, module)
	}

	return ws, nil
}

// loadModule reads one descriptor. fallbackName names the module when the
// descriptor does not.
func (l *Loader) loadModule(descriptorPath, fallbackName string) (*domain.Module, error) {
	var descriptor Descriptor
	if err := readAndUnmarshalYAML(descriptorPath, &descriptor); err != nil {
		return nil, err
	}

	name := descriptor.Module
	if name == "" {
		name = fallbackName
	}
	if name == "" {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidDescriptor, "module name is required"), "path", descriptorPath)
	}
	if !validModuleNameRegex.MatchString(name) {
		err := zerr.With(zerr.Wrap(domain.ErrInvalidDescriptor, "invalid module name"), "module", name)
		return nil, zerr.With(err, "path", descriptorPath)
	}

	profiles, err := buildProfiles(descriptorPath, descriptor.Profiles)
	if err != nil {
		return nil, zerr.With(err, "module", name)
	}

	return &domain.Module{
		Name:           name,
		Dir:            filepath.Dir(descriptorPath),
		DescriptorPath: descriptorPath,
		Properties:     descriptor.Properties,
		Profiles:       profiles,
	}, nil
}

func buildProfiles(descriptorPath string, dtos []*ProfileDTO) ([]*domain.Profile, error) {
	profiles := make([]*domain.Profile, 0, len(dtos))
	seen := make(map[string]struct{}, len(dtos))

	for _, dto := range dtos {
		if dto == nil {
			continue
		}
		id := strings.TrimSpace(dto.ID)
		loc := domain.Location{File: descriptorPath, Line: dto.Line, Column: dto.Column}
		if id == "" {
			return nil, zerr.With(zerr.Wrap(domain.ErrInvalidDescriptor, "profile id is required"), "location", loc.String())
		}
		if _, ok := seen[id]; ok {
			return nil, zerr.With(zerr.Wrap(domain.ErrDuplicateProfile, "cannot load descriptor"), "profile", id)
		}
		seen[id] = struct{}{}

		source, err := parseSource(dto.Source)
		if err != nil {
			return nil, zerr.With(err, "profile", id)
		}

		activation, err := buildActivation(descriptorPath, dto)
		if err != nil {
			return nil, zerr.With(err, "profile", id)
		}

		profiles = append(profiles, &domain.Profile{
			ID:         id,
			Source:     source,
			Activation: activation,
			Location:   loc,
		})
	}
	return profiles, nil
}

func parseSource(source string) (domain.ProfileSource, error) {
	switch domain.ProfileSource(source) {
	case "", domain.SourceDescriptor:
		return domain.SourceDescriptor, nil
	case domain.SourceExternal:
		return domain.SourceExternal, nil
	default:
		return "", zerr.With(zerr.Wrap(domain.ErrInvalidDescriptor, "unknown profile source"), "source", source)
	}
}

func buildActivation(descriptorPath string, dto *ProfileDTO) (*domain.Activation, error) {
	if dto.Activation == nil && !dto.ActiveByDefault {
		return nil, nil
	}

	activation := &domain.Activation{ActiveByDefault: dto.ActiveByDefault}
	a := dto.Activation
	if a == nil {
		return activation, nil
	}

	if a.Script != nil && a.Property != nil {
		return nil, zerr.Wrap(domain.ErrInvalidDescriptor, "activation script and property are mutually exclusive")
	}

	switch {
	case a.Script != nil:
		activation.Property = &domain.ActivationProperty{
			Name:     domain.MarkerPropertyName,
			Value:    a.Script.Value,
			Location: domain.Location{File: descriptorPath, Line: a.Script.Line, Column: a.Script.Column},
		}
	case a.Property != nil:
		activation.Property = &domain.ActivationProperty{
			Name:     a.Property.Name,
			Value:    a.Property.Value,
			Location: domain.Location{File: descriptorPath, Line: dto.Line, Column: dto.Column},
		}
	}
	if a.File != nil {
		activation.File = &domain.ActivationFile{Exists: a.File.Exists, Missing: a.File.Missing}
	}
	return activation, nil
}

// systemProperties returns the host properties with the workfile system map
// on top.
func (l *Loader) systemProperties(workfile map[string]string) map[string]string {
	var environ []string
	if l.Environ != nil {
		environ = l.Environ()
	}
	props := domain.HostProperties(environ)
	maps.Copy(props, workfile)
	return props
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return zerr.With(zerr.Wrap(domain.ErrConfigParseFailed, parseErr.Error()), "path", configPath)
	}

	return nil
}
