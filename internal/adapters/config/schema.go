package config

import "gopkg.in/yaml.v3"

// Workfile represents the structure of the kindle.work.yaml configuration file.
type Workfile struct {
	Version string            `yaml:"version"`
	Root    string            `yaml:"root"`
	System  map[string]string `yaml:"system"`
	Modules []string          `yaml:"modules"`
}

// Descriptor represents the structure of the kindle.yaml module descriptor.
type Descriptor struct {
	Version    string            `yaml:"version"`
	Module     string            `yaml:"module"`
	Properties map[string]string `yaml:"properties"`
	Profiles   []*ProfileDTO     `yaml:"profiles"`
}

// ProfileDTO represents a profile declaration in a descriptor.
type ProfileDTO struct {
	ID              string         `yaml:"id"`
	Source          string         `yaml:"source"`
	ActiveByDefault bool           `yaml:"activeByDefault"`
	Activation      *ActivationDTO `yaml:"activation"`

	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// UnmarshalYAML decodes the profile and remembers where it was declared.
func (p *ProfileDTO) UnmarshalYAML(value *yaml.Node) error {
	type plain ProfileDTO
	if err := value.Decode((*plain)(p)); err != nil {
		return err
	}
	p.Line, p.Column = value.Line, value.Column
	return nil
}

// ActivationDTO represents the activation block of a profile.
type ActivationDTO struct {
	Script   *ScriptDTO   `yaml:"script"`
	Property *PropertyDTO `yaml:"property"`
	File     *FileDTO     `yaml:"file"`
}

// ScriptDTO is an activation script together with its position.
type ScriptDTO struct {
	Value  string
	Line   int
	Column int
}

// UnmarshalYAML decodes a scalar script and remembers where it was declared.
func (s *ScriptDTO) UnmarshalYAML(value *yaml.Node) error {
	if err := value.Decode(&s.Value); err != nil {
		return err
	}
	s.Line, s.Column = value.Line, value.Column
	return nil
}

// PropertyDTO is the host-native property activation.
type PropertyDTO struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// FileDTO is the host-native file activation.
type FileDTO struct {
	Exists  string `yaml:"exists"`
	Missing string `yaml:"missing"`
}
