package specfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyFile    = errors.New("file is empty")
	ErrMultipleYAML = errors.New("can only handle 1 yaml file")
)

const (
	explicitMarker = "@EXPLICIT"
	platformPrefix = "# platform: "
)

// Kind identifies the format of a spec file
type Kind string

const (
	KindEnvironment Kind = "environment"
	KindExplicit    Kind = "explicit"
	KindPlain       Kind = "plain"
)

// Environment is the YAML environment file format
type Environment struct {
	Name         string   `yaml:"name,omitempty"`
	Channels     []string `yaml:"channels,omitempty"`
	Dependencies []string `yaml:"dependencies"`
}

// File is the parsed content of one spec file
type File struct {
	Channels []string `json:"channels"`
	Kind     Kind     `json:"kind"`
	Name     string   `json:"name,omitempty"`
	Path     string   `json:"path"`
	// Platform is only set for explicit files that declare one
	Platform string   `json:"platform,omitempty"`
	Specs    []string `json:"specs"`
}

// IsYAML reports whether path names an environment file
func IsYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yml" || ext == ".yaml"
}

// Parse reads one spec file
func Parse(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read spec file: %w", err)
	}

	if IsYAML(path) {
		return parseEnvironment(path, data)
	}
	return parseText(path, data)
}

// ParseFiles reads several spec files. A YAML environment file may only be
// given on its own.
func ParseFiles(paths []string) ([]*File, error) {
	if len(paths) > 1 {
		for _, p := range paths {
			if IsYAML(p) {
				return nil, fmt.Errorf("%w: %s", ErrMultipleYAML, p)
			}
		}
	}

	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		f, err := Parse(p)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func parseEnvironment(path string, data []byte) (*File, error) {
	var env Environment
	if err := yaml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("could not read environment file %s: %w", path, err)
	}

	return &File{
		Channels: env.Channels,
		Kind:     KindEnvironment,
		Name:     env.Name,
		Path:     path,
		Specs:    env.Dependencies,
	}, nil
}

func parseText(path string, data []byte) (*File, error) {
	lines := splitLines(string(data))
	if len(lines) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyFile, path)
	}

	for i, line := range lines {
		if !strings.HasPrefix(line, explicitMarker) {
			continue
		}

		file := &File{Kind: KindExplicit, Path: path}
		for _, prev := range lines[:i] {
			if strings.HasPrefix(prev, platformPrefix) {
				file.Platform = strings.TrimPrefix(prev, platformPrefix)
				break
			}
		}
		for _, spec := range lines[i+1:] {
			if spec != "" {
				file.Specs = append(file.Specs, spec)
			}
		}
		return file, nil
	}

	file := &File{Kind: KindPlain, Path: path}
	for _, line := range lines {
		if line == "" || line[0] == '#' || line[0] == '@' {
			continue
		}
		file.Specs = append(file.Specs, line)
	}
	return file, nil
}

// splitLines trims every line and returns nil for whitespace-only input
func splitLines(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(s, "\n")
	lines := make([]string, len(raw))
	for i, l := range raw {
		lines[i] = strings.TrimSpace(l)
	}
	return lines
}
