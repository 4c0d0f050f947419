// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/MKhiriev/go-envstore/internal/registry"
)

// definitionFile is the on-disk layout shared by every supported format.
type definitionFile struct {
	Environments []environmentDefinition `json:"environments" yaml:"environments" toml:"environments"`
}

type environmentDefinition struct {
	Name     string         `json:"name" yaml:"name" toml:"name"`
	Extends  []string       `json:"extends" yaml:"extends" toml:"extends"`
	Settings map[string]any `json:"settings" yaml:"settings" toml:"settings"`
}

// FileSource reads environment definitions from a JSON, YAML or TOML file.
// The format is chosen by the file extension.
type FileSource struct {
	path string
}

// NewFileSource returns a source reading the definition file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name returns the file path.
func (s *FileSource) Name() string {
	return s.path
}

// Environments reads and decodes the definition file.
func (s *FileSource) Environments(ctx context.Context) ([]Environment, error) {
	unmarshal, err := unmarshalerFor(s.path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("error reading definition file: %w", err)
	}

	var file definitionFile
	if err = unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("error decoding definition file: %w", err)
	}

	envs := make([]Environment, 0, len(file.Environments))
	for _, def := range file.Environments {
		settings, err := settingsTree(def.Settings)
		if err != nil {
			return nil, fmt.Errorf("environment %q: %w", def.Name, err)
		}
		envs = append(envs, Environment{
			Name:     def.Name,
			Extends:  def.Extends,
			Settings: settings,
		})
	}

	return envs, nil
}

func unmarshalerFor(path string) (func([]byte, any) error, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return json.Unmarshal, nil
	case ".yaml", ".yml":
		return func(data []byte, v any) error { return yaml.Unmarshal(data, v) }, nil
	case ".toml":
		return toml.Unmarshal, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// settingsTree converts decoded settings into a tree. Top-level keys are
// dotted paths relative to the environment, as in the SQL source, so
// "db.host: x" and "db: {host: x}" describe the same setting. Keys are applied
// in sorted order; a dotted key therefore wins over the subtree it extends.
func settingsTree(settings map[string]any) (registry.Tree, error) {
	if len(settings) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(settings))
	for key := range settings {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	scratch := registry.NewStore()
	for _, key := range keys {
		value, err := registry.FromAny(settings[key])
		if err != nil {
			return nil, fmt.Errorf("%w: key %q: %w", ErrInvalidSettings, key, err)
		}
		scratch.Set(key, value)
	}

	return scratch.Config(), nil
}
