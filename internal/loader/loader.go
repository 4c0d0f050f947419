// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-envstore/internal/logger"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

// Loader applies environment definitions to a registry.
type Loader struct {
	registry Registry
	logger   *logger.Logger

	// defined holds every environment registered through this loader.
	defined map[string]struct{}
}

// NewLoader constructs a Loader writing into reg.
func NewLoader(reg Registry, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{
		registry: reg,
		logger:   log,
		defined:  make(map[string]struct{}),
	}
}

// Apply reads every source in order and registers its environments.
//
// A source is applied in two passes. First the active prefix is cleared and
// every environment's own settings are set under its name. Then each
// environment is extended from its parents, parents before children, so a
// parent may be declared after the environments that extend it and an
// environment's own settings always take precedence. An environment without
// settings or parents is still registered (as an empty tree).
//
// Parents that no source applied so far defines are skipped by the registry
// and reported as warnings. Apply stops at the first failing source;
// environments applied before the failure stay in the registry.
func (l *Loader) Apply(ctx context.Context, sources ...Source) error {
	for _, source := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		envs, err := source.Environments(ctx)
		if err != nil {
			l.logger.Err(err).Str("source", source.Name()).Msg("error reading environment definitions")
			return fmt.Errorf("error loading source %s: %w", source.Name(), err)
		}

		for _, env := range envs {
			if err := validateName(env.Name); err != nil {
				return fmt.Errorf("error loading source %s: %w", source.Name(), err)
			}
		}

		l.registry.SetActivePrefix("")
		for _, env := range envs {
			l.setSettings(env)
		}
		for _, env := range extendOrder(envs) {
			l.extend(source.Name(), env)
		}

		l.logger.Info().
			Str("source", source.Name()).
			Int("environments", len(envs)).
			Msg("environment definitions loaded")
	}

	return nil
}

func (l *Loader) setSettings(env Environment) {
	if len(env.Settings) > 0 {
		l.registry.Set(env.Name, registry.Branch(env.Settings))
	}
	l.defined[env.Name] = struct{}{}
}

func (l *Loader) extend(source string, env Environment) {
	for _, parent := range env.Extends {
		if _, ok := l.defined[parent]; !ok {
			l.logger.Warn().
				Str("source", source).
				Str("environment", env.Name).
				Str("parent", parent).
				Msg("parent environment is not defined by any loaded source, skipped")
		}
	}
	l.registry.Extend(env.Name, env.Extends)

	l.logger.Debug().
		Str("environment", env.Name).
		Strs("extends", env.Extends).
		Int("settings", len(env.Settings)).
		Msg("environment registered")
}

// extendOrder sorts envs so that every environment comes after the parents
// declared in the same slice, keeping declaration order otherwise. Cycles are
// cut where they are first detected.
func extendOrder(envs []Environment) []Environment {
	const (
		unvisited = iota
		visiting
		visited
	)

	index := make(map[string]int, len(envs))
	for i, env := range envs {
		if _, ok := index[env.Name]; !ok {
			index[env.Name] = i
		}
	}

	state := make([]int, len(envs))
	ordered := make([]Environment, 0, len(envs))

	var visit func(i int)
	visit = func(i int) {
		if state[i] != unvisited {
			return
		}
		state[i] = visiting
		for _, parent := range envs[i].Extends {
			if j, ok := index[parent]; ok {
				visit(j)
			}
		}
		state[i] = visited
		ordered = append(ordered, envs[i])
	}

	for i := range envs {
		visit(i)
	}

	return ordered
}

func validateName(name string) error {
	if name == "" || strings.Contains(name, registry.Separator) {
		return fmt.Errorf("%w: %q", ErrInvalidEnvironmentName, name)
	}

	return nil
}
