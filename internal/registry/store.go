// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"strings"

	"github.com/MKhiriev/go-envstore/internal/logger"
)

// Separator splits keys into tree segments.
const Separator = "."

// Store holds the configuration trees of all environments, the active
// environment and the active key prefix.
//
// The zero Store is not usable; construct one with [NewStore].
type Store struct {
	environments Tree
	active       string
	hasActive    bool
	prefix       string

	logger *logger.Logger
}

// Option configures a [Store] at construction time.
type Option func(*Store)

// WithLogger makes the store report silently ignored operations (loading or
// extending from unknown environments) at debug level.
func WithLogger(log *logger.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.logger = log
		}
	}
}

// NewStore returns an empty store with no active environment and an empty
// key prefix.
func NewStore(opts ...Option) *Store {
	s := &Store{
		environments: Tree{},
		logger:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SetActivePrefix sets the prefix prepended to every key passed to [Store.Set]:
// name followed by the separator, or nothing when name is empty.
func (s *Store) SetActivePrefix(name string) {
	if name != "" {
		s.prefix = name + Separator
		return
	}
	s.prefix = ""
}

// Prefix returns the active key prefix.
func (s *Store) Prefix() string {
	return s.prefix
}

// Load activates the named environment and makes it the key prefix for
// [Store.Set]. An unknown name leaves the store untouched; callers that need
// to know must check [Store.Environment] afterwards.
func (s *Store) Load(name string) {
	if _, ok := s.environments[name]; !ok {
		s.logger.Debug().Str("environment", name).Msg("environment is not registered, load ignored")
		return
	}

	s.active = name
	s.hasActive = true
	s.SetActivePrefix(name)
}

// Extend composes the named environment from the parents in extendsFrom.
//
// Parents are applied left to right, each deep-merged over the previous ones,
// so later parents win. Unknown parents are skipped. When the environment
// already exists its own settings are merged last and win over every parent.
// The result replaces (or creates) the environment.
func (s *Store) Extend(name string, extendsFrom []string) {
	merged := Branch(Tree{})

	for i, parent := range extendsFrom {
		source, ok := s.environments[parent]
		if !ok {
			s.logger.Debug().
				Str("environment", name).
				Str("parent", parent).
				Msg("parent environment is not registered, skipped")
			continue
		}

		if i == 0 {
			merged = source
			continue
		}
		merged = mergeValues(merged, source)
	}

	if own, ok := s.environments[name]; ok {
		merged = mergeValues(merged, own)
	}

	s.environments[name] = merged
}

// Set stores value under the active prefix followed by key. The key is split
// on the separator into nested tree segments and merged into the registry, so
// setting "db.host" never drops a sibling such as "db.port".
func (s *Store) Set(key string, value Value) {
	segments := strings.Split(s.prefix+key, Separator)
	s.environments = mergeTrees(s.environments, branchFor(segments, value))
}

// Read resolves key and reports whether anything was found.
//
// A key whose first segment names an environment is resolved from the top of
// the registry; any other key is resolved inside the active environment.
// Resolution walks the segments and stops at the first one that is missing,
// returning the deepest value reached so far. Reading "db.host.extra" where
// "db.host" is a string therefore returns that string. The environment segment
// of a qualified key is not a value of its own, so "dev.missing" resolves to
// nothing while "dev" alone returns the whole environment. Null leaves count
// as missing.
func (s *Store) Read(key string) (Value, bool) {
	segments := strings.Split(key, Separator)

	var (
		root      Tree
		qualified bool
	)
	if _, ok := s.environments[segments[0]]; ok {
		root, qualified = s.environments, true
	} else if env, ok := s.activeTree(); ok {
		root = env
	} else {
		return Value{}, false
	}

	var (
		found    Value
		resolved bool
	)
	current := root
	for i, segment := range segments {
		if current == nil {
			break
		}
		next, ok := current[segment]
		if !ok || next.IsNull() {
			break
		}

		current = next.t
		// the environment segment of a qualified key only selects the root
		if qualified && i == 0 && len(segments) > 1 {
			continue
		}
		found, resolved = next, true
	}

	if !resolved {
		return Value{}, false
	}

	return found.clone(), true
}

// Environment returns the active environment name, if one was loaded.
func (s *Store) Environment() (string, bool) {
	return s.active, s.hasActive
}

// Config returns a deep copy of the whole registry.
func (s *Store) Config() Tree {
	return s.environments.Clone()
}

// Environments returns the sorted names of all top-level entries.
func (s *Store) Environments() []string {
	return s.environments.Keys()
}

func (s *Store) activeTree() (Tree, bool) {
	if !s.hasActive {
		return nil, false
	}
	env, ok := s.environments[s.active]
	if !ok || !env.IsTree() {
		return nil, false
	}

	return env.t, true
}
