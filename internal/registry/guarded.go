// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import "sync"

// Guarded serialises access to a [Store] so it can be shared between
// goroutines. Reads run in parallel; writes are exclusive.
type Guarded struct {
	mu    sync.RWMutex
	store *Store
}

// NewGuarded wraps store. The caller must not use store directly afterwards.
func NewGuarded(store *Store) *Guarded {
	return &Guarded{store: store}
}

// Do runs fn with exclusive access to the underlying store, for operation
// groups that must not interleave with other callers (e.g. Load then Read).
func (g *Guarded) Do(fn func(s *Store)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fn(g.store)
}

// SetActivePrefix runs [Store.SetActivePrefix] under the write lock.
func (g *Guarded) SetActivePrefix(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.SetActivePrefix(name)
}

// Load runs [Store.Load] under the write lock. Use [Guarded.Do] to check the
// outcome atomically.
func (g *Guarded) Load(name string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.Load(name)
}

// Extend runs [Store.Extend] under the write lock.
func (g *Guarded) Extend(name string, extendsFrom []string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.Extend(name, extendsFrom)
}

// Set runs [Store.Set] under the write lock.
func (g *Guarded) Set(key string, value Value) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store.Set(key, value)
}

// Read runs [Store.Read] under the read lock.
func (g *Guarded) Read(key string) (Value, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.store.Read(key)
}

// Prefix returns the active key prefix.
func (g *Guarded) Prefix() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.store.Prefix()
}

// Environment returns the active environment name, if one was loaded.
func (g *Guarded) Environment() (string, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.store.Environment()
}

// Config returns a deep copy of the whole registry.
func (g *Guarded) Config() Tree {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.store.Config()
}

// Environments returns the sorted names of all top-level entries.
func (g *Guarded) Environments() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.store.Environments()
}
