// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides a client for a registry served by another
// envstore process over its REST API.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is], e.g. [ErrNotFound] for an
// unresolved key or an unknown environment.
package adapter

import (
	"context"

	"github.com/MKhiriev/go-envstore/internal/registry"
)

// RegistryReader is the part of the registry surface that inspecting
// commands need. It is served both by a remote server and by a registry
// loaded in-process.
type RegistryReader interface {
	// Environment returns the active environment of the registry, or
	// [ErrNotFound] when none is loaded.
	Environment(ctx context.Context) (string, error)

	// Environments returns the sorted top-level names.
	Environments(ctx context.Context) ([]string, error)

	// Config returns the whole registry.
	Config(ctx context.Context) (registry.Tree, error)

	// Read resolves key. An unresolved key yields [ErrNotFound].
	Read(ctx context.Context, key string) (registry.Value, error)
}

// RegistryAdapter mirrors every registry operation exposed by the REST API.
type RegistryAdapter interface {
	RegistryReader

	// Load activates name remotely; [ErrNotFound] if it is not registered.
	Load(ctx context.Context, name string) error

	// Set stores value under the remote active prefix followed by key.
	Set(ctx context.Context, key string, value registry.Value) error

	// Extend composes name from extendsFrom remotely.
	Extend(ctx context.Context, name string, extendsFrom []string) error

	// Version returns the remote server's version string.
	Version(ctx context.Context) (string, error)
}
