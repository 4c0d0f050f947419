package loader

//go:generate mockgen -source=interfaces.go -destination=../mock/loader_mock.go -package=mock

import (
	"context"

	"github.com/MKhiriev/go-envstore/internal/registry"
)

// Environment is one environment definition: its parents in precedence
// order (later wins) and its own settings, which win over every parent.
type Environment struct {
	Name     string
	Extends  []string
	Settings registry.Tree
}

// Source yields environment definitions in declaration order.
type Source interface {
	// Name identifies the source in logs and errors (a path, a DSN, ...).
	Name() string

	// Environments reads every definition held by the source.
	Environments(ctx context.Context) ([]Environment, error)
}

// Registry is the subset of registry operations the loader needs.
// Both *registry.Store and *registry.Guarded implement it.
type Registry interface {
	SetActivePrefix(name string)
	Set(key string, value registry.Value)
	Extend(name string, extendsFrom []string)
}
