package cli

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-envstore/internal/adapter"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

// localRegistry serves a registry loaded in-process through the same
// reading interface as the remote client, reporting misses as
// [adapter.ErrNotFound].
type localRegistry struct {
	registry *registry.Guarded
}

var _ adapter.RegistryReader = (*localRegistry)(nil)

func newLocalRegistry(reg *registry.Guarded) *localRegistry {
	return &localRegistry{registry: reg}
}

func (l *localRegistry) Environment(_ context.Context) (string, error) {
	env, ok := l.registry.Environment()
	if !ok {
		return "", fmt.Errorf("%w: no environment is loaded", adapter.ErrNotFound)
	}
	return env, nil
}

func (l *localRegistry) Environments(_ context.Context) ([]string, error) {
	return l.registry.Environments(), nil
}

func (l *localRegistry) Config(_ context.Context) (registry.Tree, error) {
	return l.registry.Config(), nil
}

func (l *localRegistry) Read(_ context.Context, key string) (registry.Value, error) {
	value, ok := l.registry.Read(key)
	if !ok {
		return registry.Value{}, fmt.Errorf("%w: key %q", adapter.ErrNotFound, key)
	}
	return value, nil
}
