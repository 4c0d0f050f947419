package http

import (
	"github.com/MKhiriev/go-envstore/internal/logger"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

// Registry is the registry surface served over HTTP. *registry.Guarded
// implements it.
type Registry interface {
	Do(fn func(s *registry.Store))
	Set(key string, value registry.Value)
	Extend(name string, extendsFrom []string)
	Read(key string) (registry.Value, bool)
	Environment() (string, bool)
	Environments() []string
	Config() registry.Tree
}

// Handler serves the registry operations over REST. Routes and middleware are
// assembled by [Handler.Init].
type Handler struct {
	registry Registry
	version  string

	logger *logger.Logger
}

// NewHandler constructs a Handler over reg. version is reported by
// GET /api/version.
func NewHandler(reg Registry, version string, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		registry: reg,
		version:  version,
		logger:   logger,
	}
}
