package handler

import (
	"github.com/MKhiriev/go-envstore/internal/config"
	"github.com/MKhiriev/go-envstore/internal/handler/http"
	"github.com/MKhiriev/go-envstore/internal/logger"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(reg http.Registry, cfg config.Server, version string, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	return &Handlers{
		HTTP: http.NewHandler(reg, version, logger),
	}, nil
}
