package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router: every route under /api behind panic recovery,
// trace ids, access logging and gzip.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)

	// reads
	router.Get("/api/version", h.getServerVersion)
	router.Get("/api/environment", h.getEnvironment)
	router.Get("/api/environments", h.getEnvironments)
	router.Get("/api/config", h.getConfig)
	router.Get("/api/config/{key}", h.readKey)

	// writes
	router.Put("/api/config/{key}", h.setKey)
	router.Post("/api/environments/{name}/load", h.loadEnvironment)
	router.Post("/api/environments/{name}/extend", h.extendEnvironment)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
