package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-envstore/internal/logger"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

// EnvironmentResponse is the body of GET /api/environment and of a
// successful load.
type EnvironmentResponse struct {
	Environment string `json:"environment"`
}

// ExtendRequest is the body of POST /api/environments/{name}/extend.
type ExtendRequest struct {
	Extends []string `json:"extends"`
}

func (h *Handler) getEnvironment(w http.ResponseWriter, r *http.Request) {
	env, ok := h.registry.Environment()
	if !ok {
		http.Error(w, "no environment is loaded", http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, EnvironmentResponse{Environment: env})
}

func (h *Handler) getEnvironments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.registry.Environments())
}

func (h *Handler) getConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.registry.Config())
}

func (h *Handler) readKey(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		http.Error(w, ErrEmptyKey.Error(), http.StatusBadRequest)
		return
	}

	value, ok := h.registry.Read(key)
	if !ok {
		http.Error(w, "key is not resolved", http.StatusNotFound)
		return
	}

	writeJSON(w, r, http.StatusOK, value)
}

func (h *Handler) setKey(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	key := chi.URLParam(r, "key")
	if key == "" {
		http.Error(w, ErrEmptyKey.Error(), http.StatusBadRequest)
		return
	}

	var value registry.Value
	if err := json.NewDecoder(r.Body).Decode(&value); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.registry.Set(key, value)
	log.Debug().Str("key", key).Msg("configuration key set")

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) loadEnvironment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, ErrEmptyEnvironmentName.Error(), http.StatusBadRequest)
		return
	}

	// load and check under one lock so a concurrent load cannot interleave
	var loaded bool
	h.registry.Do(func(s *registry.Store) {
		s.Load(name)
		active, ok := s.Environment()
		loaded = ok && active == name
	})
	if !loaded {
		log.Info().Str("environment", name).Msg("environment is not registered")
		http.Error(w, "environment is not registered", http.StatusNotFound)
		return
	}

	log.Info().Str("environment", name).Msg("environment loaded")
	writeJSON(w, r, http.StatusOK, EnvironmentResponse{Environment: name})
}

func (h *Handler) extendEnvironment(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	name := chi.URLParam(r, "name")
	if name == "" {
		http.Error(w, ErrEmptyEnvironmentName.Error(), http.StatusBadRequest)
		return
	}

	var req ExtendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.registry.Extend(name, req.Extends)
	log.Info().Str("environment", name).Strs("extends", req.Extends).Msg("environment extended")

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		logger.FromRequest(r).Err(err).Msg("error encoding response")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
