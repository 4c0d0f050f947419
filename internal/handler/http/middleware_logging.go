package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-envstore/internal/logger"
)

// withLogging writes one access-log entry per request once the handler has
// returned.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		recorder := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(recorder, r)

		entry := logger.FromRequest(r).Info()
		if recorder.status >= http.StatusInternalServerError {
			entry = logger.FromRequest(r).Error()
		}
		entry.
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", recorder.status).
			Int("size", recorder.size).
			Dur("duration", time.Since(started)).
			Msg("request served")
	})
}
