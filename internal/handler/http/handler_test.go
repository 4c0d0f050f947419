// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-envstore/internal/logger"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

// ── helpers ───────────────────────────────────────────────────────────────────

// newSeededHandler returns a handler over a registry holding Production and
// Staging (which extends Production). No environment is loaded.
func newSeededHandler(t *testing.T) (*Handler, *registry.Guarded) {
	t.Helper()

	store := registry.NewStore()
	store.Set("Production", registry.Branch(registry.Tree{
		"db": registry.Branch(registry.Tree{
			"host": registry.String("prod.db"),
			"port": registry.Int(5432),
		}),
	}))
	store.Set("Staging.db.host", registry.String("staging.db"))
	store.Extend("Staging", []string{"Production"})

	guarded := registry.NewGuarded(store)
	return NewHandler(guarded, "1.2.3", logger.Nop()), guarded
}

func serve(h *Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)
	return rr
}

// ── construction ──────────────────────────────────────────────────────────────

func TestNewHandler_StoresDependencies(t *testing.T) {
	guarded := registry.NewGuarded(registry.NewStore())
	log := logger.Nop()

	h := NewHandler(guarded, "dev", log)

	require.NotNil(t, h)
	assert.Same(t, guarded, h.registry)
	assert.Same(t, log, h.logger)
	assert.Equal(t, "dev", h.version)
}

// ── environment endpoints ─────────────────────────────────────────────────────

// TestGetEnvironment_NoneLoaded verifies that 404 is returned before any
// environment has been loaded.
func TestGetEnvironment_NoneLoaded(t *testing.T) {
	h, _ := newSeededHandler(t)

	rr := serve(h, http.MethodGet, "/api/environment", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLoadEnvironment_Success(t *testing.T) {
	h, guarded := newSeededHandler(t)

	rr := serve(h, http.MethodPost, "/api/environments/Staging/load", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"environment":"Staging"}`, rr.Body.String())

	env, ok := guarded.Environment()
	assert.True(t, ok)
	assert.Equal(t, "Staging", env)

	rr = serve(h, http.MethodGet, "/api/environment", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"environment":"Staging"}`, rr.Body.String())
}

// TestLoadEnvironment_Unknown verifies that loading an unknown environment
// answers 404 and leaves the active environment unchanged.
func TestLoadEnvironment_Unknown(t *testing.T) {
	h, guarded := newSeededHandler(t)
	guarded.Load("Production")

	rr := serve(h, http.MethodPost, "/api/environments/Nope/load", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	env, ok := guarded.Environment()
	assert.True(t, ok)
	assert.Equal(t, "Production", env)
}

func TestGetEnvironments(t *testing.T) {
	h, _ := newSeededHandler(t)

	rr := serve(h, http.MethodGet, "/api/environments", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `["Production","Staging"]`, rr.Body.String())
}

func TestExtendEnvironment(t *testing.T) {
	h, guarded := newSeededHandler(t)

	rr := serve(h, http.MethodPost, "/api/environments/Dev/extend", `{"extends":["Staging"]}`)

	require.Equal(t, http.StatusNoContent, rr.Code)
	host, ok := guarded.Read("Dev.db.host")
	require.True(t, ok)
	assert.Equal(t, registry.String("staging.db"), host)
}

func TestExtendEnvironment_InvalidJSON(t *testing.T) {
	h, guarded := newSeededHandler(t)

	rr := serve(h, http.MethodPost, "/api/environments/Dev/extend", `{"extends":`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.NotContains(t, guarded.Environments(), "Dev")
}

// ── config endpoints ──────────────────────────────────────────────────────────

func TestGetConfig(t *testing.T) {
	h, _ := newSeededHandler(t)

	rr := serve(h, http.MethodGet, "/api/config", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{
		"Production": {"db": {"host": "prod.db", "port": 5432}},
		"Staging":    {"db": {"host": "staging.db", "port": 5432}}
	}`, rr.Body.String())
}

func TestReadKey(t *testing.T) {
	h, guarded := newSeededHandler(t)
	guarded.Load("Staging")

	tests := []struct {
		name       string
		key        string
		wantStatus int
		wantBody   string
	}{
		{name: "active environment leaf", key: "db.host", wantStatus: http.StatusOK, wantBody: `"staging.db"`},
		{name: "inherited leaf", key: "db.port", wantStatus: http.StatusOK, wantBody: `5432`},
		{name: "subtree", key: "db", wantStatus: http.StatusOK, wantBody: `{"host":"staging.db","port":5432}`},
		{name: "environment qualified", key: "Production.db.host", wantStatus: http.StatusOK, wantBody: `"prod.db"`},
		{name: "partial path", key: "db.host.extra", wantStatus: http.StatusOK, wantBody: `"staging.db"`},
		{name: "unresolved", key: "cache", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(h, http.MethodGet, "/api/config/"+tt.key, "")

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
		})
	}
}

func TestSetKey(t *testing.T) {
	h, guarded := newSeededHandler(t)
	guarded.Load("Staging")

	rr := serve(h, http.MethodPut, "/api/config/db.user", `"reader"`)

	require.Equal(t, http.StatusNoContent, rr.Code)
	user, ok := guarded.Read("db.user")
	require.True(t, ok)
	assert.Equal(t, registry.String("reader"), user)

	host, ok := guarded.Read("db.host")
	require.True(t, ok)
	assert.Equal(t, registry.String("staging.db"), host, "siblings must survive a set")
}

func TestSetKey_Object(t *testing.T) {
	h, guarded := newSeededHandler(t)

	rr := serve(h, http.MethodPut, "/api/config/Production.cache", `{"ttl": 60, "enabled": true}`)

	require.Equal(t, http.StatusNoContent, rr.Code)
	enabled, ok := guarded.Read("Production.cache.enabled")
	require.True(t, ok)
	assert.Equal(t, registry.Bool(true), enabled)
}

func TestSetKey_InvalidBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed", body: `{"ttl":`},
		{name: "list", body: `[1, 2]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, guarded := newSeededHandler(t)
			before := guarded.Config()

			rr := serve(h, http.MethodPut, "/api/config/Production.x", tt.body)

			assert.Equal(t, http.StatusBadRequest, rr.Code)
			assert.True(t, before.Equal(guarded.Config()))
		})
	}
}

// ── routing ───────────────────────────────────────────────────────────────────

func TestGetServerVersion(t *testing.T) {
	h, _ := newSeededHandler(t)

	rr := serve(h, http.MethodGet, "/api/version", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/plain", rr.Header().Get("Content-Type"))
	assert.Equal(t, "1.2.3", rr.Body.String())
}

// TestInit_UnsupportedMethodReturns404 verifies that known routes answer 404
// rather than 405 for methods they do not handle.
func TestInit_UnsupportedMethodReturns404(t *testing.T) {
	h, _ := newSeededHandler(t)

	tests := []struct {
		method string
		path   string
	}{
		{method: http.MethodDelete, path: "/api/config"},
		{method: http.MethodPost, path: "/api/environments"},
		{method: http.MethodDelete, path: "/api/config/db.host"},
		{method: http.MethodGet, path: "/api/environments/Staging/load"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rr := serve(h, tt.method, tt.path, "")
			assert.Equal(t, http.StatusNotFound, rr.Code)
		})
	}
}

// TestInit_UnsupportedMethodWithGzip verifies that the bare 404 for an
// unsupported method is not announced as gzip when the client accepts it.
func TestInit_UnsupportedMethodWithGzip(t *testing.T) {
	h, _ := newSeededHandler(t)

	req := httptest.NewRequest(http.MethodDelete, "/api/config", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Empty(t, rr.Header().Get("Content-Encoding"))
	assert.Zero(t, rr.Body.Len())
}

func TestInit_UnknownRouteReturns404(t *testing.T) {
	h, _ := newSeededHandler(t)

	rr := serve(h, http.MethodGet, "/api/unknown", "")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// TestInit_SetsTraceID verifies that responses from the full router carry a
// trace id.
func TestInit_SetsTraceID(t *testing.T) {
	h, _ := newSeededHandler(t)

	rr := serve(h, http.MethodGet, "/api/environments", "")

	assert.NotEmpty(t, rr.Header().Get(traceIDHeader))
}

// TestInit_LogsRequests verifies that the access log line carries the trace
// id and the response status.
func TestInit_LogsRequests(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewLogger("test")
	log.Logger = log.Output(&buf)

	h := NewHandler(registry.NewGuarded(registry.NewStore()), "dev", log)
	req := httptest.NewRequest(http.MethodGet, "/api/environment", nil)
	req.Header.Set(traceIDHeader, "trace-123")
	h.Init().ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	assert.Equal(t, "trace-123", entry["trace_id"])
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "/api/environment", entry["uri"])
}
