package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// decodeEntry parses the single JSON entry written to buf.
func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

// ── NewLogger ─────────────────────────────────────────────────────────────────

// TestNewLogger_EntryFields verifies that entries written by a logger from
// NewLogger carry the role, a timestamp and the calling function.
func TestNewLogger_EntryFields(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("envstore")
	l.Logger = l.Output(&buf)

	l.Info().Msg("environment loaded")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "envstore", entry["role"])
	assert.Equal(t, "environment loaded", entry["message"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["func"], "TestNewLogger_EntryFields")
}

// TestNewLogger_ResetsGlobalLevel verifies that NewLogger sets the global
// level back to debug.
func TestNewLogger_ResetsGlobalLevel(t *testing.T) {
	zerolog.SetGlobalLevel(zerolog.ErrorLevel)

	NewLogger("level")

	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

// ── SetLevel ──────────────────────────────────────────────────────────────────

// TestSetLevel verifies how level names change the global level.
func TestSetLevel(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	tests := []struct {
		name      string
		level     string
		wantLevel zerolog.Level
		wantErr   bool
	}{
		{name: "warn", level: "warn", wantLevel: zerolog.WarnLevel},
		{name: "empty keeps current", level: "", wantLevel: zerolog.WarnLevel},
		{name: "error", level: "error", wantLevel: zerolog.ErrorLevel},
		{name: "unknown", level: "loud", wantLevel: zerolog.ErrorLevel, wantErr: true},
	}

	// cases run in order and build on each other
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SetLevel(tt.level)

			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.level)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantLevel, zerolog.GlobalLevel())
		})
	}
}

// TestSetLevel_FiltersEntries verifies that entries below the configured
// level are dropped.
func TestSetLevel_FiltersEntries(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.DebugLevel) })

	var buf bytes.Buffer
	l := &Logger{zerolog.New(&buf)}
	require.NoError(t, SetLevel("info"))

	l.Debug().Msg("parent environment is not registered, skipped")
	assert.Empty(t, buf.String())

	l.Info().Msg("environment definitions loaded")
	assert.NotEmpty(t, buf.String())
}

// ── Nop & GetChildLogger ──────────────────────────────────────────────────────

// TestNop_DiscardsOutput verifies that a Nop logger writes nothing, even when
// its output is redirected.
func TestNop_DiscardsOutput(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Info().Msg("should be discarded")

	assert.Empty(t, buf.String())
}

// TestGetChildLogger verifies that a child inherits the parent's fields and
// that fields added to the child do not leak into the parent.
func TestGetChildLogger(t *testing.T) {
	var buf bytes.Buffer
	parent := &Logger{zerolog.New(&buf).With().Str("role", "http").Logger()}

	child := parent.GetChildLogger()
	require.NotSame(t, parent, child)
	child.UpdateContext(func(c zerolog.Context) zerolog.Context {
		return c.Str("trace_id", "abc")
	})

	child.Info().Msg("child")
	entry := decodeEntry(t, &buf)
	assert.Equal(t, "http", entry["role"])
	assert.Equal(t, "abc", entry["trace_id"])

	buf.Reset()
	parent.Info().Msg("parent")
	assert.NotContains(t, decodeEntry(t, &buf), "trace_id")
}

// ── context lookups ───────────────────────────────────────────────────────────

// TestFromContextAndRequest verifies that the logger attached to a context is
// returned by both lookups and that a bare context still yields a logger.
func TestFromContextAndRequest(t *testing.T) {
	var buf bytes.Buffer
	zl := zerolog.New(&buf).With().Str("trace_id", "t-1").Logger()
	ctx := zl.WithContext(context.Background())

	req := httptest.NewRequest(http.MethodGet, "/api/config", nil).WithContext(ctx)

	for name, l := range map[string]*Logger{
		"context": FromContext(ctx),
		"request": FromRequest(req),
	} {
		t.Run(name, func(t *testing.T) {
			buf.Reset()
			require.NotNil(t, l)

			l.Info().Msg("lookup")

			assert.Equal(t, "t-1", decodeEntry(t, &buf)["trace_id"])
		})
	}

	assert.NotNil(t, FromContext(context.Background()))
	assert.NotNil(t, FromRequest(httptest.NewRequest(http.MethodGet, "/", nil)))
}
