package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNetAddress_String tests the String method of NetAddress
func TestNetAddress_String(t *testing.T) {
	tests := []struct {
		name     string
		addr     NetAddress
		expected string
	}{
		{name: "empty address", addr: NetAddress{}, expected: ""},
		{name: "localhost with port", addr: NetAddress{Host: "localhost", Port: 8080}, expected: "localhost:8080"},
		{name: "IP address with port", addr: NetAddress{Host: "127.0.0.1", Port: 9090}, expected: "127.0.0.1:9090"},
		{name: "only port no host", addr: NetAddress{Port: 8080}, expected: ":8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.addr.String())
		})
	}
}

// TestNetAddress_Set tests the Set method of NetAddress
func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		errorMsg     string
		expectedAddr NetAddress
	}{
		{name: "valid localhost", input: "localhost:8080", expectedAddr: NetAddress{Host: "localhost", Port: 8080}},
		{name: "valid IPv4", input: "127.0.0.1:9090", expectedAddr: NetAddress{Host: "127.0.0.1", Port: 9090}},
		{name: "all interfaces", input: ":8080", expectedAddr: NetAddress{Port: 8080}},
		{name: "missing colon", input: "localhost8080", errorMsg: "need address in a form `host:port`"},
		{name: "multiple colons", input: "host:port:extra", errorMsg: "need address in a form `host:port`"},
		{name: "non-numeric port", input: "localhost:abc", errorMsg: "invalid syntax"},
		{name: "zero port", input: "localhost:0", errorMsg: "port number is a positive integer"},
		{name: "invalid IP address", input: "invalid.host:8080", errorMsg: "incorrect IP-address provided"},
		{name: "empty string", input: "", errorMsg: "need address in a form `host:port`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var addr NetAddress
			err := addr.Set(tt.input)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedAddr, addr)
		})
	}
}

func TestNetAddress_Type(t *testing.T) {
	assert.Equal(t, "host:port", (&NetAddress{}).Type())
}

// TestBindFlags_AllFlags verifies that every flag lands in its field.
func TestBindFlags_AllFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)

	err := fs.Parse([]string{
		"-c", "settings.json",
		"-f", "base.yaml",
		"--file", "dev.toml",
		"--db-driver", "pgx",
		"--db-dsn", "postgres://localhost/envs",
		"-e", "Development",
		"--log-level", "debug",
		"--remote", "http://localhost:8080",
		"-a", "127.0.0.1:9090",
		"--request-timeout", "10s",
		"--remote-timeout", "2s",
	})
	require.NoError(t, err)

	cfg := flags.Config()
	assert.Equal(t, "settings.json", cfg.JSONFilePath)
	assert.Equal(t, []string{"base.yaml", "dev.toml"}, cfg.Sources.Files)
	assert.Equal(t, "pgx", cfg.Sources.DB.Driver)
	assert.Equal(t, "postgres://localhost/envs", cfg.Sources.DB.DSN)
	assert.Equal(t, "Development", cfg.App.Environment)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, "http://localhost:8080", cfg.Adapter.RemoteAddress)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, 10*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 2*time.Second, cfg.Adapter.RequestTimeout)
}

// TestBindFlags_NoFlagsIsZero verifies that an empty command line produces a
// zero layer, so it never overrides env or defaults.
func TestBindFlags_NoFlagsIsZero(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	require.NoError(t, fs.Parse(nil))

	assert.Equal(t, &StructuredConfig{}, flags.Config())
}

// TestBindFlags_InvalidAddress verifies that the address flag is validated
// while parsing.
func TestBindFlags_InvalidAddress(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)

	err := fs.Parse([]string{"--address", "nowhere"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "host:port")
}
