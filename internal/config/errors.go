package config

import "errors"

// Validation errors returned by [StructuredConfig.validate].
var (
	// ErrInvalidSourcesConfigs indicates an unsupported SQL driver.
	ErrInvalidSourcesConfigs = errors.New("invalid sources configuration")
	// ErrInvalidServerConfigs indicates a negative server request timeout.
	ErrInvalidServerConfigs = errors.New("invalid server configuration")
	// ErrInvalidAdapterConfigs indicates a negative adapter request timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")
)
