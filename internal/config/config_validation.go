// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the merged [StructuredConfig] is usable before any
// source is opened.
func (cfg *StructuredConfig) validate() error {
	if cfg.Sources.DB.DSN != "" {
		switch cfg.Sources.DB.Driver {
		case DriverSQLite, DriverPostgres:
		default:
			return fmt.Errorf("%w: unsupported driver %q", ErrInvalidSourcesConfigs, cfg.Sources.DB.Driver)
		}
	}

	if cfg.Server.RequestTimeout < 0 {
		return ErrInvalidServerConfigs
	}

	if cfg.Adapter.RequestTimeout < 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
