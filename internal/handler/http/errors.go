// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "errors"

// Request errors reported to clients with HTTP 400.
var (
	// ErrEmptyKey is returned when the {key} path parameter is empty.
	ErrEmptyKey = errors.New("empty configuration key")

	// ErrEmptyEnvironmentName is returned when the {name} path parameter is
	// empty.
	ErrEmptyEnvironmentName = errors.New("empty environment name")
)
