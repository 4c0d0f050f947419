// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import "errors"

// Definition errors.
var (
	// ErrUnsupportedFormat is returned for a definition file whose extension
	// is not .json, .yaml, .yml or .toml.
	ErrUnsupportedFormat = errors.New("unsupported definition file format")

	// ErrInvalidEnvironmentName is returned for a definition whose name is
	// empty or contains the key separator.
	ErrInvalidEnvironmentName = errors.New("invalid environment name")

	// ErrInvalidSettings is returned when settings cannot be represented as
	// configuration values (e.g. they contain lists).
	ErrInvalidSettings = errors.New("invalid environment settings")
)

// SQL source errors.
var (
	// ErrSchemaMissing is returned when the definition tables do not exist.
	ErrSchemaMissing = errors.New("definition schema is missing, run migrations first")

	// ErrBuildingSQLQuery is returned when constructing a query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrScanningRows is returned when scanning result rows fails.
	ErrScanningRows = errors.New("failed to scan definition rows")

	// ErrUnsupportedDriver is returned by [OpenDB] for a driver other than
	// sqlite3 or pgx.
	ErrUnsupportedDriver = errors.New("unsupported sql driver")
)
