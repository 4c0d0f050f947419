// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// errorClass tells [SQLSource] what to do with a failed query.
type errorClass int

const (
	// nonRetryable failures are returned to the caller as they are.
	nonRetryable errorClass = iota

	// retryable failures (lost connections, rolled back transactions) are
	// attempted again.
	retryable

	// schemaMissing means the definition tables were never migrated.
	schemaMissing
)

// classifyError maps a driver error to an [errorClass]. Only PostgreSQL
// errors carry codes; anything else is non-retryable.
//
// See https://www.postgresql.org/docs/current/errcodes-appendix.html.
func classifyError(err error) errorClass {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return nonRetryable
	}

	switch pgErr.Code {
	// Class 08: connection exceptions
	case pgerrcode.ConnectionException,
		pgerrcode.ConnectionDoesNotExist,
		pgerrcode.ConnectionFailure:
		return retryable

	// Class 40: transaction rollback
	case pgerrcode.TransactionRollback,
		pgerrcode.SerializationFailure,
		pgerrcode.DeadlockDetected:
		return retryable

	// Class 57: operator intervention
	case pgerrcode.CannotConnectNow:
		return retryable

	case pgerrcode.UndefinedTable:
		return schemaMissing
	}

	return nonRetryable
}

func postgresErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
