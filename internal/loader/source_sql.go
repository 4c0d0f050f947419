// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-envstore/internal/config"
	"github.com/MKhiriev/go-envstore/internal/logger"
	"github.com/MKhiriev/go-envstore/internal/registry"
)

const (
	maxAttempts = 3
	retryDelay  = 200 * time.Millisecond
)

// SQLSource reads environment definitions from the environments,
// environment_parents and environment_settings tables.
type SQLSource struct {
	db      *sql.DB
	name    string
	builder squirrel.StatementBuilderType
	logger  *logger.Logger
}

// NewSQLSource returns a source reading from db. driver selects the
// placeholder style: "$n" for pgx, "?" for everything else. name identifies
// the source in logs and errors.
func NewSQLSource(db *sql.DB, driver, name string, log *logger.Logger) *SQLSource {
	if log == nil {
		log = logger.Nop()
	}

	builder := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
	if driver == config.DriverPostgres {
		builder = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}

	return &SQLSource{
		db:      db,
		name:    name,
		builder: builder,
		logger:  log,
	}
}

// Name returns the name the source was constructed with.
func (s *SQLSource) Name() string {
	return s.name
}

// Environments reads every environment in position order together with its
// parents and settings. Setting keys are dotted paths relative to the
// environment; values are JSON documents.
//
// Transient PostgreSQL failures are retried up to three times.
func (s *SQLSource) Environments(ctx context.Context) ([]Environment, error) {
	var lastErr error
	for attempt := range maxAttempts {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(attempt) * retryDelay):
			}
		}

		envs, err := s.readEnvironments(ctx)
		if err == nil {
			return envs, nil
		}
		if classifyError(err) != retryable {
			return nil, err
		}

		s.logger.Warn().Err(err).Int("attempt", attempt+1).Msg("transient database error, retrying")
		lastErr = err
	}

	return nil, lastErr
}

func (s *SQLSource) readEnvironments(ctx context.Context) ([]Environment, error) {
	names, err := s.environmentNames(ctx)
	if err != nil {
		return nil, err
	}

	index := make(map[string]*Environment, len(names))
	envs := make([]Environment, len(names))
	for i, name := range names {
		envs[i] = Environment{Name: name}
		index[name] = &envs[i]
	}

	if err = s.loadParents(ctx, index); err != nil {
		return nil, err
	}
	if err = s.loadSettings(ctx, index); err != nil {
		return nil, err
	}

	return envs, nil
}

func (s *SQLSource) environmentNames(ctx context.Context) ([]string, error) {
	query, args, err := s.builder.
		Select("name").
		From("environments").
		OrderBy("position", "name").
		ToSql()
	if err != nil {
		s.logger.Err(err).Str("func", "SQLSource.environmentNames").Msg("error building select query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, s.queryError("SQLSource.environmentNames", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err = rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		names = append(names, name)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return names, nil
}

func (s *SQLSource) loadParents(ctx context.Context, index map[string]*Environment) error {
	query, args, err := s.builder.
		Select("environment", "parent").
		From("environment_parents").
		OrderBy("environment", "position").
		ToSql()
	if err != nil {
		s.logger.Err(err).Str("func", "SQLSource.loadParents").Msg("error building select query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return s.queryError("SQLSource.loadParents", err)
	}
	defer rows.Close()

	for rows.Next() {
		var environment, parent string
		if err = rows.Scan(&environment, &parent); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		env, ok := index[environment]
		if !ok {
			s.logger.Warn().Str("environment", environment).Msg("parent row for undeclared environment ignored")
			continue
		}
		env.Extends = append(env.Extends, parent)
	}

	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}
	return nil
}

func (s *SQLSource) loadSettings(ctx context.Context, index map[string]*Environment) error {
	query, args, err := s.builder.
		Select("environment", "key", "value").
		From("environment_settings").
		OrderBy("environment", "key").
		ToSql()
	if err != nil {
		s.logger.Err(err).Str("func", "SQLSource.loadSettings").Msg("error building select query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return s.queryError("SQLSource.loadSettings", err)
	}
	defer rows.Close()

	// one scratch store per environment lays dotted keys out as nested trees
	scratch := make(map[string]*registry.Store, len(index))
	for rows.Next() {
		var environment, key, raw string
		if err = rows.Scan(&environment, &key, &raw); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		if _, ok := index[environment]; !ok {
			s.logger.Warn().Str("environment", environment).Msg("setting row for undeclared environment ignored")
			continue
		}

		var value registry.Value
		if err = json.Unmarshal([]byte(raw), &value); err != nil {
			return fmt.Errorf("%w: environment %q key %q: %w", ErrInvalidSettings, environment, key, err)
		}

		store, ok := scratch[environment]
		if !ok {
			store = registry.NewStore()
			scratch[environment] = store
		}
		store.Set(key, value)
	}
	if err = rows.Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	for name, store := range scratch {
		index[name].Settings = store.Config()
	}
	return nil
}

func (s *SQLSource) queryError(fn string, err error) error {
	s.logger.Err(err).Str("func", fn).Str("pg_code", postgresErrorCode(err)).Msg("error executing select query")

	if classifyError(err) == schemaMissing {
		return fmt.Errorf("%w: %w", ErrSchemaMissing, err)
	}
	return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
}
