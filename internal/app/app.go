// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app assembles a populated registry from the program settings and
// serves it.
//
// [New] creates the registry, applies every configured definition source
// through the loader (files first, then the database) and activates the
// configured environment. [App.Serve] exposes the result over the REST API.
package app

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-envstore/internal/config"
	"github.com/MKhiriev/go-envstore/internal/handler"
	"github.com/MKhiriev/go-envstore/internal/loader"
	"github.com/MKhiriev/go-envstore/internal/logger"
	"github.com/MKhiriev/go-envstore/internal/registry"
	"github.com/MKhiriev/go-envstore/internal/server"
	"github.com/MKhiriev/go-envstore/migrations"
)

// App owns the registry and any database connection opened for it.
type App struct {
	Registry *registry.Guarded

	cfg    *config.StructuredConfig
	db     *sql.DB
	logger *logger.Logger
}

// New builds the registry described by cfg.
func New(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*App, error) {
	a := &App{
		Registry: registry.NewGuarded(registry.NewStore(registry.WithLogger(log))),
		cfg:      cfg,
		logger:   log,
	}

	sources, err := a.sources(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}

	if err = loader.NewLoader(a.Registry, log).Apply(ctx, sources...); err != nil {
		a.Close()
		return nil, fmt.Errorf("error loading environments: %w", err)
	}

	if env := cfg.App.Environment; env != "" {
		a.Registry.Load(env)
		if active, ok := a.Registry.Environment(); !ok || active != env {
			a.Close()
			return nil, fmt.Errorf("%w: %q", ErrUnknownEnvironment, env)
		}
		log.Info().Str("environment", env).Msg("environment loaded")
	}

	return a, nil
}

func (a *App) sources(ctx context.Context) ([]loader.Source, error) {
	sources := make([]loader.Source, 0, len(a.cfg.Sources.Files)+1)
	for _, path := range a.cfg.Sources.Files {
		sources = append(sources, loader.NewFileSource(path))
	}

	dbCfg := a.cfg.Sources.DB
	if dbCfg.DSN == "" {
		return sources, nil
	}

	db, err := loader.OpenDB(ctx, dbCfg, a.logger)
	if err != nil {
		return nil, err
	}
	a.db = db

	if err = migrations.Migrate(db, dbCfg.Driver); err != nil {
		a.logger.Err(err).Msg("error applying migrations")
		return nil, err
	}

	return append(sources, loader.NewSQLSource(db, dbCfg.Driver, "sql:"+dbCfg.Driver, a.logger)), nil
}

// Serve runs the REST API until ctx is done.
func (a *App) Serve(ctx context.Context) error {
	handlers, err := handler.NewHandlers(a.Registry, a.cfg.Server, a.cfg.App.Version, a.logger)
	if err != nil {
		return err
	}

	srv, err := server.NewServer(handlers, a.cfg.Server, a.logger)
	if err != nil {
		return err
	}

	return srv.Run(ctx)
}

// Close releases the database connection, if one was opened.
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	err := a.db.Close()
	a.db = nil
	return err
}
