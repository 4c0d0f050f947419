// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/MKhiriev/go-envstore/internal/config"
	"github.com/MKhiriev/go-envstore/internal/logger"
)

// OpenDB opens and pings the database described by cfg. For SQLite the
// database file is created when it does not exist yet.
func OpenDB(ctx context.Context, cfg config.DB, log *logger.Logger) (*sql.DB, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := createLocalDBFileIfNotExists(cfg.DSN); err != nil {
			log.Err(err).Str("func", "OpenDB").Msg("error creating database file")
			return nil, err
		}
	case config.DriverPostgres:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}

	conn, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "OpenDB").Msg("error opening database connection")
		return nil, fmt.Errorf("error opening connection to DB: %w", err)
	}

	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "OpenDB").Msg("error connecting database (ping)")
		conn.Close()
		return nil, fmt.Errorf("error connecting to DB: %w", err)
	}
	log.Debug().Str("func", "OpenDB").Str("driver", cfg.Driver).Msg("connected to database successfully")

	return conn, nil
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	return nil
}
