package app

import (
	"context"
	"database/sql"
)

// schema is the storage layout: document tables with the columns worth
// indexing promoted alongside the JSONB payload.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS trips (
		id         TEXT PRIMARY KEY,
		status     TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		data       JSONB NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS trips_status_idx ON trips (status)`,
	`CREATE INDEX IF NOT EXISTS trips_created_at_idx ON trips (created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS vehicles (
		id         TEXT PRIMARY KEY,
		created_at TIMESTAMPTZ NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL,
		data       JSONB NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS driver_settings (
		id   SMALLINT PRIMARY KEY CHECK (id = 1),
		data JSONB NOT NULL
	)`,
}

// Migrate applies the schema at startup. Statements are idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
