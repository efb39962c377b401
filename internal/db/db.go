// Package db owns the pgx connection pool and the schema bootstrap.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// Username uniqueness lives in the index, not in application code, so
// concurrent creates with the same name cannot both land.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id         UUID PRIMARY KEY,
	username   TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (username);

CREATE TABLE IF NOT EXISTS exercises (
	id          UUID PRIMARY KEY,
	user_id     UUID NOT NULL REFERENCES users (id),
	username    TEXT NOT NULL,
	description TEXT NOT NULL,
	duration    INTEGER NOT NULL CHECK (duration >= 0),
	date        DATE NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS exercises_username_date_idx ON exercises (username, date);
`

// Connect opens a pgx pool against dsn and verifies it with a ping.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// Setup applies the schema. Statements are idempotent so this runs on
// every start.
func Setup(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	log.Info().Msg("database schema ready")
	return nil
}
