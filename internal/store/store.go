// Package store persists leads and subscribers in Postgres. The leads
// table's primary key on source_id is the cross-run deduplication
// authority; everything above it is an optimization.

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrDuplicateLead marks a create that lost to the uniqueness constraint.
// Callers treat it as a duplicate counter, not a failure.
var ErrDuplicateLead = errors.New("lead already exists")

type Store struct {
	db *pgxpool.Pool
}

func Connect(ctx context.Context, connString string) (*Store, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Connection poolers in transaction mode do not support prepared
	// statements; disable the statement cache.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Store{db: pool}, nil
}

func (s *Store) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS leads (
		source_id       TEXT PRIMARY KEY,
		text            TEXT NOT NULL,
		author_handle   TEXT NOT NULL,
		author_name     TEXT,
		author_verified BOOLEAN NOT NULL DEFAULT FALSE,
		url             TEXT NOT NULL,
		likes           INTEGER NOT NULL DEFAULT 0,
		reposts         INTEGER NOT NULL DEFAULT 0,
		replies         INTEGER NOT NULL DEFAULT 0,
		links           JSONB NOT NULL DEFAULT '[]',
		score           INTEGER NOT NULL,
		category        TEXT NOT NULL,
		hotcake         BOOLEAN NOT NULL DEFAULT FALSE,
		posted_at       TIMESTAMPTZ,
		first_seen      TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_leads_score ON leads(score);
	CREATE INDEX IF NOT EXISTS idx_leads_first_seen ON leads(first_seen);

	CREATE TABLE IF NOT EXISTS subscribers (
		id              TEXT PRIMARY KEY,
		username        TEXT NOT NULL UNIQUE,
		active          BOOLEAN NOT NULL DEFAULT FALSE,
		alert_threshold INTEGER NOT NULL DEFAULT 60,
		chat_id         BIGINT
	);
	`

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
