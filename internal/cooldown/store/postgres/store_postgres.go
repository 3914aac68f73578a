package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"bloodlink/pkg/platform/sentinel"
	txcontext "bloodlink/pkg/platform/tx"
)

// Schema creates the cooldown table. It is idempotent.
const Schema = `
CREATE TABLE IF NOT EXISTS cooldown_kv (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresKVStore persists cooldown entries in PostgreSQL.
// This store is pure I/O; the gate owns every cooldown rule.
type PostgresKVStore struct {
	db *sql.DB
}

func New(db *sql.DB) *PostgresKVStore {
	return &PostgresKVStore{db: db}
}

type dbExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// execer joins a transaction carried by ctx, if any.
func (s *PostgresKVStore) execer(ctx context.Context) dbExecutor {
	if tx, ok := txcontext.From(ctx); ok {
		return tx
	}
	return s.db
}

// Open connects with the lib/pq driver and ensures the schema exists.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create cooldown schema: %w", err)
	}
	return db, nil
}

func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.execer(ctx).QueryRowContext(ctx, `SELECT value FROM cooldown_kv WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("cooldown key %q: %w", key, sentinel.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get cooldown: %w", err)
	}
	return value, nil
}

func (s *PostgresKVStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO cooldown_kv (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.execer(ctx).ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set cooldown: %w", err)
	}
	return nil
}

func (s *PostgresKVStore) Remove(ctx context.Context, key string) error {
	if _, err := s.execer(ctx).ExecContext(ctx, `DELETE FROM cooldown_kv WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete cooldown: %w", err)
	}
	return nil
}
