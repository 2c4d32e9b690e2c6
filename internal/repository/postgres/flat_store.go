package postgres

import (
	"context"
	"errors"

	"alcyxob/workout-map/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier represents the minimal database operations the store uses.
// Both *pgxpool.Pool and pgxmock pools satisfy this interface.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Schema creates the single table backing the flat store.
const Schema = `
CREATE TABLE IF NOT EXISTS flat_store (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// Connect opens a pool, or returns nil when url is empty.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	if url == "" {
		return nil, nil
	}
	return pgxpool.New(ctx, url)
}

// EnsureSchema creates the table if it does not exist.
func EnsureSchema(ctx context.Context, db Querier) error {
	_, err := db.Exec(ctx, Schema)
	return err
}

type flatStore struct {
	db Querier
}

// NewFlatStore stores one row per key.
func NewFlatStore(db Querier) repository.FlatStore {
	return &flatStore{db: db}
}

func (s *flatStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRow(ctx, `SELECT value FROM flat_store WHERE key=$1`, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

func (s *flatStore) Set(ctx context.Context, key, value string) error {
	tag, err := s.db.Exec(ctx, `
		INSERT INTO flat_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value=EXCLUDED.value, updated_at=EXCLUDED.updated_at
	`, key, value)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrUpdateFailed
	}
	return nil
}

func (s *flatStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM flat_store WHERE key=$1`, key)
	return err
}
