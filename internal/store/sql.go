package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// SQLStore keeps values in the kv table created by the migrations package.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		observeGet("sqlite", false, nil)
		return "", false, nil
	}
	observeGet("sqlite", err == nil, err)
	if err != nil {
		return "", false, fmt.Errorf("querying %q: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value)
	observeSet("sqlite", err)
	if err != nil {
		return fmt.Errorf("upserting %q: %w", key, err)
	}
	return nil
}

func (s *SQLStore) Check(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
