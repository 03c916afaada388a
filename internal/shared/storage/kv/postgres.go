package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PGStore persists values in the kv_entries table.
type PGStore struct {
	DB *sql.DB
}

func (s *PGStore) Get(ctx context.Context, namespace, key string) (string, error) {
	if err := validate(namespace, key); err != nil {
		return "", err
	}
	var value string
	err := s.DB.QueryRowContext(ctx, `
SELECT value FROM kv_entries
WHERE namespace = $1 AND key = $2`, namespace, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("kv get %s: %w", key, err)
	}
	return value, nil
}

func (s *PGStore) Set(ctx context.Context, namespace, key, value string) error {
	if err := validate(namespace, key); err != nil {
		return err
	}
	_, err := s.DB.ExecContext(ctx, `
INSERT INTO kv_entries (namespace, key, value, updated_at)
VALUES ($1, $2, $3, now())
ON CONFLICT (namespace, key) DO UPDATE
SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`, namespace, key, value)
	if err != nil {
		return fmt.Errorf("kv set %s: %w", key, err)
	}
	return nil
}

func (s *PGStore) Delete(ctx context.Context, namespace, key string) error {
	if err := validate(namespace, key); err != nil {
		return err
	}
	if _, err := s.DB.ExecContext(ctx, `DELETE FROM kv_entries WHERE namespace = $1 AND key = $2`, namespace, key); err != nil {
		return fmt.Errorf("kv delete %s: %w", key, err)
	}
	return nil
}

func (s *PGStore) Ping(ctx context.Context) error {
	return s.DB.PingContext(ctx)
}
