package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const schema = `CREATE TABLE IF NOT EXISTS cart_slots (
	slot_key   TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// SlotStore keeps cart slots in a Postgres table keyed by slot name.
type SlotStore struct {
	db *sql.DB
}

// NewSlotStore creates the cart_slots table when missing.
func NewSlotStore(ctx context.Context, db *sql.DB) (*SlotStore, error) {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("create cart_slots: %w", err)
	}
	return &SlotStore{db: db}, nil
}

func (s *SlotStore) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM cart_slots WHERE slot_key = $1`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get slot %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SlotStore) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO cart_slots (slot_key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot_key) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = EXCLUDED.updated_at
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set slot %s: %w", key, err)
	}
	return nil
}

func (s *SlotStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}
