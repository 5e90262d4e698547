package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// postgres driver
	_ "github.com/lib/pq"
)

const kvSchema = `
CREATE TABLE IF NOT EXISTS kv_slots (
	slot       TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// PostgresKV is the postgres-backed slot store: one row per slot in a
// small key-value table.
type PostgresKV struct {
	db *sql.DB
}

// NewPostgresKV opens the database, verifies the connection, and ensures
// the slot table exists.
func NewPostgresKV(databaseURL string) (*PostgresKV, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("failed to connect to database: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if _, err := db.ExecContext(ctx, kvSchema); err != nil {
		closeErr := db.Close()
		if closeErr != nil {
			return nil, fmt.Errorf("failed to ensure kv_slots table: %w (close: %v)", err, closeErr)
		}
		return nil, fmt.Errorf("failed to ensure kv_slots table: %w", err)
	}

	return &PostgresKV{db: db}, nil
}

// NewPostgresStore opens postgres and returns the slot gateway over it.
func NewPostgresStore(databaseURL string) (*Gateway, error) {
	kv, err := NewPostgresKV(databaseURL)
	if err != nil {
		return nil, err
	}
	return NewGateway(kv), nil
}

// Get reads a slot. A missing row means the slot was never set.
func (p *PostgresKV) Get(ctx context.Context, slot string) ([]byte, bool, error) {
	var raw []byte
	err := p.db.QueryRowContext(ctx,
		`SELECT value FROM kv_slots WHERE slot = $1`, slot,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

// Set upserts a slot.
func (p *PostgresKV) Set(ctx context.Context, slot string, value []byte) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO kv_slots (slot, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (slot) DO UPDATE SET value = EXCLUDED.value, updated_at = now()
	`, slot, value)
	return err
}

// Delete removes a slot. Deleting an absent slot is not an error.
func (p *PostgresKV) Delete(ctx context.Context, slot string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM kv_slots WHERE slot = $1`, slot)
	return err
}

// Ping checks if the database is reachable.
func (p *PostgresKV) Ping(ctx context.Context) error {
	return p.db.PingContext(ctx)
}

// Close closes the database connection.
func (p *PostgresKV) Close() error {
	return p.db.Close()
}
