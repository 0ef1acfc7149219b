// Package repo contains the on-device persistence of the trip planner.
// The store is a small key-value table; the planner keeps the id of the trip
// the user is working on under a fixed key. Postgres (pgx) and SQLite
// (database/sql + modernc) implementations share the same schema.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/trip-planner/internal/domain"
)

// CurrentTripKey is the key the current trip id is stored under.
const CurrentTripKey = "planner.current_trip"

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripStore remembers the trip the user created on this device.
// The service layer depends on this interface, not on a concrete backend.
type TripStore interface {
	// Save stores tripID as the current trip, replacing any previous one.
	Save(ctx context.Context, tripID string) error

	// Get returns the current trip id.
	// Returns domain.ErrNotFound if no trip has been saved.
	Get(ctx context.Context) (string, error)

	// Delete forgets the current trip. Deleting when nothing is saved is not an error.
	Delete(ctx context.Context) error
}

// pgTripStore is the Postgres implementation of TripStore.
type pgTripStore struct {
	db db
}

// NewPostgresTripStore constructs a TripStore backed by the provided connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresTripStore(db db) TripStore {
	return &pgTripStore{db: db}
}

// Save upserts the current trip id.
func (s *pgTripStore) Save(ctx context.Context, tripID string) error {
	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (@key, @value, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = excluded.updated_at`

	args := pgx.NamedArgs{"key": CurrentTripKey, "value": tripID}
	if _, err := s.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.TripStore.Save: %w", err)
	}
	return nil
}

// Get reads the current trip id.
func (s *pgTripStore) Get(ctx context.Context) (string, error) {
	const q = `SELECT value FROM kv_store WHERE key = @key`

	var id string
	err := s.db.QueryRow(ctx, q, pgx.NamedArgs{"key": CurrentTripKey}).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", fmt.Errorf("repo.TripStore.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.TripStore.Get: %w", err)
	}
	return id, nil
}

// Delete removes the current trip id.
func (s *pgTripStore) Delete(ctx context.Context) error {
	const q = `DELETE FROM kv_store WHERE key = @key`

	if _, err := s.db.Exec(ctx, q, pgx.NamedArgs{"key": CurrentTripKey}); err != nil {
		return fmt.Errorf("repo.TripStore.Delete: %w", err)
	}
	return nil
}
