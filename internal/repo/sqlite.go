package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/pkordes/trip-planner/internal/domain"
)

// sqliteTripStore is the SQLite implementation of TripStore.
type sqliteTripStore struct {
	db *sql.DB
}

// NewSQLiteTripStore constructs a TripStore backed by an opened SQLite
// database (see OpenSQLite). The kv_store table must already exist.
func NewSQLiteTripStore(db *sql.DB) TripStore {
	return &sqliteTripStore{db: db}
}

// Save upserts the current trip id.
func (s *sqliteTripStore) Save(ctx context.Context, tripID string) error {
	const q = `
		INSERT INTO kv_store (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (key) DO UPDATE
		SET value      = excluded.value,
		    updated_at = excluded.updated_at`

	if _, err := s.db.ExecContext(ctx, q, CurrentTripKey, tripID); err != nil {
		return fmt.Errorf("repo.TripStore.Save: %w", err)
	}
	return nil
}

// Get reads the current trip id.
func (s *sqliteTripStore) Get(ctx context.Context) (string, error) {
	const q = `SELECT value FROM kv_store WHERE key = ?`

	var id string
	err := s.db.QueryRowContext(ctx, q, CurrentTripKey).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("repo.TripStore.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.TripStore.Get: %w", err)
	}
	return id, nil
}

// Delete removes the current trip id.
func (s *sqliteTripStore) Delete(ctx context.Context) error {
	const q = `DELETE FROM kv_store WHERE key = ?`

	if _, err := s.db.ExecContext(ctx, q, CurrentTripKey); err != nil {
		return fmt.Errorf("repo.TripStore.Delete: %w", err)
	}
	return nil
}
