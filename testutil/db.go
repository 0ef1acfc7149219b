// Package testutil opens the databases behind the planner's trip store tests.
//
// SQLite helpers always run against a file in the test's temp directory.
// Postgres helpers need TEST_DATABASE_URL and skip the test without it.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // "pgx" database/sql driver

	"github.com/pkordes/trip-planner/internal/repo"
)

// NewSQLiteDB opens the on-device trip database in a per-test temp directory
// with kv_store already created. Closed on test cleanup.
func NewSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := repo.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "planner.db"))
	if err != nil {
		t.Fatalf("testutil.NewSQLiteDB: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// NewPool returns a pool on the shared Postgres test database, opened the
// way the server opens its trip store, so kv_store is migrated before use.
// Tests that write the current trip should do so in a transaction they roll
// back, since every package shares the same database.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := repo.OpenPostgres(context.Background(), postgresDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewSQLDB returns a database/sql handle on the Postgres test database with
// no migrations applied, for tests that drive goose themselves.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := openPostgresSQL(postgresDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// MustOpenSQLDB is NewSQLDB for TestMain. The caller closes the handle.
func MustOpenSQLDB(dsn string) *sql.DB {
	db, err := openPostgresSQL(dsn)
	if err != nil {
		panic("testutil.MustOpenSQLDB: " + err.Error())
	}
	return db
}

func openPostgresSQL(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return db, nil
}

func postgresDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; Postgres trip store not under test")
	}
	return dsn
}
