package repo_test

import (
	"context"
	"log"
	"os"
	"testing"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/internal/repo"
	"github.com/pkordes/trip-planner/testutil"
)

// TestMain applies all pending migrations to the Postgres test database once
// for the whole package, so the Postgres tests never think about schema state.
// SQLite tests open their own temporary database and do not need it.
func TestMain(m *testing.M) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		os.Exit(m.Run())
	}

	db := testutil.MustOpenSQLDB(os.Getenv("TEST_DATABASE_URL"))
	defer db.Close()

	if _, err := repo.Migrate(context.Background(), goose.DialectPostgres, db); err != nil {
		log.Fatalf("TestMain: %v", err)
	}

	os.Exit(m.Run())
}
