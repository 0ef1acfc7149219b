package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/migrations"
	"github.com/pkordes/trip-planner/testutil"
)

// TestMigrations_Postgres verifies the full migration round-trip against a
// real Postgres database: up, check tables, down to zero, check tables gone.
// Skipped when TEST_DATABASE_URL is not set.
func TestMigrations_Postgres(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// Another package's TestMain may already have migrated the shared test DB.
	// Reset first so the test is order-independent.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations_Postgres: initial reset: %v", err)
	}

	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")
	assertTablePresence(t, db, postgresTableQuery, "kv_store", true)

	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")
	assertTablePresence(t, db, postgresTableQuery, "kv_store", false)

	// Leave the schema in place for other packages sharing the database.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "goose up again")
}

// TestMigrations_SQLite runs the same round-trip on a temporary SQLite file.
func TestMigrations_SQLite(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	assertTablePresence(t, db, sqliteTableQuery, "kv_store", true)

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, migrations.FS)
	require.NoError(t, err, "create goose provider")

	_, err = provider.DownTo(context.Background(), 0)
	require.NoError(t, err, "goose down-to 0")
	assertTablePresence(t, db, sqliteTableQuery, "kv_store", false)
}

const postgresTableQuery = `
	SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = 'public'
		AND   table_name   = $1
	)`

const sqliteTableQuery = `
	SELECT EXISTS (
		SELECT 1 FROM sqlite_master
		WHERE type = 'table'
		AND   name = ?
	)`

func assertTablePresence(t *testing.T, db *sql.DB, query, table string, shouldExist bool) {
	t.Helper()

	var exists bool
	err := db.QueryRowContext(context.Background(), query, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}
