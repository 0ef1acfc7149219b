package repo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/pkordes/trip-planner/migrations"
)

// Migrate applies every pending migration in migrations.FS to db and returns
// the number of migrations applied.
func Migrate(ctx context.Context, dialect goose.Dialect, db *sql.DB) (int, error) {
	provider, err := goose.NewProvider(dialect, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.Migrate: run migrations: %w", err)
	}
	return len(results), nil
}

// OpenSQLite opens the on-device SQLite database at path, creating parent
// directories as needed, and brings its schema up to date.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenSQLite: open: %w", err)
	}
	// A single connection keeps PRAGMAs applied and serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: set busy timeout: %w", err)
	}
	if _, err := Migrate(ctx, goose.DialectSQLite3, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenSQLite: %w", err)
	}
	return db, nil
}

// OpenPostgres opens a connection pool to dsn, verifies it is reachable and
// brings its schema up to date.
func OpenPostgres(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("repo.OpenPostgres: create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgres: ping: %w", err)
	}

	// goose needs database/sql; borrow a *sql.DB view of the same pool.
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()
	if _, err := Migrate(ctx, goose.DialectPostgres, sqlDB); err != nil {
		pool.Close()
		return nil, fmt.Errorf("repo.OpenPostgres: %w", err)
	}
	return pool, nil
}
