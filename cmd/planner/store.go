package main

import (
	"context"

	"github.com/pkordes/trip-planner/internal/config"
	"github.com/pkordes/trip-planner/internal/repo"
)

// openStore opens the configured backend, applies pending migrations and
// returns the current-trip store plus a func releasing its connections.
func openStore(ctx context.Context, cfg config.Config) (repo.TripStore, func(), error) {
	switch cfg.StoreDriver {
	case config.DriverPostgres:
		pool, err := repo.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewPostgresTripStore(pool), pool.Close, nil
	default:
		db, err := repo.OpenSQLite(ctx, cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}
		return repo.NewSQLiteTripStore(db), func() { _ = db.Close() }, nil
	}
}
