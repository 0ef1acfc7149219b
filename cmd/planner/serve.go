package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"

	"github.com/pkordes/trip-planner/internal/handler"
	"github.com/pkordes/trip-planner/internal/metrics"
	"github.com/pkordes/trip-planner/internal/middleware"
	"github.com/pkordes/trip-planner/internal/remote"
	"github.com/pkordes/trip-planner/internal/service"
)

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:   "serve",
		Usage:  "Run the local wizard API.",
		Action: serve,
	}
}

func serve(c *cli.Context) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}

	// --- Store ------------------------------------------------------------
	store, closeStore, err := openStore(c.Context, cfg)
	if err != nil {
		return err
	}
	defer closeStore()
	logger.Info("store ready", "driver", cfg.StoreDriver)

	// --- Services ---------------------------------------------------------
	trips, err := remote.New(cfg.TripServiceURL, cfg.TripServiceTimeout)
	if err != nil {
		return err
	}
	recorder := metrics.NewRecorder()
	creator := service.NewTripCreator(trips, store, logger, recorder)
	details := service.NewTripDetails(trips, store)
	sessions := handler.NewSessions(service.WithLocation(cfg.Location()))
	recorder.TrackOpenWizards(sessions.Len)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	server := handler.NewServer(sessions, creator, details,
		handler.WithLogger(logger),
		handler.WithMetrics(recorder.Handler()),
	)
	server.Routes(r)

	// --- HTTP Server ------------------------------------------------------
	// The submit timeout must outlast a Trip Service call.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.TripServiceTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", srv.Addr, "trip_service", cfg.TripServiceURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	// Graceful shutdown: wait for a signal, then give in-flight requests up to
	// 15 seconds to complete before forcefully closing.
	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-c.Context.Done():
	}
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info("server stopped")
	return nil
}
