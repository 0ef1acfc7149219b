package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/config"
)

// clearEnv blanks every variable Load reads so the host environment cannot
// leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "CORS_ORIGINS", "TRIP_SERVICE_URL",
		"TRIP_SERVICE_TIMEOUT", "STORE_DRIVER", "STORE_PATH", "DATABASE_URL",
		"TIME_ZONE", "MAX_BODY_BYTES",
	} {
		t.Setenv(k, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required TRIP_SERVICE_URL is provided.
func TestLoad_defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_SERVICE_URL", "http://localhost:3333")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, []string{"http://localhost:8081"}, cfg.CORSOrigins)
	require.Equal(t, "http://localhost:3333", cfg.TripServiceURL)
	require.Equal(t, 10*time.Second, cfg.TripServiceTimeout)
	require.Equal(t, config.DriverSQLite, cfg.StoreDriver)
	require.Equal(t, "./data/planner.db", cfg.StorePath)
	require.Equal(t, "UTC", cfg.TimeZone)
	require.Equal(t, time.UTC, cfg.Location())
	require.EqualValues(t, 1<<20, cfg.MaxBodyBytes)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_SERVICE_URL", "https://trips.example.com")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("TRIP_SERVICE_TIMEOUT", "3s")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/planner")
	t.Setenv("TIME_ZONE", "America/Sao_Paulo")
	t.Setenv("MAX_BODY_BYTES", "2048")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "text", cfg.LogFormat)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, 3*time.Second, cfg.TripServiceTimeout)
	require.Equal(t, config.DriverPostgres, cfg.StoreDriver)
	require.Equal(t, "postgres://user:pass@db:5432/planner", cfg.DatabaseURL)
	require.Equal(t, "America/Sao_Paulo", cfg.Location().String())
	require.EqualValues(t, 2048, cfg.MaxBodyBytes)
}

// TestLoad_missingRequired verifies that the error names TRIP_SERVICE_URL.
func TestLoad_missingRequired(t *testing.T) {
	clearEnv(t)

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "TRIP_SERVICE_URL")
}

// TestLoad_postgresNeedsDatabaseURL verifies the driver-specific requirement.
func TestLoad_postgresNeedsDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_SERVICE_URL", "http://localhost:3333")
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := config.Load()

	require.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_invalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("TRIP_SERVICE_URL", "http://localhost:3333")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("TIME_ZONE", "Mars/Olympus")
	t.Setenv("LOG_FORMAT", "xml")

	_, err := config.Load()

	require.ErrorContains(t, err, "STORE_DRIVER")
	require.ErrorContains(t, err, "TIME_ZONE")
	require.ErrorContains(t, err, "LOG_FORMAT")
}
