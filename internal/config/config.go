// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata" // zone database for devices without one

	"github.com/caarlos0/env/v11"
)

// Store drivers accepted in STORE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration values for the planner.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the local wizard API listens on.
	Port string `env:"PORT" envDefault:"8080"`

	// LogLevel controls the minimum log level: debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// LogFormat selects the log handler: "json" for machine-readable output,
	// "text" for colored console output.
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// CORSOrigins is the list of origins allowed to call the wizard API.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:8081" envSeparator:","`

	// TripServiceURL is the base URL of the remote Trip Service. Required.
	TripServiceURL string `env:"TRIP_SERVICE_URL,notEmpty"`

	// TripServiceTimeout bounds every request to the Trip Service.
	TripServiceTimeout time.Duration `env:"TRIP_SERVICE_TIMEOUT" envDefault:"10s"`

	// StoreDriver selects where the current trip is remembered: sqlite or postgres.
	StoreDriver string `env:"STORE_DRIVER" envDefault:"sqlite"`

	// StorePath is the SQLite database file used by the sqlite driver.
	StorePath string `env:"STORE_PATH" envDefault:"./data/planner.db"`

	// DatabaseURL is the Postgres connection string. Required by the postgres driver.
	DatabaseURL string `env:"DATABASE_URL"`

	// TimeZone is the IANA zone calendar days are interpreted in.
	TimeZone string `env:"TIME_ZONE" envDefault:"UTC"`

	// MaxBodyBytes caps the size of request bodies accepted by the wizard API.
	MaxBodyBytes int64 `env:"MAX_BODY_BYTES" envDefault:"1048576"`
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error naming every variable that is missing or invalid.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	cfg.CORSOrigins = trimAll(cfg.CORSOrigins)

	var problems []string
	switch cfg.StoreDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		problems = append(problems, fmt.Sprintf("STORE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.StoreDriver))
	}
	if _, err := time.LoadLocation(cfg.TimeZone); err != nil {
		problems = append(problems, fmt.Sprintf("TIME_ZONE %q is not a known zone", cfg.TimeZone))
	}
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", cfg.LogFormat))
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("config.Load: %w", errors.New(strings.Join(problems, "; ")))
	}
	return cfg, nil
}

// Location returns the parsed TimeZone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// trimAll trims each entry and drops empty ones.
func trimAll(in []string) []string {
	var out []string
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
