package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Journal drivers accepted by JOURNAL_DRIVER.
const (
	JournalSQLite   = "sqlite"
	JournalPostgres = "postgres"
	JournalNone     = "none"
)

// Config is the process configuration, read from the environment after an
// optional .env file has been loaded.
type Config struct {
	Port          string
	SolverURL     string
	SolverTimeout time.Duration
	SessionTTL    time.Duration
	JournalDriver string
	JournalPath   string
	DatabaseURL   string
}

// LoadEnv loads .env into the environment. A missing file is not an error.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the environment value for key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetDuration parses key as a time.Duration, e.g. "30s".
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Get(key, "")
	if raw == "" {
		return fallback, nil
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: parse %s=%q: %w", key, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("config: %s must be positive, got %s", key, d)
	}
	return d, nil
}

// Load reads the full configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Port:          Get("PORT", "8080"),
		SolverURL:     Get("SOLVER_URL", "http://localhost:8081"),
		JournalDriver: strings.ToLower(Get("JOURNAL_DRIVER", JournalSQLite)),
		JournalPath:   Get("JOURNAL_PATH", "data/journal.db"),
		DatabaseURL:   Get("DATABASE_URL", ""),
	}

	var err error
	if cfg.SolverTimeout, err = GetDuration("SOLVER_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL, err = GetDuration("SESSION_TTL", 30*time.Minute); err != nil {
		return Config{}, err
	}

	switch cfg.JournalDriver {
	case JournalSQLite, JournalNone:
	case JournalPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("config: DATABASE_URL is required when JOURNAL_DRIVER=%s", JournalPostgres)
		}
	default:
		return Config{}, fmt.Errorf("config: unknown JOURNAL_DRIVER %q", cfg.JournalDriver)
	}

	return cfg, nil
}
