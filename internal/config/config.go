package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backend names accepted by STORAGE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendBadger   = "badger"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	// EdgePort is the HTTP port where the edge router listens for incoming requests.
	EdgePort int `env:"EDGE_PORT" envDefault:"8080"`

	// DataDir is the base directory used by the on-disk storage backends
	// and the static asset store.
	DataDir string `env:"DATA_DIR" envDefault:"./data"`

	// StorageBackend selects the key-value adapter: memory, file, badger, sqlite or postgres.
	StorageBackend string `env:"STORAGE_BACKEND" envDefault:"file"`

	// DatabaseURL is the connection string for the postgres backend.
	DatabaseURL string `env:"DATABASE_URL"`

	// EnabledServices lists the services exposed over HTTP.
	// Example: "menu,order,recipe,static"
	EnabledServices []string `env:"ENABLED_SERVICES" envSeparator:"," envDefault:"menu,order,recipe,static"`

	// LogLevel controls the verbosity of logging (debug, info, warn, error).
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// BadgerGCInterval is how often the badger backend runs value-log GC.
	// Zero disables the GC routine.
	BadgerGCInterval time.Duration `env:"BADGER_GC_INTERVAL" envDefault:"10m"`
}

// Load reads an optional .env file from the working directory and then
// parses the environment into a Config. Missing values take their defaults.
func Load() (*Config, error) {
	// A missing .env file is the common case.
	_ = godotenv.Load()
	return parse()
}

func parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	enabled := make([]string, 0, len(cfg.EnabledServices))
	for _, s := range cfg.EnabledServices {
		s = strings.TrimSpace(s)
		if s != "" {
			enabled = append(enabled, s)
		}
	}
	cfg.EnabledServices = enabled
	cfg.StorageBackend = strings.ToLower(strings.TrimSpace(cfg.StorageBackend))

	return cfg, nil
}

// IsServiceEnabled checks if a given service name is in the EnabledServices list.
func (c *Config) IsServiceEnabled(serviceName string) bool {
	for _, s := range c.EnabledServices {
		if s == serviceName {
			return true
		}
	}
	return false
}

// Validate performs basic validation on the configuration.
func (c *Config) Validate() error {
	if c.EdgePort <= 0 || c.EdgePort >= 65536 {
		return fmt.Errorf("invalid EDGE_PORT: %d (must be 1-65535)", c.EdgePort)
	}

	switch c.StorageBackend {
	case BackendMemory:
	case BackendFile, BackendBadger, BackendSQLite:
		if c.DataDir == "" {
			return fmt.Errorf("DATA_DIR cannot be empty for the %s backend", c.StorageBackend)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND: %q", c.StorageBackend)
	}

	if c.BadgerGCInterval < 0 {
		return fmt.Errorf("invalid BADGER_GC_INTERVAL: %s", c.BadgerGCInterval)
	}
	return nil
}
