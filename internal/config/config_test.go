package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	chdirForTest(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EdgePort != 8080 {
		t.Errorf("EdgePort = %d, want 8080", cfg.EdgePort)
	}
	if cfg.StorageBackend != BackendFile {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendFile)
	}
	if cfg.BadgerGCInterval != 10*time.Minute {
		t.Errorf("BadgerGCInterval = %s, want 10m", cfg.BadgerGCInterval)
	}
	for _, name := range []string{"menu", "order", "recipe", "static"} {
		if !cfg.IsServiceEnabled(name) {
			t.Errorf("service %q should be enabled by default", name)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults: %v", err)
	}
}

func TestLoad_Environment(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("EDGE_PORT", "9090")
	t.Setenv("STORAGE_BACKEND", " SQLite ")
	t.Setenv("ENABLED_SERVICES", "recipe, ,menu ")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.EdgePort != 9090 {
		t.Errorf("EdgePort = %d, want 9090", cfg.EdgePort)
	}
	if cfg.StorageBackend != BackendSQLite {
		t.Errorf("StorageBackend = %q, want %q", cfg.StorageBackend, BackendSQLite)
	}
	if len(cfg.EnabledServices) != 2 {
		t.Fatalf("EnabledServices = %v, want 2 entries", cfg.EnabledServices)
	}
	if cfg.IsServiceEnabled("order") {
		t.Error("order should not be enabled")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	chdirForTest(t, dir)
	t.Setenv("DATA_DIR", "")
	os.Unsetenv("DATA_DIR")

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("DATA_DIR=/tmp/kitchen\n"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("DATA_DIR") })

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DataDir != "/tmp/kitchen" {
		t.Errorf("DataDir = %q, want /tmp/kitchen", cfg.DataDir)
	}
}

func TestLoad_BadPort(t *testing.T) {
	chdirForTest(t, t.TempDir())
	t.Setenv("EDGE_PORT", "not-a-number")

	if _, err := Load(); err == nil {
		t.Error("Load() with non-numeric EDGE_PORT should fail")
	}
}

func TestValidate(t *testing.T) {
	base := Config{EdgePort: 8080, DataDir: "./data", StorageBackend: BackendFile}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"valid file", func(c *Config) {}, false},
		{"memory without data dir", func(c *Config) { c.StorageBackend = BackendMemory; c.DataDir = "" }, false},
		{"port zero", func(c *Config) { c.EdgePort = 0 }, true},
		{"port too large", func(c *Config) { c.EdgePort = 70000 }, true},
		{"badger without data dir", func(c *Config) { c.StorageBackend = BackendBadger; c.DataDir = "" }, true},
		{"postgres without url", func(c *Config) { c.StorageBackend = BackendPostgres }, true},
		{"postgres with url", func(c *Config) {
			c.StorageBackend = BackendPostgres
			c.DatabaseURL = "postgres://localhost/kitchen"
		}, false},
		{"unknown backend", func(c *Config) { c.StorageBackend = "redis" }, true},
		{"negative gc interval", func(c *Config) { c.BadgerGCInterval = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
