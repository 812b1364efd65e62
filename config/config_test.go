package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Paths.DatasetsDir != "datasets" {
		t.Errorf("expected default datasets dir, got %s", cfg.Paths.DatasetsDir)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("expected default port 5432, got %d", cfg.Database.Port)
	}
	if cfg.Pipeline.MaxAttempts != 3 {
		t.Errorf("expected 3 max attempts, got %d", cfg.Pipeline.MaxAttempts)
	}
	if !strings.HasPrefix(cfg.Sources.CovidCasesCSV, "https://onemocneni-aktualne.mzcr.cz/") {
		t.Errorf("unexpected covid cases URL: %s", cfg.Sources.CovidCasesCSV)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing datasets dir",
			modify:  func(c *Config) { c.Paths.DatasetsDir = "" },
			wantErr: true,
		},
		{
			name:    "missing tables dir",
			modify:  func(c *Config) { c.Paths.TablesDir = "" },
			wantErr: true,
		},
		{
			name:    "missing database host",
			modify:  func(c *Config) { c.Database.Host = "" },
			wantErr: true,
		},
		{
			name:    "port out of range",
			modify:  func(c *Config) { c.Database.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "zero max attempts",
			modify:  func(c *Config) { c.Pipeline.MaxAttempts = 0 },
			wantErr: true,
		},
		{
			name:    "backoff multiplier below one",
			modify:  func(c *Config) { c.Pipeline.BackoffMultiplier = 0.5 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
paths:
  datasets_dir: "/data/raw"
database:
  host: "db.internal"
  user: "loader"
pipeline:
  max_attempts: 5
  backoff_base: 10s
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.Paths.DatasetsDir != "/data/raw" {
		t.Errorf("expected /data/raw, got %s", cfg.Paths.DatasetsDir)
	}
	// Unset fields keep their defaults.
	if cfg.Paths.TablesDir != "tables" {
		t.Errorf("expected default tables dir, got %s", cfg.Paths.TablesDir)
	}
	if cfg.Database.Host != "db.internal" {
		t.Errorf("expected db.internal, got %s", cfg.Database.Host)
	}
	if cfg.Pipeline.MaxAttempts != 5 {
		t.Errorf("expected 5 attempts, got %d", cfg.Pipeline.MaxAttempts)
	}
	if cfg.Pipeline.BackoffBase != 10*time.Second {
		t.Errorf("expected 10s backoff, got %v", cfg.Pipeline.BackoffBase)
	}
}

func TestLoadFromFilePasswordOverride(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
database:
  password: "from-file"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("CUBEPIPE_DB_PASSWORD", "from-env")
	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if cfg.Database.Password != "from-env" {
		t.Errorf("expected env override, got %s", cfg.Database.Password)
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile("/nonexistent/config.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "h", Port: 5432, Name: "n", User: "u", Password: "p", SSLMode: "disable"}
	want := "host=h port=5432 dbname=n user=u password=p sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
