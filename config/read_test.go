package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestReadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := ReadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Store.Driver != "memory" {
		t.Errorf("Store.Driver = %q, want memory", cfg.Store.Driver)
	}
	if cfg.Client.BaseURL != "http://localhost:8080" {
		t.Errorf("Client.BaseURL = %q", cfg.Client.BaseURL)
	}
}

func TestReadConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := `
server:
  port: 9090
store:
  driver: sqlite
  sqlite:
    path: /tmp/glycare-test.db
session:
  role: doctor
  actor_id: d-1
`
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("GLYCARE_SESSION_ACTOR_ID", "d-2")

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig() error = %v", err)
	}
	if cfg.Server.Port != 9090 || cfg.Store.Driver != "sqlite" {
		t.Errorf("file values not applied: %+v", cfg.Server)
	}
	if cfg.Session.Role != "doctor" || cfg.Session.ActorID != "d-2" {
		t.Errorf("session = %+v, want env override d-2", cfg.Session)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"memory", Config{Store: StoreConfig{Driver: "memory"}}, false},
		{"postgres missing host", Config{Store: StoreConfig{Driver: "postgres"}}, true},
		{"postgres ok", Config{Store: StoreConfig{Driver: "postgres", Postgres: DatabaseConfig{Host: "db", DBName: "glycare"}}}, false},
		{"sqlite missing path", Config{Store: StoreConfig{Driver: "sqlite"}}, true},
		{"unknown driver", Config{Store: StoreConfig{Driver: "mongo"}}, true},
		{"bad port", Config{Server: ServerConfig{Port: 70000}}, true},
		{"file log without path", Config{Logging: LoggingConfig{Output: OutputConfig{File: FileLogConfig{Enabled: true}}}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}
