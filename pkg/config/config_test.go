package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Performance.Workers < 1 || cfg.Performance.Workers > 4 {
		t.Errorf("Workers = %d, want between 1 and 4", cfg.Performance.Workers)
	}
	if cfg.Performance.BufferSize != 64*1024 {
		t.Errorf("BufferSize = %d, want %d", cfg.Performance.BufferSize, 64*1024)
	}
	if cfg.Output.Format != "human" {
		t.Errorf("Output.Format = %s, want human", cfg.Output.Format)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero workers", func(c *Config) { c.Performance.Workers = 0 }},
		{"tiny buffer", func(c *Config) { c.Performance.BufferSize = 100 }},
		{"unknown output format", func(c *Config) { c.Output.Format = "xml" }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "binary" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() should return an error")
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	content := []byte(`
sync:
  verify: true
  move: false
performance:
  workers: 2
  buffer_size: 8192
output:
  format: json
logging:
  level: debug
`)
	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if !cfg.Sync.Verify {
		t.Error("Sync.Verify should be true")
	}
	if cfg.Performance.Workers != 2 {
		t.Errorf("Workers = %d, want 2", cfg.Performance.Workers)
	}
	if cfg.Performance.BufferSize != 8192 {
		t.Errorf("BufferSize = %d, want 8192", cfg.Performance.BufferSize)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Output.Format = %s, want json", cfg.Output.Format)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %s, want debug", cfg.Logging.Level)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	dir := t.TempDir()

	missing := filepath.Join(dir, "missing.yaml")
	if _, err := LoadFromFile(missing); err == nil {
		t.Error("LoadFromFile() on a missing file should return an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("performance:\n  workers: -1\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := LoadFromFile(bad); err == nil {
		t.Error("LoadFromFile() should reject invalid values")
	}
}

func TestSaveToFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	cfg := Default()
	cfg.Sync.Move = true
	cfg.Performance.Workers = 3

	if err := SaveToFile(cfg, path); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	if !loaded.Sync.Move {
		t.Error("Sync.Move should survive the round trip")
	}
	if loaded.Performance.Workers != 3 {
		t.Errorf("Workers = %d, want 3", loaded.Performance.Workers)
	}
}
