package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigEmptyPathReturnsDefault(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Parser.Dialect != "ansi" {
		t.Errorf("Dialect = %q, want ansi", cfg.Parser.Dialect)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	data := "parser:\n  dialect: ansi\noutput:\n  format: json\n  pretty_json: false\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Output.Format)
	}
	if cfg.Output.PrettyJSON {
		t.Error("expected PrettyJSON to be false")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error for a missing config file")
	}
}
