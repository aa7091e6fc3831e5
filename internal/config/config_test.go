package config

import (
	"os"
	"path/filepath"
	"testing"
)

// useTempConfig points the package at a throwaway config path for one test.
func useTempConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	SetPath(path)
	t.Cleanup(ResetPath)
	return path
}

func TestLoad_MissingFileReturnsZeroConfig(t *testing.T) {
	useTempConfig(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.DefaultProvider != "" || cfg.DefaultZone != "" {
		t.Errorf("expected zero config, got %+v", cfg)
	}
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	useTempConfig(t)

	cfg := &Config{DefaultProvider: "upcloud", DefaultZone: "uk-lon1"}
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.DefaultProvider != "upcloud" {
		t.Errorf("DefaultProvider = %q, want %q", loaded.DefaultProvider, "upcloud")
	}
	if loaded.DefaultZone != "uk-lon1" {
		t.Errorf("DefaultZone = %q, want %q", loaded.DefaultZone, "uk-lon1")
	}
}

func TestLoad_CorruptFile(t *testing.T) {
	path := useTempConfig(t)
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}

func TestLookup(t *testing.T) {
	if spec := Lookup("default-provider"); spec == nil {
		t.Error("Lookup(default-provider) = nil, want spec")
	}
	if spec := Lookup("  Default-Zone "); spec == nil {
		t.Error("Lookup should match case-insensitively with whitespace trimmed")
	}
	if spec := Lookup("nope"); spec != nil {
		t.Errorf("Lookup(nope) = %v, want nil", spec)
	}
}
