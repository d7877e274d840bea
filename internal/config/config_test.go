package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Location != DefaultLocation {
		t.Errorf("Location = %q, want %q", cfg.Location, DefaultLocation)
	}
	if cfg.Debounce() != 100*time.Millisecond {
		t.Errorf("Debounce() = %v, want 100ms", cfg.Debounce())
	}
	if cfg.ComparisonWindow != 100 {
		t.Errorf("ComparisonWindow = %d, want 100", cfg.ComparisonWindow)
	}
	if cfg.UndoDepth != 50 {
		t.Errorf("UndoDepth = %d, want 50", cfg.UndoDepth)
	}
	if cfg.SameSessionWindow() != 3*time.Minute {
		t.Errorf("SameSessionWindow() = %v, want 3m", cfg.SameSessionWindow())
	}
	if cfg.LargeFileBytes() != 50*1024*1024 {
		t.Errorf("LargeFileBytes() = %d, want 50MB", cfg.LargeFileBytes())
	}
	if cfg.Deferred() {
		t.Error("Deferred() = true by default, want immediate")
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("location: /tmp/clutter\nbin_mode: deferred\nlarge_file_mb: 10\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DESKSWEEP_CONFIG", path)
	t.Setenv("DESKSWEEP_LOCATION", "")
	t.Setenv("DESKSWEEP_BIN_MODE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Location != "/tmp/clutter" {
		t.Errorf("Location = %q, want /tmp/clutter", cfg.Location)
	}
	if !cfg.Deferred() {
		t.Error("Deferred() = false, want deferred from file")
	}
	if cfg.LargeFileBytes() != 10*1024*1024 {
		t.Errorf("LargeFileBytes() = %d, want 10MB", cfg.LargeFileBytes())
	}
	// Unset keys keep their defaults.
	if cfg.UndoDepth != 50 {
		t.Errorf("UndoDepth = %d, want default 50", cfg.UndoDepth)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("location: /tmp/from-file\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("DESKSWEEP_CONFIG", path)
	t.Setenv("DESKSWEEP_LOCATION", "/tmp/from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Location != "/tmp/from-env" {
		t.Errorf("Location = %q, env must win over file", cfg.Location)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DESKSWEEP_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	t.Setenv("DESKSWEEP_LOCATION", "")
	t.Setenv("DESKSWEEP_BIN_MODE", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v for a missing file", err)
	}
	if cfg.Location != DefaultLocation {
		t.Errorf("Location = %q, want default", cfg.Location)
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()
	tests := []struct {
		in   string
		want string
	}{
		{"~/Desktop", filepath.Join(home, "Desktop")},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
	}
	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
