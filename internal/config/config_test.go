package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Layout.PanelHeight != 20 {
		t.Fatalf("default panel height = %d", cfg.Layout.PanelHeight)
	}
	if cfg.Input.MultiTapInterval.Std() != 200*time.Millisecond {
		t.Fatalf("default multi-tap interval = %v", cfg.Input.MultiTapInterval.Std())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epitaph.yml")
	data := `
input:
  multi_tap_interval: 350ms
  max_tap_distance: 900
layout:
  panel_height: 24
colors:
  background: "#101010"
modules: [clock, battery]
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.MultiTapInterval.Std() != 350*time.Millisecond {
		t.Fatalf("multi-tap interval = %v", cfg.Input.MultiTapInterval.Std())
	}
	if cfg.Input.MaxTapDistance != 900 {
		t.Fatalf("max tap distance = %v", cfg.Input.MaxTapDistance)
	}
	if cfg.Layout.PanelHeight != 24 {
		t.Fatalf("panel height = %d", cfg.Layout.PanelHeight)
	}
	if got := cfg.Colors.Background; got.R != 0x10 || got.G != 0x10 || got.B != 0x10 {
		t.Fatalf("background = %v", got)
	}
	// Unset fields keep defaults.
	if cfg.Layout.ModuleSize != 64 {
		t.Fatalf("module size = %d", cfg.Layout.ModuleSize)
	}
	if got := cfg.EnabledModules(); len(got) != 2 || got[0] != "clock" {
		t.Fatalf("enabled modules = %v", got)
	}
}

func TestLoadRejectsBadColor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "epitaph.yml")
	if err := os.WriteFile(path, []byte("colors:\n  background: red\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error for non-hex color")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("EPITAPH_MULTI_TAP_INTERVAL", "1s")
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Input.MultiTapInterval.Std() != time.Second {
		t.Fatalf("multi-tap interval = %v", cfg.Input.MultiTapInterval.Std())
	}
}

func TestStoreReloadSwapsSnapshot(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "epitaph.yml")
	if err := os.WriteFile(path, []byte("layout:\n  panel_height: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	if store.Get().Layout.PanelHeight != 20 {
		t.Fatalf("initial panel height = %d", store.Get().Layout.PanelHeight)
	}

	var notified Config
	store.OnChange(func(c Config) { notified = c })

	if err := os.WriteFile(path, []byte("layout:\n  panel_height: 32\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	if store.Get().Layout.PanelHeight != 32 {
		t.Fatalf("reloaded panel height = %d", store.Get().Layout.PanelHeight)
	}
	if notified.Layout.PanelHeight != 32 {
		t.Fatalf("change callback saw height %d", notified.Layout.PanelHeight)
	}
}

func TestStoreKeepsSnapshotOnBadReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "epitaph.yml")
	if err := os.WriteFile(path, []byte("layout:\n  panel_height: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	if err := os.WriteFile(path, []byte(":::"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := store.Reload(); err == nil {
		t.Fatal("expected reload error")
	}
	if store.Get().Layout.PanelHeight != 20 {
		t.Fatal("bad reload must keep previous snapshot")
	}
}
