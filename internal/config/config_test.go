package config

import (
	"testing"
	"time"
)

func TestParseDefaults(t *testing.T) {
	t.Setenv("DEVHOME_WORKSPACE", "")
	t.Setenv("DEVHOME_TICK_MS", "")
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workspace != "workspace.yaml" || cfg.Tab != "projects" || cfg.Theme != ThemeDark {
		t.Fatalf("unexpected defaults: %s", cfg)
	}
	if cfg.Tick() != 250*time.Millisecond {
		t.Fatalf("unexpected tick %v", cfg.Tick())
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("DEVHOME_WORKSPACE", "/tmp/ws.json")
	t.Setenv("DEVHOME_TICK_MS", "10")
	cfg, err := Parse([]string{"-tab", "defects"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Workspace != "/tmp/ws.json" || cfg.Tab != "defects" {
		t.Fatalf("unexpected config: %s", cfg)
	}
	if cfg.TickMS != 50 {
		t.Fatalf("tick should be clamped to 50ms, got %d", cfg.TickMS)
	}
}

func TestParseValidation(t *testing.T) {
	bad := [][]string{
		{"-export", "csv"},
		{"-export", "xml", "-out", "x"},
		{"-follow"},
		{"-theme", "neon"},
		{"-tab", "graphs"},
	}
	for _, args := range bad {
		if _, err := Parse(args); err == nil {
			t.Fatalf("expected error for %v", args)
		}
	}
}
