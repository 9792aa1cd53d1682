package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Tabs.Throttle() != 150*time.Millisecond {
		t.Fatalf("throttle = %v", cfg.Tabs.Throttle())
	}
	if cfg.Tabs.UnmountDelay() != 300*time.Millisecond {
		t.Fatalf("unmount delay = %v", cfg.Tabs.UnmountDelay())
	}
	if cfg.Tabs.ClosedStackMax != 25 {
		t.Fatalf("closed stack max = %d", cfg.Tabs.ClosedStackMax)
	}
}

func TestValidateRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"empty title":        func(c *Config) { c.Window.Title = " " },
		"tiny window":        func(c *Config) { c.Window.Width = 10 },
		"empty label":        func(c *Config) { c.Tabs.DefaultLabel = "" },
		"negative throttle":  func(c *Config) { c.Tabs.ThrottleMs = -1 },
		"negative unmount":   func(c *Config) { c.Tabs.UnmountDelayMs = -5 },
		"zero closed stack":  func(c *Config) { c.Tabs.ClosedStackMax = 0 },
		"non-loopback":       func(c *Config) { c.Bridge.Addr = "0.0.0.0:0" },
		"bad addr":           func(c *Config) { c.Bridge.Addr = "localhost" },
		"bad dev server":     func(c *Config) { c.Bridge.DevServerURL = "ftp://x" },
		"negative log lines": func(c *Config) { c.Log.BufferLines = -1 },
		"empty ui file":      func(c *Config) { c.UIFile = "" },
		"dev without probes": func(c *Config) {
			c.Bridge.DevServerURL = "http://localhost:5173"
			c.Bridge.DevProbeAttempts = 0
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestEnsureCreatesThenLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "tabshell.json")

	cfg, created, err := Ensure(path)
	if err != nil {
		t.Fatal(err)
	}
	if !created {
		t.Fatal("expected config to be created")
	}
	if cfg.Tabs.DefaultLabel != "New Tab" {
		t.Fatalf("label = %q", cfg.Tabs.DefaultLabel)
	}

	cfg.Tabs.DefaultLabel = "Blank"
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	again, created, err := Ensure(path)
	if err != nil {
		t.Fatal(err)
	}
	if created {
		t.Fatal("expected existing config to be loaded")
	}
	if again.Tabs.DefaultLabel != "Blank" {
		t.Fatalf("label = %q, want Blank", again.Tabs.DefaultLabel)
	}
}

func TestLoadStripsBOMAndKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	body := "\xEF\xBB\xBF" + `{"tabs":{"throttle_ms":50}}`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tabs.ThrottleMs != 50 {
		t.Fatalf("throttle_ms = %d, want 50", cfg.Tabs.ThrottleMs)
	}
	if cfg.Tabs.UnmountDelayMs != 300 {
		t.Fatalf("unmount_delay_ms = %d, want default 300", cfg.Tabs.UnmountDelayMs)
	}
}

func TestLoadPartialSkipsValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	if err := os.WriteFile(path, []byte(`{"tabs":{"closed_stack_max":0}}`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil || !strings.Contains(err.Error(), "closed_stack_max") {
		t.Fatalf("Load error = %v, want closed_stack_max validation error", err)
	}
	cfg, err := LoadPartial(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Tabs.ClosedStackMax != 0 {
		t.Fatalf("closed_stack_max = %d", cfg.Tabs.ClosedStackMax)
	}
}
