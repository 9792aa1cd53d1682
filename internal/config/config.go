package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"github.com/petervdpas/tabshell/internal/util"
)

type Config struct {
	Window Window `json:"window"`
	Tabs   Tabs   `json:"tabs"`
	Bridge Bridge `json:"bridge"`
	Log    Log    `json:"log"`

	// Theme file. Relative paths resolve against the config file's directory.
	UIFile string `json:"ui_file"`
}

type Window struct {
	Title  string `json:"title"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Tabs struct {
	// Label given to freshly created tabs.
	DefaultLabel string `json:"default_label"`

	// Minimum interval between accepted add/close/reopen mutations.
	ThrottleMs int `json:"throttle_ms"`

	// Grace period before a removed tab's content surface is torn down.
	// Also the delay of the redundant state publish after a close.
	UnmountDelayMs int `json:"unmount_delay_ms"`

	// Capacity of the recently-closed stack used by reopen.
	ClosedStackMax int `json:"closed_stack_max"`
}

type Bridge struct {
	// Listen address of the local bridge server. Port 0 picks a free port.
	Addr string `json:"addr"`

	// Optional frontend dev server (e.g. http://localhost:5173). When it
	// answers, content surfaces are loaded from it instead of the bridge.
	DevServerURL string `json:"dev_server_url"`

	DevProbeAttempts   int `json:"dev_probe_attempts"`
	DevProbeIntervalMs int `json:"dev_probe_interval_ms"`
}

type Log struct {
	BufferLines int  `json:"buffer_lines"`
	Debug       bool `json:"debug"`
}

func Default() Config {
	return Config{
		Window: Window{
			Title:  "tabshell",
			Width:  1100,
			Height: 750,
		},
		Tabs: Tabs{
			DefaultLabel:   "New Tab",
			ThrottleMs:     150,
			UnmountDelayMs: 300,
			ClosedStackMax: 25,
		},
		Bridge: Bridge{
			Addr:               "127.0.0.1:0",
			DevServerURL:       "",
			DevProbeAttempts:   20,
			DevProbeIntervalMs: 500,
		},
		Log: Log{
			BufferLines: 800,
		},
		UIFile: "ui.json",
	}
}

func (c *Config) Validate() error {
	// Window
	if strings.TrimSpace(c.Window.Title) == "" {
		return errors.New("window.title is required")
	}
	if c.Window.Width < 200 || c.Window.Height < 150 {
		return errors.New("window.width/height must be at least 200x150")
	}

	// Tabs
	if strings.TrimSpace(c.Tabs.DefaultLabel) == "" {
		return errors.New("tabs.default_label is required")
	}
	if c.Tabs.ThrottleMs < 0 {
		return errors.New("tabs.throttle_ms must be >= 0")
	}
	if c.Tabs.UnmountDelayMs < 0 {
		return errors.New("tabs.unmount_delay_ms must be >= 0")
	}
	if c.Tabs.ClosedStackMax < 1 {
		return errors.New("tabs.closed_stack_max must be > 0")
	}

	// Bridge
	host, port, err := net.SplitHostPort(c.Bridge.Addr)
	if err != nil {
		return fmt.Errorf("bridge.addr: %w", err)
	}
	if ip := net.ParseIP(host); ip == nil || !ip.IsLoopback() {
		return errors.New("bridge.addr must bind a loopback IP")
	}
	if port == "" {
		return errors.New("bridge.addr: missing port")
	}
	if dev := strings.TrimSpace(c.Bridge.DevServerURL); dev != "" {
		if err := util.ValidateExternalURL(dev); err != nil {
			return fmt.Errorf("bridge.dev_server_url: %w", err)
		}
		if c.Bridge.DevProbeAttempts < 1 {
			return errors.New("bridge.dev_probe_attempts must be > 0 when dev_server_url is set")
		}
		if c.Bridge.DevProbeIntervalMs < 0 {
			return errors.New("bridge.dev_probe_interval_ms must be >= 0")
		}
	}

	// Log
	if c.Log.BufferLines < 0 {
		return errors.New("log.buffer_lines must be >= 0")
	}

	if strings.TrimSpace(c.UIFile) == "" {
		return errors.New("ui_file is required")
	}

	return nil
}

// Throttle returns the mutation throttle window.
func (t Tabs) Throttle() time.Duration {
	return time.Duration(t.ThrottleMs) * time.Millisecond
}

// UnmountDelay returns the staggered teardown delay.
func (t Tabs) UnmountDelay() time.Duration {
	return time.Duration(t.UnmountDelayMs) * time.Millisecond
}

// DevProbeInterval returns the pause between dev server probes.
func (b Bridge) DevProbeInterval() time.Duration {
	return time.Duration(b.DevProbeIntervalMs) * time.Millisecond
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	// Strip UTF-8 BOM if present (common when editing JSON on Windows).
	b = stripBOM(b)

	// Start from defaults so missing JSON fields remain initialized.
	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadPartial reads a config file without validation. Useful for reading
// individual fields when full validation may fail.
func LoadPartial(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	b = stripBOM(b)

	cfg := Default()
	if err := json.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// stripBOM removes a UTF-8 byte order mark if present.
func stripBOM(b []byte) []byte {
	if len(b) >= 3 && b[0] == 0xEF && b[1] == 0xBB && b[2] == 0xBF {
		return b[3:]
	}
	return b
}

func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	return util.WriteJSONFile(path, cfg)
}

// Ensure loads config if it exists; otherwise creates a default config file.
// Returns (cfg, createdNew, err).
func Ensure(path string) (Config, bool, error) {
	if _, err := os.Stat(path); err == nil {
		cfg, err := Load(path)
		return cfg, false, err
	} else if !os.IsNotExist(err) {
		return Config{}, false, err
	}

	cfg := Default()
	if err := Save(path, cfg); err != nil {
		return Config{}, false, fmt.Errorf("create default config: %w", err)
	}
	return cfg, true, nil
}
