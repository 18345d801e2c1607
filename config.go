package breeze

import (
	"fmt"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// WindowConfig describes the window a host creates. It can be loaded from
// TOML:
//
//	title = "Tray"
//	width = 320
//	height = 200
//	transparent = true
//	repaint_timeout_ms = 500
type WindowConfig struct {
	Title       string `toml:"title"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	Transparent bool   `toml:"transparent"`
	Decorated   bool   `toml:"decorated"`
	Topmost     bool   `toml:"topmost"`
	Resizable   bool   `toml:"resizable"`
	VSync       bool   `toml:"vsync"`
	// NoActivate creates the window without taking focus and keeps it out
	// of the taskbar.
	NoActivate bool `toml:"no_activate"`
	// TPS is the host tick rate. Zero keeps the host default.
	TPS int `toml:"tps"`

	RepaintTimeoutMs int    `toml:"repaint_timeout_ms"`
	Debug            bool   `toml:"debug"`
	ScreenshotDir    string `toml:"screenshot_dir"`
}

// DefaultWindowConfig returns a decorated, resizable 800x600 window.
func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Title:            "breeze",
		Width:            800,
		Height:           600,
		Decorated:        true,
		Resizable:        true,
		VSync:            true,
		RepaintTimeoutMs: int(DefaultRepaintTimeout / time.Millisecond),
		ScreenshotDir:    "screenshots",
	}
}

// RepaintTimeout returns the configured timeout, or DefaultRepaintTimeout
// when unset.
func (c WindowConfig) RepaintTimeout() time.Duration {
	if c.RepaintTimeoutMs <= 0 {
		return DefaultRepaintTimeout
	}
	return time.Duration(c.RepaintTimeoutMs) * time.Millisecond
}

// LoadWindowConfig parses TOML over DefaultWindowConfig. Keys missing from
// data keep their defaults.
func LoadWindowConfig(data []byte) (WindowConfig, error) {
	cfg := DefaultWindowConfig()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return WindowConfig{}, fmt.Errorf("breeze: parse window config: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return WindowConfig{}, fmt.Errorf("breeze: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	return cfg, nil
}

// LoadWindowConfigFile reads and parses a TOML file.
func LoadWindowConfigFile(path string) (WindowConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WindowConfig{}, fmt.Errorf("breeze: read window config: %w", err)
	}
	return LoadWindowConfig(data)
}
