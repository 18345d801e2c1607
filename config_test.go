package breeze

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultWindowConfig(t *testing.T) {
	cfg := DefaultWindowConfig()
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, cfg.Decorated)
	assert.False(t, cfg.Transparent)
	assert.Equal(t, DefaultRepaintTimeout, cfg.RepaintTimeout())
	assert.Equal(t, "screenshots", cfg.ScreenshotDir)
}

func TestLoadWindowConfigOverridesDefaults(t *testing.T) {
	cfg, err := LoadWindowConfig([]byte(`
title = "Tray"
width = 320
height = 200
transparent = true
decorated = false
repaint_timeout_ms = 250
`))
	require.NoError(t, err)
	assert.Equal(t, "Tray", cfg.Title)
	assert.Equal(t, 320, cfg.Width)
	assert.Equal(t, 200, cfg.Height)
	assert.True(t, cfg.Transparent)
	assert.False(t, cfg.Decorated)
	assert.Equal(t, 250*time.Millisecond, cfg.RepaintTimeout())
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Resizable)
	assert.True(t, cfg.VSync)
}

func TestLoadWindowConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", `width = `},
		{"zero width", `width = 0`},
		{"negative height", `height = -5`},
		{"wrong type", `width = "wide"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadWindowConfig([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestRepaintTimeoutFallback(t *testing.T) {
	cfg := DefaultWindowConfig()
	cfg.RepaintTimeoutMs = 0
	assert.Equal(t, DefaultRepaintTimeout, cfg.RepaintTimeout())
	cfg.RepaintTimeoutMs = -10
	assert.Equal(t, DefaultRepaintTimeout, cfg.RepaintTimeout())
}

func TestLoadWindowConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "window.toml")
	require.NoError(t, os.WriteFile(path, []byte("width = 1024\ndebug = true\n"), 0o644))

	cfg, err := LoadWindowConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1024, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.True(t, cfg.Debug)

	_, err = LoadWindowConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}
