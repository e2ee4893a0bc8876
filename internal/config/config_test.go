package config

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gatos/pkg/colorutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	require.NoError(t, cfg.Validate())
}

func TestLoadPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gatos.toml")
	writeFile(t, path, `
title = "bench"
tick_interval = "20ms"
zoom = 0.5

[colors]
wire = "#ff0000"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	def := Default()
	assert.Equal(t, "bench", cfg.Title)
	assert.Equal(t, 20*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 0.5, cfg.Zoom)
	assert.Equal(t, def.Width, cfg.Width)
	assert.Equal(t, def.PaletteFraction, cfg.PaletteFraction)
	assert.Equal(t, def.Colors.Background, cfg.Colors.Background)

	style := cfg.MustStyle()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, style.Wire)
	assert.Equal(t, colorutil.Background, style.Background)
}

func TestLoadRejectsBadFiles(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `title = `},
		{"unknown key", `titel = "x"`},
		{"zoom range", `zoom = 50.0`},
		{"palette range", `palette_fraction = 0.0`},
		{"colour", "[colors]\ngrid = \"green\""},
		{"size", `width = -1.0`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "gatos.toml")
			writeFile(t, path, tt.body)
			cfg, err := Load(path)
			assert.Error(t, err)
			assert.Equal(t, Default(), cfg)
		})
	}
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, "gatos.toml", filepath.Base(DefaultPath()))
}

func TestWatcherReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gatos.toml")
	writeFile(t, path, `zoom = 1.0`)

	w, err := NewWatcher(path)
	require.NoError(t, err)
	got := make(chan Config, 8)
	w.OnChange(func(cfg Config) {
		select {
		case got <- cfg:
		default:
		}
	})
	w.Start()
	defer w.Stop()

	// Unrelated files are ignored.
	writeFile(t, filepath.Join(dir, "other.toml"), `zoom = 3.0`)
	writeFile(t, path, `zoom = 2.0`)

	// A truncate can be seen before the write lands, so wait for the final
	// contents.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case cfg := <-got:
			assert.NotEqual(t, 3.0, cfg.Zoom)
			if cfg.Zoom == 2.0 {
				return
			}
		case <-deadline:
			t.Fatal("no reload after write")
		}
	}
}

func TestWatcherStopTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gatos.toml")
	w, err := NewWatcher(path)
	require.NoError(t, err)
	w.Start()

	w.Stop()
	assert.NotPanics(t, w.Stop)
}
