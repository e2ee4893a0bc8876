// Package config loads the editor configuration from a TOML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gatos/internal/palette"
	"gatos/internal/viewport"
	"gatos/pkg/colorutil"

	"github.com/BurntSushi/toml"
)

const configFile = "gatos.toml"

// Config holds the editor settings. Keys missing from the file keep their
// defaults.
type Config struct {
	Title        string        `toml:"title"`
	Width        float64       `toml:"width"`
	Height       float64       `toml:"height"`
	TickInterval time.Duration `toml:"tick_interval"`

	Zoom            float64 `toml:"zoom"`
	PaletteFraction float64 `toml:"palette_fraction"`
	SymbolPixels    int     `toml:"symbol_pixels"`

	Colors Colors `toml:"colors"`

	Debug   bool   `toml:"debug"`
	LogFile string `toml:"log_file"`
}

// Colors holds hex colour strings.
type Colors struct {
	Background string `toml:"background"`
	Grid       string `toml:"grid"`
	Wire       string `toml:"wire"`
	Preview    string `toml:"preview"`
}

// Style is the parsed form of Colors.
type Style struct {
	Background color.RGBA
	Grid       color.RGBA
	Wire       color.RGBA
	Preview    color.RGBA
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Title:           "gatos",
		Width:           1280,
		Height:          720,
		TickInterval:    16 * time.Millisecond,
		Zoom:            1,
		PaletteFraction: palette.DefaultFraction,
		SymbolPixels:    110,
		Colors: Colors{
			Background: colorutil.Hex(colorutil.Background),
			Grid:       colorutil.Hex(colorutil.Grid),
			Wire:       colorutil.Hex(colorutil.Wire),
			Preview:    colorutil.Hex(colorutil.Preview),
		},
	}
}

// DefaultPath returns ~/.config/gatos/gatos.toml.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "gatos", configFile)
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Default(), fmt.Errorf("load config %s: unknown keys %v", path, undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks ranges and colours.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size %gx%g must be positive", c.Width, c.Height)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tick_interval %v must be positive", c.TickInterval)
	}
	if c.Zoom < viewport.MinZoom || c.Zoom > viewport.MaxZoom {
		return fmt.Errorf("zoom %g outside [%g, %g]", c.Zoom, viewport.MinZoom, viewport.MaxZoom)
	}
	if c.PaletteFraction <= 0 || c.PaletteFraction > 1 {
		return fmt.Errorf("palette_fraction %g outside (0, 1]", c.PaletteFraction)
	}
	if c.SymbolPixels <= 0 {
		return fmt.Errorf("symbol_pixels %d must be positive", c.SymbolPixels)
	}
	_, err := c.Colors.Style()
	return err
}

// Style parses the colour strings.
func (c Colors) Style() (Style, error) {
	var s Style
	for _, f := range []struct {
		name string
		src  string
		dst  *color.RGBA
	}{
		{"background", c.Background, &s.Background},
		{"grid", c.Grid, &s.Grid},
		{"wire", c.Wire, &s.Wire},
		{"preview", c.Preview, &s.Preview},
	} {
		col, err := colorutil.ParseHex(f.src)
		if err != nil {
			return Style{}, fmt.Errorf("colors.%s: %w", f.name, err)
		}
		*f.dst = col
	}
	return s, nil
}

// MustStyle parses colours already checked by Validate.
func (c Config) MustStyle() Style {
	s, err := c.Colors.Style()
	if err != nil {
		panic(err)
	}
	return s
}
