// Package prefs remembers window geometry and zoom between runs.
//
// Values are machine-written numbers kept in a small JSON object next to the
// TOML configuration; the user edits the configuration, never this file.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const fileName = "preferences.json"

// Keys stored by the editor.
const (
	KeyWindowWidth  = "window_width"
	KeyWindowHeight = "window_height"
	KeyZoom         = "zoom"
)

// Prefs is a set of named numbers backed by one file.
type Prefs struct {
	mu     sync.RWMutex
	path   string
	values map[string]float64
}

// Load opens the preferences in the user config directory.
func Load() *Prefs {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return LoadFrom(filepath.Join(dir, "gatos", fileName))
}

// LoadFrom opens the preferences stored at path. An absent or unreadable
// file yields an empty set; it is replaced on the next Save.
func LoadFrom(path string) *Prefs {
	p := &Prefs{path: path, values: map[string]float64{}}
	if data, err := os.ReadFile(path); err == nil {
		var stored map[string]float64
		if json.Unmarshal(data, &stored) == nil {
			p.values = stored
		}
	}
	if p.values == nil {
		p.values = map[string]float64{}
	}
	return p
}

// Path is where Save writes.
func (p *Prefs) Path() string {
	return p.path
}

// Float returns the value for key, or fallback when it was never stored.
func (p *Prefs) Float(key string, fallback float64) float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if v, ok := p.values[key]; ok {
		return v
	}
	return fallback
}

// SetFloat records a value for the next Save.
func (p *Prefs) SetFloat(key string, val float64) {
	p.mu.Lock()
	p.values[key] = val
	p.mu.Unlock()
}

// Save writes the values through a temporary file so a crash mid-write
// leaves the previous file intact.
func (p *Prefs) Save() error {
	p.mu.RLock()
	data, err := json.MarshalIndent(p.values, "", "  ")
	p.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("encode prefs: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	tmp, err := os.CreateTemp(dir, fileName+".*")
	if err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("save prefs: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("save prefs: %w", err)
	}
	return nil
}
