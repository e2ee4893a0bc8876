package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", fileName)
	p := LoadFrom(path)
	assert.Equal(t, 1280.0, p.Float(KeyWindowWidth, 1280))

	p.SetFloat(KeyWindowWidth, 1024)
	p.SetFloat(KeyZoom, 0.8)
	require.NoError(t, p.Save())

	again := LoadFrom(path)
	assert.Equal(t, 1024.0, again.Float(KeyWindowWidth, 1))
	assert.Equal(t, 0.8, again.Float(KeyZoom, 1))
	assert.Equal(t, 7.0, again.Float(KeyWindowHeight, 7))

	// No temporary files are left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestUnreadableFileGivesEmptyPrefs(t *testing.T) {
	for name, body := range map[string]string{
		"corrupt":   "{not json",
		"not float": `{"zoom": "big"}`,
		"null":      "null",
	} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), fileName)
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			p := LoadFrom(path)
			assert.Equal(t, 2.0, p.Float(KeyZoom, 2))
			assert.Equal(t, path, p.Path())

			p.SetFloat(KeyZoom, 3)
			require.NoError(t, p.Save())
			assert.Equal(t, 3.0, LoadFrom(path).Float(KeyZoom, 2))
		})
	}
}
