package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "music.db", cfg.Database.Path)
	assert.Equal(t, -1, cfg.Audio.Device)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, "INFO", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[database]
path = "/var/lib/playr/library.db"

[log]
level = "DEBUG"
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/playr/library.db", cfg.Database.Path)
	assert.Equal(t, "DEBUG", cfg.Log.Level)

	// Omitted sections keep their defaults
	assert.Equal(t, -1, cfg.Audio.Device)
	assert.Equal(t, 44100, cfg.Audio.SampleRate)
	assert.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("[database\npath="), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteExample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	require.NoError(t, WriteExample(path))

	// The written example parses back to the defaults
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	// Refuses to clobber an existing file
	assert.Error(t, WriteExample(path))
}
