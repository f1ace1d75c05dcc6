package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pixelui/engine/core"
)

func TestLoadApplicationConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
name = "demo"
width = 1920
height = 1080
log_level = "debug"
assets_dir = "data"
stylesheet = "data/styles/dark.pwss"
`), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", config.Name)
	assert.Equal(t, uint32(1920), config.StartWidth)
	assert.Equal(t, uint32(1080), config.StartHeight)
	assert.Equal(t, core.DebugLevel, config.LogLevel)
	assert.Equal(t, "data", config.AssetsDir)
	assert.Equal(t, "data/styles/dark.pwss", config.StylesheetPath)
}

func TestLoadApplicationConfigDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.toml")
	require.NoError(t, os.WriteFile(path, []byte(`name = "demo"`), 0o644))

	config, err := LoadApplicationConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(1280), config.StartWidth)
	assert.Equal(t, uint32(720), config.StartHeight)
	assert.Equal(t, core.InfoLevel, config.LogLevel)
}

func TestLoadApplicationConfigMissingFile(t *testing.T) {
	_, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
