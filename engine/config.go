package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/pixelui/engine/core"
)

// configFile is the on-disk application configuration.
type configFile struct {
	Name       string `toml:"name"`
	Width      uint32 `toml:"width"`
	Height     uint32 `toml:"height"`
	PosX       uint32 `toml:"pos_x"`
	PosY       uint32 `toml:"pos_y"`
	LogLevel   string `toml:"log_level"`
	AssetsDir  string `toml:"assets_dir"`
	Stylesheet string `toml:"stylesheet"`
}

// LoadApplicationConfig reads a TOML application configuration. Missing
// fields fall back to sensible defaults.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	file := configFile{
		Name:     "pixelui",
		Width:    1280,
		Height:   720,
		LogLevel: "info",
	}
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	level := core.InfoLevel
	switch file.LogLevel {
	case "debug":
		level = core.DebugLevel
	case "warn":
		level = core.WarnLevel
	case "error":
		level = core.ErrorLevel
	}

	return &ApplicationConfig{
		StartPosX:      file.PosX,
		StartPosY:      file.PosY,
		StartWidth:     file.Width,
		StartHeight:    file.Height,
		Name:           file.Name,
		LogLevel:       level,
		AssetsDir:      file.AssetsDir,
		StylesheetPath: file.Stylesheet,
	}, nil
}
