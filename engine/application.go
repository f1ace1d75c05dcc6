package engine

import (
	"github.com/spaghettifunk/pixelui/engine/core"
)

type ApplicationConfig struct {
	// Window starting position x axis, if applicable.
	StartPosX uint32
	// Window starting position y axis, if applicable.
	StartPosY uint32
	// Window starting width, if applicable.
	StartWidth uint32
	// Window starting height, if applicable.
	StartHeight uint32
	// The application name used in windowing, if applicable.
	Name     string
	LogLevel core.LogLevel
	// AssetsDir is the watched asset root; defaults to ./assets.
	AssetsDir string
	// StylesheetPath is the stylesheet loaded and applied at startup.
	StylesheetPath string
}
