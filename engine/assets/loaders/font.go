package loaders

import (
	"github.com/spaghettifunk/pixelui/ui"
)

// FontLoader loads AngelCode .fnt bitmap fonts plus their atlas page.
type FontLoader struct{}

func (l *FontLoader) Load(path string) (interface{}, error) {
	return ui.LoadFont(path)
}
