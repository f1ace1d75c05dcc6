// Package loaders holds the file loaders registered with the asset
// manager.
package loaders

import (
	"github.com/spaghettifunk/pixelui/ui"
)

// StylesheetLoader loads .pwss stylesheets together with their referenced
// bitmap font.
type StylesheetLoader struct{}

func (l *StylesheetLoader) Load(path string) (interface{}, error) {
	return ui.LoadStylesheet(path)
}
