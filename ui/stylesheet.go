package ui

import (
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/fzipp/bmfont"
	"github.com/pelletier/go-toml/v2"
	xdraw "golang.org/x/image/draw"

	"github.com/spaghettifunk/pixelui/widget"
)

// StylesheetExtension is the file extension the asset manager routes to
// this loader.
const StylesheetExtension = ".pwss"

// stylesheetDoc is the on-disk stylesheet shape: the style fields plus a
// font reference resolved relative to the stylesheet file.
type stylesheetDoc struct {
	widget.Style
	FontFile string `toml:"font"`
}

// LoadStylesheet parses a .pwss stylesheet and loads its referenced
// bitmap font, if any. Fields missing from the file keep their defaults.
func LoadStylesheet(path string) (*widget.Style, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("stylesheet %s: %w", path, err)
	}

	doc := stylesheetDoc{Style: *widget.DefaultStyle()}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("stylesheet %s: %w", path, err)
	}

	if doc.FontFile != "" {
		font, err := LoadFont(filepath.Join(filepath.Dir(path), doc.FontFile))
		if err != nil {
			return nil, fmt.Errorf("stylesheet %s: %w", path, err)
		}
		doc.Style.Font = font
	}
	return &doc.Style, nil
}

// LoadFont reads an AngelCode .fnt descriptor and its first atlas page
// into the widget library's font representation. The page image is
// converted to rgba8 whatever its source format.
func LoadFont(path string) (*widget.Font, error) {
	desc, err := bmfont.LoadDescriptor(path)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}
	if len(desc.Pages) == 0 {
		return nil, fmt.Errorf("font %s: no atlas pages", path)
	}

	var pageFile string
	for _, page := range desc.Pages {
		if pageFile == "" || page.ID == 0 {
			pageFile = page.File
		}
	}

	atlas, width, height, err := loadAtlasPage(filepath.Join(filepath.Dir(path), pageFile))
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", path, err)
	}

	font := &widget.Font{
		Face:        desc.Info.Face,
		Size:        desc.Info.Size,
		LineHeight:  desc.Common.LineHeight,
		Baseline:    desc.Common.Base,
		AtlasWidth:  width,
		AtlasHeight: height,
		Atlas:       atlas,
		Glyphs:      make(map[rune]widget.Glyph, len(desc.Chars)),
		Kerning:     make(map[[2]rune]int, len(desc.Kerning)),
	}
	for _, c := range desc.Chars {
		font.Glyphs[c.ID] = widget.Glyph{
			X:        c.X,
			Y:        c.Y,
			Width:    c.Width,
			Height:   c.Height,
			XOffset:  c.XOffset,
			YOffset:  c.YOffset,
			XAdvance: c.XAdvance,
		}
	}
	for pair, k := range desc.Kerning {
		font.Kerning[[2]rune{pair.First, pair.Second}] = k.Amount
	}
	return font, nil
}

// loadAtlasPage decodes a page image and repacks it as tightly packed
// rgba8 pixels.
func loadAtlasPage(path string) ([]byte, int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("page %s: %w", path, err)
	}

	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	xdraw.Draw(dst, dst.Bounds(), src, bounds.Min, xdraw.Src)
	return dst.Pix, bounds.Dx(), bounds.Dy(), nil
}
