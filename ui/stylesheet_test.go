package ui

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pixelui/widget"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadStylesheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.pwss")
	writeFile(t, path, `
background = "#101014"
text_color = "#e6e6e6"
padding = 12.0

[button]
normal = "#373741"
hover = "#4b4b5a"
pressed = "#23232d"
text = "#f0f0f0"
padding = 6.0
`)

	style, err := LoadStylesheet(path)
	require.NoError(t, err)

	assert.Equal(t, widget.RGBA(0x10, 0x10, 0x14, 255), style.Background)
	assert.Equal(t, widget.RGBA(0xe6, 0xe6, 0xe6, 255), style.TextColor)
	assert.Equal(t, float32(12), style.Padding)
	assert.Equal(t, widget.RGBA(0x37, 0x37, 0x41, 255), style.Button.Normal)

	// Fields the file does not set keep their defaults.
	defaults := widget.DefaultStyle()
	assert.Equal(t, defaults.Spacing, style.Spacing)
	assert.Equal(t, defaults.Scroll, style.Scroll)
	assert.Nil(t, style.Font)
}

func TestLoadStylesheetColorWithAlpha(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.pwss")
	writeFile(t, path, `background = "#10101480"`)

	style, err := LoadStylesheet(path)
	require.NoError(t, err)
	assert.Equal(t, widget.RGBA(0x10, 0x10, 0x14, 0x80), style.Background)
}

func TestLoadStylesheetBadColor(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "theme.pwss")
	writeFile(t, path, `background = "red"`)

	_, err := LoadStylesheet(path)
	assert.Error(t, err)
}

func TestLoadStylesheetMissingFile(t *testing.T) {
	_, err := LoadStylesheet(filepath.Join(t.TempDir(), "nope.pwss"))
	assert.Error(t, err)
}

func TestLoadStylesheetWithFont(t *testing.T) {
	dir := t.TempDir()
	writeAtlasPage(t, filepath.Join(dir, "atlas.png"), 4, 2)
	writeFile(t, filepath.Join(dir, "demo.fnt"), demoFontDescriptor)
	path := filepath.Join(dir, "theme.pwss")
	writeFile(t, path, `font = "demo.fnt"`)

	style, err := LoadStylesheet(path)
	require.NoError(t, err)
	require.NotNil(t, style.Font)
	assert.Equal(t, "demo", style.Font.Face)
	assert.Equal(t, 4, style.Font.AtlasWidth)
	assert.Equal(t, 2, style.Font.AtlasHeight)
}

const demoFontDescriptor = `info face="demo" size=16 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=18 base=14 scaleW=4 scaleH=2 pages=1 packed=0 alphaChnl=0 redChnl=4 greenChnl=4 blueChnl=4
page id=0 file="atlas.png"
chars count=2
char id=65 x=0 y=0 width=2 height=2 xoffset=0 yoffset=0 xadvance=3 page=0 chnl=15
char id=66 x=2 y=0 width=2 height=2 xoffset=0 yoffset=0 xadvance=3 page=0 chnl=15
kernings count=1
kerning first=65 second=66 amount=-1
`

func writeAtlasPage(t *testing.T, path string, width, height int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 50), A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func TestLoadFont(t *testing.T) {
	dir := t.TempDir()
	writeAtlasPage(t, filepath.Join(dir, "atlas.png"), 4, 2)
	path := filepath.Join(dir, "demo.fnt")
	writeFile(t, path, demoFontDescriptor)

	font, err := LoadFont(path)
	require.NoError(t, err)

	assert.Equal(t, "demo", font.Face)
	assert.Equal(t, 16, font.Size)
	assert.Equal(t, 18, font.LineHeight)
	assert.Equal(t, 14, font.Baseline)
	assert.Len(t, font.Atlas, 4*2*4)

	require.Contains(t, font.Glyphs, 'A')
	glyph := font.Glyphs['A']
	assert.Equal(t, 2, glyph.Width)
	assert.Equal(t, 3, glyph.XAdvance)

	assert.Equal(t, -1, font.Kerning[[2]rune{'A', 'B'}])
}

func TestLoadFontMissingDescriptor(t *testing.T) {
	_, err := LoadFont(filepath.Join(t.TempDir(), "nope.fnt"))
	assert.Error(t, err)
}
