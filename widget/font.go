package widget

// Glyph is one character's placement inside a font atlas, in pixels.
type Glyph struct {
	X        int
	Y        int
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	XAdvance int
}

// Font is a bitmap font: glyph metrics plus the rgba8 pixels of its atlas
// page. The session uploads the atlas through a draw list texture update
// the first time the font is drawn after a stylesheet change.
type Font struct {
	Face       string
	Size       int
	LineHeight int
	Baseline   int

	AtlasWidth  int
	AtlasHeight int
	Atlas       []byte

	Glyphs  map[rune]Glyph
	Kerning map[[2]rune]int
}

// fallbackAdvance sizes text when no font is attached, so layout stays
// stable while a stylesheet is still loading.
const (
	fallbackAdvance    = 8
	fallbackLineHeight = 16
)

// Advance returns the horizontal advance for r following prev, including
// kerning. prev may be 0 for the first character.
func (f *Font) Advance(prev, r rune) float32 {
	g, ok := f.Glyphs[r]
	if !ok {
		return 0
	}
	adv := g.XAdvance
	if prev != 0 {
		adv += f.Kerning[[2]rune{prev, r}]
	}
	return float32(adv)
}

// MeasureText returns the size of a single line of text. A nil font
// measures with fallback metrics.
func (f *Font) MeasureText(text string) (width, height float32) {
	if f == nil {
		return float32(len(text) * fallbackAdvance), fallbackLineHeight
	}
	var w float32
	prev := rune(0)
	for _, r := range text {
		w += f.Advance(prev, r)
		prev = r
	}
	return w, float32(f.LineHeight)
}
