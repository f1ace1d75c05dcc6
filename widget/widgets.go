package widget

import (
	"github.com/chewxy/math32"

	"github.com/spaghettifunk/pixelui/widget/draw"
	"github.com/spaghettifunk/pixelui/widget/layout"
)

// FontTextureID is the draw list texture id reserved for the active
// stylesheet's font atlas.
const FontTextureID = 0

// Text renders a single line of text.
type Text struct {
	Content string
	Color   *Color // nil uses the stylesheet text color
}

// NewText returns a text widget.
func NewText(content string) *Text {
	return &Text{Content: content}
}

func (t *Text) Measure(ctx *Context, _ layout.Rectangle) (float32, float32) {
	return ctx.Style.Font.MeasureText(t.Content)
}

func (t *Text) Event(*Context, layout.Rectangle, Event) {}

func (t *Text) Draw(ctx *Context, area layout.Rectangle, b *draw.Builder) {
	font := ctx.Style.Font
	if font == nil {
		return
	}
	color := ctx.Style.TextColor
	if t.Color != nil {
		color = *t.Color
	}

	penX := area.Left
	prev := rune(0)
	aw := float32(font.AtlasWidth)
	ah := float32(font.AtlasHeight)
	for _, r := range t.Content {
		g, ok := font.Glyphs[r]
		if !ok {
			prev = r
			continue
		}
		if prev != 0 {
			penX += float32(font.Kerning[[2]rune{prev, r}])
		}
		quad := layout.FromXYWH(
			penX+float32(g.XOffset),
			area.Top+float32(g.YOffset),
			float32(g.Width),
			float32(g.Height),
		)
		uv := layout.Rectangle{
			Left:   float32(g.X) / aw,
			Top:    float32(g.Y) / ah,
			Right:  float32(g.X+g.Width) / aw,
			Bottom: float32(g.Y+g.Height) / ah,
		}
		b.TexturedQuad(quad, uv, FontTextureID, [4]float32(color), draw.ModeText)
		penX += float32(g.XAdvance)
		prev = r
	}
}

// Button is a clickable region with a label. Clicked dispatches the
// OnClick message to the model. The pressed state is tracked through the
// context by id so it survives view rebuilds.
type Button struct {
	ID      string
	Label   Node
	OnClick interface{}
}

// NewButton returns a button dispatching message when clicked.
func NewButton(id string, label Node, message interface{}) *Button {
	return &Button{ID: id, Label: label, OnClick: message}
}

func (bt *Button) Measure(ctx *Context, available layout.Rectangle) (float32, float32) {
	w, h := bt.Label.Measure(ctx, available)
	pad := ctx.Style.Button.Padding
	return w + pad*2, h + pad*2
}

func (bt *Button) Event(ctx *Context, area layout.Rectangle, event Event) {
	switch ev := event.(type) {
	case EventCursor:
		// hover is derived from the cursor during draw; a move across the
		// boundary still needs a repaint.
		if area.Contains(ev.X, ev.Y) != area.Contains(ctx.cursorX, ctx.cursorY) {
			ctx.RequestRedraw()
		}
	case EventPress:
		if ev.Key == KeyLeftMouseButton && area.Contains(ctx.cursorX, ctx.cursorY) {
			ctx.active = bt.ID
			ctx.RequestRedraw()
		}
	case EventRelease:
		if ev.Key != KeyLeftMouseButton || ctx.active != bt.ID {
			return
		}
		ctx.active = ""
		ctx.RequestRedraw()
		if area.Contains(ctx.cursorX, ctx.cursorY) && bt.OnClick != nil {
			ctx.Dispatch(bt.OnClick)
		}
	}
}

func (bt *Button) Draw(ctx *Context, area layout.Rectangle, b *draw.Builder) {
	style := ctx.Style.Button
	background := style.Normal
	switch {
	case ctx.active == bt.ID:
		background = style.Pressed
	case area.Contains(ctx.cursorX, ctx.cursorY):
		background = style.Hover
	}
	b.SolidQuad(area, [4]float32(background))

	w, h := bt.Label.Measure(ctx, area)
	label := layout.FromXYWH(
		area.Left+(area.Width()-w)/2,
		area.Top+(area.Height()-h)/2,
		w, h,
	)
	bt.Label.Draw(ctx, label, b)
}

// Column stacks children vertically with the stylesheet spacing.
type Column struct {
	Children []Node
}

// NewColumn returns a column of the given children.
func NewColumn(children ...Node) *Column {
	return &Column{Children: children}
}

// Push appends a child and returns the column for chaining.
func (c *Column) Push(child Node) *Column {
	c.Children = append(c.Children, child)
	return c
}

func (c *Column) Measure(ctx *Context, available layout.Rectangle) (float32, float32) {
	var w, h float32
	for i, child := range c.Children {
		cw, ch := child.Measure(ctx, available)
		w = math32.Max(w, cw)
		h += ch
		if i > 0 {
			h += ctx.Style.Spacing
		}
	}
	return w, h
}

func (c *Column) Event(ctx *Context, area layout.Rectangle, event Event) {
	c.visit(ctx, area, func(child Node, childArea layout.Rectangle) {
		child.Event(ctx, childArea, event)
	})
}

func (c *Column) Draw(ctx *Context, area layout.Rectangle, b *draw.Builder) {
	c.visit(ctx, area, func(child Node, childArea layout.Rectangle) {
		child.Draw(ctx, childArea, b)
	})
}

func (c *Column) visit(ctx *Context, area layout.Rectangle, fn func(Node, layout.Rectangle)) {
	y := area.Top
	for _, child := range c.Children {
		cw, ch := child.Measure(ctx, area)
		fn(child, layout.FromXYWH(area.Left, y, math32.Min(cw, area.Width()), ch))
		y += ch + ctx.Style.Spacing
	}
}

// Scroll clips its child to the laid out area and shifts it by a wheel
// controlled offset, persisted by id across view rebuilds.
type Scroll struct {
	ID    string
	Child Node
}

// NewScroll wraps child in a scroll area.
func NewScroll(id string, child Node) *Scroll {
	return &Scroll{ID: id, Child: child}
}

func (s *Scroll) Measure(ctx *Context, available layout.Rectangle) (float32, float32) {
	w, _ := s.Child.Measure(ctx, available)
	return w + ctx.Style.Scroll.Width, available.Height()
}

// scrollStep is how far one wheel notch moves the content, in pixels.
const scrollStep = 24

func (s *Scroll) Event(ctx *Context, area layout.Rectangle, event Event) {
	if ev, ok := event.(EventScroll); ok && area.Contains(ctx.cursorX, ctx.cursorY) {
		_, contentH := s.Child.Measure(ctx, area)
		max := math32.Max(0, contentH-area.Height())
		offset := math32.Min(math32.Max(ctx.ScrollOffset(s.ID)-ev.DeltaY*scrollStep, 0), max)
		if offset != ctx.ScrollOffset(s.ID) {
			ctx.SetScrollOffset(s.ID, offset)
			ctx.RequestRedraw()
		}
		return
	}
	s.Child.Event(ctx, s.contentArea(ctx, area), event)
}

func (s *Scroll) Draw(ctx *Context, area layout.Rectangle, b *draw.Builder) {
	b.Clip(area)
	s.Child.Draw(ctx, s.contentArea(ctx, area), b)

	// scroll bar on the right edge, sized by the visible fraction
	_, contentH := s.Child.Measure(ctx, area)
	if contentH > area.Height() {
		style := ctx.Style.Scroll
		track := layout.FromXYWH(area.Right-style.Width, area.Top, style.Width, area.Height())
		b.SolidQuad(track, [4]float32(style.Track))

		visible := area.Height() / contentH
		handleH := math32.Max(16, area.Height()*visible)
		travel := area.Height() - handleH
		pos := ctx.ScrollOffset(s.ID) / (contentH - area.Height())
		handle := layout.FromXYWH(track.Left, area.Top+travel*pos, style.Width, handleH)
		b.SolidQuad(handle, [4]float32(style.Handle))
	}

	// restore the viewport clip for following siblings
	b.Clip(ctx.viewport)
}

func (s *Scroll) contentArea(ctx *Context, area layout.Rectangle) layout.Rectangle {
	inner := area
	inner.Right -= ctx.Style.Scroll.Width
	return inner.Translate(0, -ctx.ScrollOffset(s.ID))
}

// Space is fixed empty space inside a column.
type Space struct {
	Width  float32
	Height float32
}

func (s *Space) Measure(*Context, layout.Rectangle) (float32, float32) {
	return s.Width, s.Height
}

func (s *Space) Event(*Context, layout.Rectangle, Event) {}

func (s *Space) Draw(*Context, layout.Rectangle, *draw.Builder) {}
