// Package widget is the widget library surface consumed by the engine
// integration: the Model contract, the Ui session holding one widget tree,
// the event and stylesheet types, and the built-in widgets.
package widget

import (
	"errors"

	"github.com/spaghettifunk/pixelui/widget/draw"
	"github.com/spaghettifunk/pixelui/widget/layout"
)

// ErrLoaderDisabled is returned by LoadStylesheet: sessions embedded in a
// host engine must load stylesheets through the host asset manager, which
// owns file access and hot reload.
var ErrLoaderDisabled = errors.New("widget: in-session stylesheet loading is disabled, load through the host asset manager")

// Ui is one widget tree instance: the model, its current view, the active
// stylesheet and the dirty state deciding whether Draw has work to do.
type Ui struct {
	model Model
	root  Node
	ctx   *Context

	viewport layout.Rectangle
	mods     Modifiers

	dirty       bool
	pendingFont bool
}

// New creates a session for model with the given initial viewport.
// The session starts dirty so the first frame always draws.
func New(model Model, viewport layout.Rectangle) *Ui {
	u := &Ui{
		model:    model,
		ctx:      newContext(DefaultStyle()),
		viewport: viewport,
		dirty:    true,
	}
	u.ctx.viewport = viewport
	u.root = model.View()
	return u
}

// Resize sets a new viewport and invalidates layout. Callers are expected
// to invoke this only on an actual size change; a same-size call is
// absorbed here regardless.
func (u *Ui) Resize(viewport layout.Rectangle) {
	if u.viewport == viewport {
		return
	}
	u.viewport = viewport
	u.ctx.viewport = viewport
	u.dirty = true
}

// ReplaceStylesheet swaps the active style and triggers a full redraw.
// A style carrying a font schedules the font atlas for re-upload.
func (u *Ui) ReplaceStylesheet(style *Style) {
	u.ctx.Style = style
	u.pendingFont = style.Font != nil
	u.dirty = true
}

// Style returns the active stylesheet.
func (u *Ui) Style() *Style {
	return u.ctx.Style
}

// NeedsRedraw reports whether the widget tree changed since the last Draw.
// It is cheap and must be checked before calling Draw.
func (u *Ui) NeedsRedraw() bool {
	return u.dirty
}

// Invalidate forces the next NeedsRedraw to report true. Callers use it
// when a produced draw list could not be applied and must be rebuilt.
func (u *Ui) Invalidate() {
	u.dirty = true
}

// Event feeds one input event into the widget tree. Messages dispatched
// by widgets are applied to the model immediately; any asynchronous
// follow-up work is returned for the caller to run.
func (u *Ui) Event(event Event) []Async {
	switch ev := event.(type) {
	case EventResize:
		u.Resize(layout.FromWH(ev.Width, ev.Height))
		return nil
	case EventModifiers:
		u.mods = ev.Modifiers
		return nil
	}

	u.root.Event(u.ctx, u.viewport.Shrink(u.ctx.Style.Padding), event)

	if ev, ok := event.(EventCursor); ok {
		u.ctx.cursorX = ev.X
		u.ctx.cursorY = ev.Y
	}

	if u.ctx.redraw {
		u.ctx.redraw = false
		u.dirty = true
	}

	var asyncs []Async
	for _, message := range u.ctx.drain() {
		asyncs = append(asyncs, u.apply(message)...)
	}
	return asyncs
}

// Command applies one asynchronously delivered message to the model.
func (u *Ui) Command(message interface{}) []Async {
	return u.apply(message)
}

// Draw extracts the draw list for the current widget tree and clears the
// dirty flag. Calling it while clean is wasteful but harmless.
func (u *Ui) Draw() draw.List {
	// the returned list is retained by the caller across frames, so every
	// draw builds into fresh storage
	builder := draw.NewBuilder()

	style := u.ctx.Style
	if u.pendingFont {
		font := style.Font
		builder.Texture(FontTextureID, uint32(font.AtlasWidth), uint32(font.AtlasHeight), font.Atlas)
		u.pendingFont = false
	}

	if style.Background[3] > 0 {
		builder.SolidQuad(u.viewport, [4]float32(style.Background))
	}
	u.root.Draw(u.ctx, u.viewport.Shrink(style.Padding), builder)

	u.dirty = false
	return builder.Finish()
}

// LoadStylesheet always fails: see ErrLoaderDisabled.
func (u *Ui) LoadStylesheet(path string) error {
	return ErrLoaderDisabled
}

// apply runs one message through the model and rebuilds the view.
func (u *Ui) apply(message interface{}) []Async {
	asyncs := u.model.Update(message)
	u.root = u.model.View()
	u.dirty = true
	return asyncs
}
