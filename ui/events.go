// Package ui integrates the widget library with the engine: it translates
// host input into widget events, owns the per-entity sessions with their
// command channels, reconciles draw lists into GPU resources and renders
// them through a dedicated graph node after the main pass.
package ui

import (
	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/widget"
)

// keyTable maps host scan codes to the widget library's key enumeration.
// Codes missing here are dropped at the boundary.
var keyTable = map[core.KeyCode]widget.Key{
	core.KEY_0: widget.Key0,
	core.KEY_1: widget.Key1,
	core.KEY_2: widget.Key2,
	core.KEY_3: widget.Key3,
	core.KEY_4: widget.Key4,
	core.KEY_5: widget.Key5,
	core.KEY_6: widget.Key6,
	core.KEY_7: widget.Key7,
	core.KEY_8: widget.Key8,
	core.KEY_9: widget.Key9,
	core.KEY_A: widget.KeyA,
	core.KEY_B: widget.KeyB,
	core.KEY_C: widget.KeyC,
	core.KEY_D: widget.KeyD,
	core.KEY_E: widget.KeyE,
	core.KEY_F: widget.KeyF,
	core.KEY_G: widget.KeyG,
	core.KEY_H: widget.KeyH,
	core.KEY_I: widget.KeyI,
	core.KEY_J: widget.KeyJ,
	core.KEY_K: widget.KeyK,
	core.KEY_L: widget.KeyL,
	core.KEY_M: widget.KeyM,
	core.KEY_N: widget.KeyN,
	core.KEY_O: widget.KeyO,
	core.KEY_P: widget.KeyP,
	core.KEY_Q: widget.KeyQ,
	core.KEY_R: widget.KeyR,
	core.KEY_S: widget.KeyS,
	core.KEY_T: widget.KeyT,
	core.KEY_U: widget.KeyU,
	core.KEY_V: widget.KeyV,
	core.KEY_W: widget.KeyW,
	core.KEY_X: widget.KeyX,
	core.KEY_Y: widget.KeyY,
	core.KEY_Z: widget.KeyZ,
	core.KEY_ESCAPE:    widget.KeyEscape,
	core.KEY_TAB:       widget.KeyTab,
	core.KEY_SPACE:     widget.KeySpace,
	core.KEY_ENTER:     widget.KeyEnter,
	core.KEY_BACKSPACE: widget.KeyBackspace,
	core.KEY_HOME:      widget.KeyHome,
	core.KEY_END:       widget.KeyEnd,
	core.KEY_LEFT:      widget.KeyLeft,
	core.KEY_RIGHT:     widget.KeyRight,
	core.KEY_UP:        widget.KeyUp,
	core.KEY_DOWN:      widget.KeyDown,
}

var buttonTable = map[core.Button]widget.Key{
	core.BUTTON_LEFT:   widget.KeyLeftMouseButton,
	core.BUTTON_RIGHT:  widget.KeyRightMouseButton,
	core.BUTTON_MIDDLE: widget.KeyMiddleMouseButton,
}

// Translator turns host input into widget events. It persists the modifier
// state between events and the last seen window size both for resize
// deduplication and for flipping cursor coordinates: the host reports the
// cursor from a top left origin, the widget library measures from the
// bottom left.
type Translator struct {
	mods    widget.Modifiers
	width   float32
	height  float32
	sized   bool
}

// NewTranslator returns a translator with empty modifier state. It reports
// the first resize it sees unconditionally.
func NewTranslator() *Translator {
	return &Translator{}
}

// Modifiers returns the currently held modifier combination.
func (t *Translator) Modifiers() widget.Modifiers {
	return t.mods
}

// TranslateKey maps one key transition. Modifier keys fold their left and
// right variants into a single state bit and yield a Modifiers event; the
// generic modifier codes fired by hosts that cannot distinguish sides are
// folded the same way. Unmapped keys yield nothing.
func (t *Translator) TranslateKey(code core.KeyCode, pressed bool) []widget.Event {
	switch code {
	case core.KEY_SHIFT, core.KEY_LSHIFT, core.KEY_RSHIFT:
		t.mods.Shift = pressed
		return []widget.Event{widget.EventModifiers{Modifiers: t.mods}}
	case core.KEY_CONTROL, core.KEY_LCONTROL, core.KEY_RCONTROL:
		t.mods.Ctrl = pressed
		return []widget.Event{widget.EventModifiers{Modifiers: t.mods}}
	case core.KEY_ALT, core.KEY_LALT, core.KEY_RALT:
		t.mods.Alt = pressed
		return []widget.Event{widget.EventModifiers{Modifiers: t.mods}}
	case core.KEY_LWIN, core.KEY_RWIN:
		t.mods.Logo = pressed
		return []widget.Event{widget.EventModifiers{Modifiers: t.mods}}
	}

	key, ok := keyTable[code]
	if !ok {
		return nil
	}
	if pressed {
		return []widget.Event{widget.EventPress{Key: key}}
	}
	return []widget.Event{widget.EventRelease{Key: key}}
}

// TranslateButton maps one mouse button transition.
func (t *Translator) TranslateButton(button core.Button, pressed bool) []widget.Event {
	key, ok := buttonTable[button]
	if !ok {
		return nil
	}
	if pressed {
		return []widget.Event{widget.EventPress{Key: key}}
	}
	return []widget.Event{widget.EventRelease{Key: key}}
}

// TranslateCursor maps a cursor position, flipping the vertical axis
// against the last known window height.
func (t *Translator) TranslateCursor(x, y float64) widget.Event {
	return widget.EventCursor{X: float32(x), Y: t.height - float32(y)}
}

// TranslateScroll maps wheel movement.
func (t *Translator) TranslateScroll(deltaX, deltaY float64) widget.Event {
	return widget.EventScroll{DeltaX: float32(deltaX), DeltaY: float32(deltaY)}
}

// TranslateResize records a new window size and reports whether it
// actually changed. Hosts fire resize events more often than the size
// changes; consumers only ever see real transitions.
func (t *Translator) TranslateResize(width, height uint32) (widget.Event, bool) {
	w, h := float32(width), float32(height)
	if t.sized && w == t.width && h == t.height {
		return nil, false
	}
	t.width, t.height = w, h
	t.sized = true
	return widget.EventResize{Width: w, Height: h}, true
}

// TranslateChar forwards composed character input verbatim.
func (t *Translator) TranslateChar(char rune) widget.Event {
	return widget.EventText{Char: char}
}

// KeyChar approximates the character a key press would have produced,
// given the current shift state. It exists for hosts that deliver key
// transitions but no composed character events; hosts with real character
// input never call it.
func (t *Translator) KeyChar(key widget.Key) (rune, bool) {
	switch {
	case key >= widget.Key0 && key <= widget.Key9:
		if t.mods.Shift {
			return rune(")!@#$%^&*("[key-widget.Key0]), true
		}
		return rune('0' + key - widget.Key0), true
	case key >= widget.KeyA && key <= widget.KeyZ:
		if t.mods.Shift {
			return rune('A' + key - widget.KeyA), true
		}
		return rune('a' + key - widget.KeyA), true
	case key == widget.KeySpace:
		return ' ', true
	}
	return 0, false
}
