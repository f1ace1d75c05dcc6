package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/widget"
)

func TestTranslateKeyPlain(t *testing.T) {
	tr := NewTranslator()

	events := tr.TranslateKey(core.KEY_A, true)
	require.Len(t, events, 1)
	assert.Equal(t, widget.EventPress{Key: widget.KeyA}, events[0])

	events = tr.TranslateKey(core.KEY_A, false)
	require.Len(t, events, 1)
	assert.Equal(t, widget.EventRelease{Key: widget.KeyA}, events[0])
}

func TestTranslateKeyShiftSequence(t *testing.T) {
	tr := NewTranslator()

	events := tr.TranslateKey(core.KEY_LSHIFT, true)
	require.Len(t, events, 1)
	mods, ok := events[0].(widget.EventModifiers)
	require.True(t, ok)
	assert.True(t, mods.Modifiers.Shift)

	events = tr.TranslateKey(core.KEY_A, true)
	require.Len(t, events, 1)
	assert.Equal(t, widget.EventPress{Key: widget.KeyA}, events[0])

	char, ok := tr.KeyChar(widget.KeyA)
	require.True(t, ok)
	assert.Equal(t, 'A', char)

	events = tr.TranslateKey(core.KEY_LSHIFT, false)
	require.Len(t, events, 1)
	mods, ok = events[0].(widget.EventModifiers)
	require.True(t, ok)
	assert.False(t, mods.Modifiers.Shift)

	char, ok = tr.KeyChar(widget.KeyA)
	require.True(t, ok)
	assert.Equal(t, 'a', char)
}

func TestTranslateKeyFoldsModifierSides(t *testing.T) {
	tr := NewTranslator()

	tr.TranslateKey(core.KEY_LSHIFT, true)
	assert.True(t, tr.Modifiers().Shift)

	// Releasing the other side still clears the single shift bit.
	tr.TranslateKey(core.KEY_RSHIFT, false)
	assert.False(t, tr.Modifiers().Shift)

	tr.TranslateKey(core.KEY_CONTROL, true)
	assert.True(t, tr.Modifiers().Ctrl)
	tr.TranslateKey(core.KEY_LALT, true)
	assert.True(t, tr.Modifiers().Alt)
	tr.TranslateKey(core.KEY_LWIN, true)
	assert.True(t, tr.Modifiers().Logo)
}

func TestTranslateKeyUnmapped(t *testing.T) {
	tr := NewTranslator()
	assert.Nil(t, tr.TranslateKey(core.KEY_F1, true))
}

func TestKeyChar(t *testing.T) {
	tr := NewTranslator()

	char, ok := tr.KeyChar(widget.Key1)
	require.True(t, ok)
	assert.Equal(t, '1', char)

	tr.TranslateKey(core.KEY_SHIFT, true)
	char, ok = tr.KeyChar(widget.Key1)
	require.True(t, ok)
	assert.Equal(t, '!', char)

	char, ok = tr.KeyChar(widget.KeySpace)
	require.True(t, ok)
	assert.Equal(t, ' ', char)

	_, ok = tr.KeyChar(widget.KeyEscape)
	assert.False(t, ok)
}

func TestTranslateButton(t *testing.T) {
	tr := NewTranslator()

	events := tr.TranslateButton(core.BUTTON_LEFT, true)
	require.Len(t, events, 1)
	assert.Equal(t, widget.EventPress{Key: widget.KeyLeftMouseButton}, events[0])

	events = tr.TranslateButton(core.BUTTON_RIGHT, false)
	require.Len(t, events, 1)
	assert.Equal(t, widget.EventRelease{Key: widget.KeyRightMouseButton}, events[0])
}

func TestTranslateCursorFlipsY(t *testing.T) {
	tr := NewTranslator()
	_, changed := tr.TranslateResize(800, 600)
	require.True(t, changed)

	event := tr.TranslateCursor(100, 150)
	cursor, ok := event.(widget.EventCursor)
	require.True(t, ok)
	assert.Equal(t, float32(100), cursor.X)
	assert.Equal(t, float32(450), cursor.Y)
}

func TestTranslateResizeDeduplicates(t *testing.T) {
	tr := NewTranslator()

	event, changed := tr.TranslateResize(800, 600)
	require.True(t, changed)
	assert.Equal(t, widget.EventResize{Width: 800, Height: 600}, event)

	_, changed = tr.TranslateResize(800, 600)
	assert.False(t, changed)

	event, changed = tr.TranslateResize(800, 601)
	require.True(t, changed)
	assert.Equal(t, widget.EventResize{Width: 800, Height: 601}, event)
}

func TestTranslateScrollAndChar(t *testing.T) {
	tr := NewTranslator()

	event := tr.TranslateScroll(0, -3)
	scroll, ok := event.(widget.EventScroll)
	require.True(t, ok)
	assert.Equal(t, float32(-3), scroll.DeltaY)

	event = tr.TranslateChar('ß')
	text, ok := event.(widget.EventText)
	require.True(t, ok)
	assert.Equal(t, 'ß', text.Char)
}
