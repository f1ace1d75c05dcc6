package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pixelui/widget/draw"
	"github.com/spaghettifunk/pixelui/widget/layout"
)

type clicked struct{}

// counterModel is a button that counts its clicks.
type counterModel struct {
	clicks int
	asyncs []Async
}

func (m *counterModel) View() Node {
	return NewButton("counter", &Space{Width: 40, Height: 20}, clicked{})
}

func (m *counterModel) Update(message interface{}) []Async {
	if _, ok := message.(clicked); ok {
		m.clicks++
	}
	asyncs := m.asyncs
	m.asyncs = nil
	return asyncs
}

func TestUiStartsDirty(t *testing.T) {
	u := New(&counterModel{}, layout.FromWH(200, 100))
	assert.True(t, u.NeedsRedraw())

	u.Draw()
	assert.False(t, u.NeedsRedraw())
}

func TestUiInvalidateForcesRedraw(t *testing.T) {
	u := New(&counterModel{}, layout.FromWH(200, 100))
	u.Draw()
	require.False(t, u.NeedsRedraw())

	u.Invalidate()
	assert.True(t, u.NeedsRedraw())
	u.Draw()
	assert.False(t, u.NeedsRedraw())
}

func TestUiResizeIdempotent(t *testing.T) {
	u := New(&counterModel{}, layout.FromWH(200, 100))
	u.Draw()

	u.Resize(layout.FromWH(200, 100))
	assert.False(t, u.NeedsRedraw())

	u.Resize(layout.FromWH(300, 100))
	assert.True(t, u.NeedsRedraw())

	u.Draw()
	u.Event(EventResize{Width: 300, Height: 100})
	assert.False(t, u.NeedsRedraw())
}

func TestUiButtonClickDispatches(t *testing.T) {
	model := &counterModel{}
	u := New(model, layout.FromWH(200, 100))
	u.Draw()

	u.Event(EventCursor{X: 30, Y: 20})
	u.Event(EventPress{Key: KeyLeftMouseButton})
	require.True(t, u.NeedsRedraw())
	assert.Equal(t, 0, model.clicks)

	asyncs := u.Event(EventRelease{Key: KeyLeftMouseButton})
	assert.Empty(t, asyncs)
	assert.Equal(t, 1, model.clicks)
	assert.True(t, u.NeedsRedraw())
}

func TestUiButtonReleaseOutsideDoesNotDispatch(t *testing.T) {
	model := &counterModel{}
	u := New(model, layout.FromWH(200, 100))
	u.Draw()

	u.Event(EventCursor{X: 30, Y: 20})
	u.Event(EventPress{Key: KeyLeftMouseButton})
	u.Event(EventCursor{X: 500, Y: 500})
	u.Event(EventRelease{Key: KeyLeftMouseButton})

	assert.Equal(t, 0, model.clicks)
}

func TestUiEventReturnsAsyncs(t *testing.T) {
	model := &counterModel{}
	u := New(model, layout.FromWH(200, 100))
	u.Draw()

	result := func() interface{} { return nil }
	model.asyncs = []Async{result}

	u.Event(EventCursor{X: 30, Y: 20})
	u.Event(EventPress{Key: KeyLeftMouseButton})
	asyncs := u.Event(EventRelease{Key: KeyLeftMouseButton})
	assert.Len(t, asyncs, 1)
}

func TestUiCommandAppliesMessage(t *testing.T) {
	model := &counterModel{}
	u := New(model, layout.FromWH(200, 100))
	u.Draw()

	u.Command(clicked{})
	assert.Equal(t, 1, model.clicks)
	assert.True(t, u.NeedsRedraw())
}

func TestUiModifiersDoNotDirty(t *testing.T) {
	u := New(&counterModel{}, layout.FromWH(200, 100))
	u.Draw()

	u.Event(EventModifiers{Modifiers: Modifiers{Shift: true}})
	assert.False(t, u.NeedsRedraw())
}

func TestUiStylesheetWithFontSchedulesAtlasUpload(t *testing.T) {
	u := New(&counterModel{}, layout.FromWH(200, 100))
	u.Draw()

	style := DefaultStyle()
	style.Font = &Font{
		AtlasWidth:  4,
		AtlasHeight: 4,
		Atlas:       make([]byte, 4*4*4),
		Glyphs:      map[rune]Glyph{},
	}
	u.ReplaceStylesheet(style)
	require.True(t, u.NeedsRedraw())

	list := u.Draw()
	require.NotEmpty(t, list.Updates)
	upload, ok := list.Updates[0].(draw.UpdateTexture)
	require.True(t, ok)
	assert.Equal(t, FontTextureID, upload.ID)
	assert.Equal(t, [2]uint32{4, 4}, upload.Size)

	// The atlas uploads once per stylesheet change, not every frame.
	u.Command(clicked{})
	assert.Empty(t, u.Draw().Updates)
}

func TestUiLoadStylesheetDisabled(t *testing.T) {
	u := New(&counterModel{}, layout.FromWH(200, 100))
	assert.ErrorIs(t, u.LoadStylesheet("theme.pwss"), ErrLoaderDisabled)
}
