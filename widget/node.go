package widget

import (
	"github.com/spaghettifunk/pixelui/widget/draw"
	"github.com/spaghettifunk/pixelui/widget/layout"
)

// Context is the per-session state threaded through widget tree traversal.
// It survives view rebuilds so stateful widgets (scroll offsets, the
// pressed button) keep their state across model updates.
type Context struct {
	Style *Style

	viewport layout.Rectangle

	cursorX float32
	cursorY float32

	// id of the button currently held down, empty when none.
	active string

	scrollOffsets map[string]float32

	queue  []interface{}
	redraw bool
}

func newContext(style *Style) *Context {
	return &Context{
		Style:         style,
		scrollOffsets: make(map[string]float32),
	}
}

// Dispatch queues a message for the model.
func (c *Context) Dispatch(message interface{}) {
	c.queue = append(c.queue, message)
}

// RequestRedraw flags the tree dirty without producing a message, used by
// purely visual state changes like hover transitions.
func (c *Context) RequestRedraw() {
	c.redraw = true
}

// Cursor returns the last known cursor position.
func (c *Context) Cursor() (x, y float32) {
	return c.cursorX, c.cursorY
}

// ScrollOffset returns the persisted scroll offset for a widget id.
func (c *Context) ScrollOffset(id string) float32 {
	return c.scrollOffsets[id]
}

// SetScrollOffset persists a scroll offset for a widget id.
func (c *Context) SetScrollOffset(id string, offset float32) {
	c.scrollOffsets[id] = offset
}

func (c *Context) drain() []interface{} {
	out := c.queue
	c.queue = nil
	return out
}

// Node is one widget in the tree. Measure reports the preferred size
// within the available region, Event handles one input event for the
// widget's laid out area, Draw appends the widget's geometry.
type Node interface {
	Measure(ctx *Context, available layout.Rectangle) (width, height float32)
	Event(ctx *Context, area layout.Rectangle, event Event)
	Draw(ctx *Context, area layout.Rectangle, builder *draw.Builder)
}
