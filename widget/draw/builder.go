package draw

import "github.com/spaghettifunk/pixelui/widget/layout"

// Builder accumulates a draw list during widget tree traversal. Quads that
// share a command kind and texture are merged into a single ranged command
// so the host issues as few draw calls as possible.
type Builder struct {
	updates  []Update
	commands []Command
	vertices []Vertex
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Reset clears the builder for reuse, keeping the allocated capacity.
func (b *Builder) Reset() {
	b.updates = b.updates[:0]
	b.commands = b.commands[:0]
	b.vertices = b.vertices[:0]
}

// Texture queues the creation (or replacement) of a texture id.
func (b *Builder) Texture(id int, width, height uint32, data []byte) {
	b.updates = append(b.updates, UpdateTexture{
		ID:   id,
		Size: [2]uint32{width, height},
		Data: data,
	})
}

// TextureSubresource queues a patch of an existing texture.
func (b *Builder) TextureSubresource(id int, offsetX, offsetY, width, height uint32, data []byte) {
	b.updates = append(b.updates, UpdateTextureSubresource{
		ID:     id,
		Offset: [2]uint32{offsetX, offsetY},
		Size:   [2]uint32{width, height},
		Data:   data,
	})
}

// Clip emits a scissor command. Subsequent quads are rasterized only
// inside the region.
func (b *Builder) Clip(region layout.Rectangle) {
	b.commands = append(b.commands, CommandClip{Scissor: region})
}

// SolidQuad emits a colored rectangle.
func (b *Builder) SolidQuad(r layout.Rectangle, color [4]float32) {
	offset := len(b.vertices)
	b.pushQuad(r, layout.Rectangle{}, color, ModeColor)

	if last, ok := b.lastColored(); ok {
		last.Count += 6
		b.commands[len(b.commands)-1] = *last
		return
	}
	b.commands = append(b.commands, CommandColored{Offset: offset, Count: 6})
}

// TexturedQuad emits a rectangle sampling uv from the given texture id.
// Mode selects full rgba sampling or text coverage.
func (b *Builder) TexturedQuad(r, uv layout.Rectangle, texture int, color [4]float32, mode uint32) {
	offset := len(b.vertices)
	b.pushQuad(r, uv, color, mode)

	if last, ok := b.lastTextured(texture); ok {
		last.Count += 6
		b.commands[len(b.commands)-1] = *last
		return
	}
	b.commands = append(b.commands, CommandTextured{Texture: texture, Offset: offset, Count: 6})
}

// Finish returns the accumulated list. The builder must not be reused
// without Reset afterwards.
func (b *Builder) Finish() List {
	return List{
		Updates:  b.updates,
		Commands: b.commands,
		Vertices: b.vertices,
	}
}

func (b *Builder) lastColored() (*CommandColored, bool) {
	if len(b.commands) == 0 {
		return nil, false
	}
	if c, ok := b.commands[len(b.commands)-1].(CommandColored); ok {
		return &c, true
	}
	return nil, false
}

func (b *Builder) lastTextured(texture int) (*CommandTextured, bool) {
	if len(b.commands) == 0 {
		return nil, false
	}
	if c, ok := b.commands[len(b.commands)-1].(CommandTextured); ok && c.Texture == texture {
		return &c, true
	}
	return nil, false
}

func (b *Builder) pushQuad(r, uv layout.Rectangle, color [4]float32, mode uint32) {
	tl := Vertex{Position: [2]float32{r.Left, r.Top}, UV: [2]float32{uv.Left, uv.Top}, Color: color, Mode: mode}
	tr := Vertex{Position: [2]float32{r.Right, r.Top}, UV: [2]float32{uv.Right, uv.Top}, Color: color, Mode: mode}
	bl := Vertex{Position: [2]float32{r.Left, r.Bottom}, UV: [2]float32{uv.Left, uv.Bottom}, Color: color, Mode: mode}
	br := Vertex{Position: [2]float32{r.Right, r.Bottom}, UV: [2]float32{uv.Right, uv.Bottom}, Color: color, Mode: mode}
	b.vertices = append(b.vertices, tl, tr, bl, tr, br, bl)
}
