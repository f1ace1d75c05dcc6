// Package draw defines the output surface of the widget library: the
// draw list a session produces when its widget tree changed, consisting
// of texture updates, draw commands and a flat vertex buffer.
package draw

import "github.com/spaghettifunk/pixelui/widget/layout"

// Vertex render modes. The mode selects how the fragment stage combines
// the vertex color with the bound texture.
const (
	// ModeColor ignores the bound texture entirely.
	ModeColor uint32 = iota
	// ModeTexture modulates the sampled rgba with the vertex color.
	ModeTexture
	// ModeText takes coverage from the texture red channel only.
	ModeText
)

// Vertex is a single UI vertex. The field order matches the vertex layout
// declared by the rendering pipeline and must not be reordered.
type Vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]float32
	Mode     uint32
}

// VertexStride is the packed byte size of one Vertex.
const VertexStride = 36

// Update mutates a GPU side texture before any commands of the same draw
// are executed.
type Update interface {
	isUpdate()
}

// UpdateTexture introduces a new texture id, replacing any previous
// texture registered under the same id. Data holds tightly packed
// rgba8 pixels and may be empty for textures filled in later through
// sub-resource patches.
type UpdateTexture struct {
	ID   int
	Size [2]uint32
	Data []byte
}

// UpdateTextureSubresource patches a region of an existing texture.
// Offset and Size are in pixels; Data holds tightly packed rgba8 rows.
type UpdateTextureSubresource struct {
	ID     int
	Offset [2]uint32
	Size   [2]uint32
	Data   []byte
}

func (UpdateTexture) isUpdate()            {}
func (UpdateTextureSubresource) isUpdate() {}

// Command is a single abstract draw operation. Commands reference only
// texture ids introduced by an Update processed in the same or an earlier
// draw, and vertex ranges within the draw list's vertex buffer.
type Command interface {
	isCommand()
}

// CommandNop does nothing. Emitted when a merge leaves a hole in the
// command stream.
type CommandNop struct{}

// CommandClip restricts subsequent rasterization to the scissor region.
type CommandClip struct {
	Scissor layout.Rectangle
}

// CommandColored draws Count vertices starting at Offset using vertex
// colors only.
type CommandColored struct {
	Offset int
	Count  int
}

// CommandTextured draws Count vertices starting at Offset sampling the
// texture registered under Texture.
type CommandTextured struct {
	Texture int
	Offset  int
	Count   int
}

func (CommandNop) isCommand()      {}
func (CommandClip) isCommand()     {}
func (CommandColored) isCommand()  {}
func (CommandTextured) isCommand() {}

// List is the per-frame output of a UI session: everything the host needs
// to bring its GPU state up to date and render the widget tree.
type List struct {
	Updates  []Update
	Commands []Command
	Vertices []Vertex
}
