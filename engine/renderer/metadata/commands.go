package metadata

// RenderCommand is one recorded operation replayed inside a render pass.
type RenderCommand interface {
	isRenderCommand()
}

// SetPipeline binds the registered pipeline for subsequent draws.
type SetPipeline struct {
	Handle PipelineHandle
}

// SetVertexBuffer binds a vertex buffer to a slot.
type SetVertexBuffer struct {
	Slot   uint32
	Buffer BufferID
	Offset uint64
}

// SetBindGroup binds a texture+sampler group to a pipeline slot.
type SetBindGroup struct {
	Index     uint32
	BindGroup BindGroupID
}

// SetScissor restricts rasterization to a rectangle in physical pixels.
type SetScissor struct {
	X      uint32
	Y      uint32
	Width  uint32
	Height uint32
}

// Draw renders a vertex range of the bound vertex buffer.
type Draw struct {
	FirstVertex uint32
	VertexCount uint32
}

func (SetPipeline) isRenderCommand()     {}
func (SetVertexBuffer) isRenderCommand() {}
func (SetBindGroup) isRenderCommand()    {}
func (SetScissor) isRenderCommand()      {}
func (Draw) isRenderCommand()            {}
