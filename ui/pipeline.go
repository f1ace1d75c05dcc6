package ui

import (
	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
	"github.com/spaghettifunk/pixelui/widget/draw"
)

// PipelineHandle keys the widget render pipeline in the host's pipeline
// registry. Registering it twice is a no-op, so multiple plugin setups
// share one pipeline.
const PipelineHandle = metadata.PipelineHandle("pixelui.widgets")

// NodeName is the render graph node the plugin registers after the main
// pass.
const NodeName = "pixelui_pass"

// pipelineDescriptor describes the single pipeline all widget drawing
// goes through: alpha blended triangles, no culling, depth tested
// LessEqual against the shared depth buffer so the UI layers over the
// finished scene.
func pipelineDescriptor() *metadata.PipelineDescriptor {
	return &metadata.PipelineDescriptor{
		Topology:    metadata.TopologyTriangleList,
		CullMode:    metadata.CullNone,
		ColorFormat: metadata.TextureFormatBGRA8UnormSrgb,
		ColorBlend: metadata.BlendState{
			SrcFactor: metadata.BlendSrcAlpha,
			DstFactor: metadata.BlendOneMinusSrcAlpha,
		},
		AlphaBlend: metadata.BlendState{
			SrcFactor: metadata.BlendOne,
			DstFactor: metadata.BlendOne,
		},
		DepthStencil: &metadata.DepthStencilState{
			Format:  metadata.TextureFormatDepth32Float,
			Compare: metadata.CompareLessEqual,
		},
		VertexLayout: metadata.VertexLayout{
			Stride: draw.VertexStride,
			Attributes: []metadata.VertexAttribute{
				{Name: "Vertex_Position", Offset: 0, Format: metadata.VertexFormatFloat32x2, ShaderLocation: 0},
				{Name: "Vertex_Uv", Offset: 8, Format: metadata.VertexFormatFloat32x2, ShaderLocation: 1},
				{Name: "Vertex_Color", Offset: 16, Format: metadata.VertexFormatFloat32x4, ShaderLocation: 2},
				{Name: "Vertex_Mode", Offset: 32, Format: metadata.VertexFormatUint32, ShaderLocation: 3},
			},
		},
		Shaders: metadata.ShaderStages{
			Vertex:   "assets/shaders/widget.vert.spv",
			Fragment: "assets/shaders/widget.frag.spv",
		},
		// The vertex shader maps logical pixel positions into clip space
		// against the viewport size pushed once per pass.
		PushConstantSize: viewportConstantSize,
	}
}

// registerPipeline adds the widget pipeline to the registry if it is not
// there yet. Returns true when this call inserted it.
func registerPipeline(registry *renderer.PipelineRegistry) bool {
	return registry.Set(PipelineHandle, pipelineDescriptor())
}
