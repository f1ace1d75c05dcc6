package renderer

import (
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// MainPassNodeName is the graph node of the host's opaque scene pass.
// UI passes register an edge after it so the interface draws over the
// finished scene.
const MainPassNodeName = "main_pass"

// Standard attachment slot names filled by the host each frame.
const (
	SlotColorAttachment metadata.AttachmentSlot = "color_attachment"
	SlotDepth           metadata.AttachmentSlot = "depth"
)

// Renderer aggregates everything render related a plugin touches: the
// backend resource context, the render graph, the pipeline registry and
// the transfer queue executed by graph nodes.
type Renderer struct {
	Context   ResourceContext
	Graph     *Graph
	Pipelines *PipelineRegistry
	Queue     *CommandQueue
}

// New wires a renderer around a backend context.
func New(ctx ResourceContext) *Renderer {
	return &Renderer{
		Context:   ctx,
		Graph:     NewGraph(),
		Pipelines: NewPipelineRegistry(),
		Queue:     NewCommandQueue(),
	}
}

// DrawFrame executes the render graph against this frame's attachments.
func (r *Renderer) DrawFrame(slots Slots) error {
	return r.Graph.Execute(r.Context, slots)
}
