package ui

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// viewportConstantSize is the byte size of the push constant block the
// vertex shader reads: the viewport size as two float32.
const viewportConstantSize = 8

// viewportConstants packs the logical viewport size for the vertex
// shader's pixel to clip space transform. Widget geometry and cursor hit
// testing both use a bottom left origin; the shader maps y = 0 to the
// bottom of the framebuffer so the two agree.
func viewportConstants(frame FrameParams) []byte {
	data := make([]byte, viewportConstantSize)
	binary.LittleEndian.PutUint32(data[0:], math.Float32bits(float32(frame.Width)))
	binary.LittleEndian.PutUint32(data[4:], math.Float32bits(float32(frame.Height)))
	return data
}

// Node is the render graph node drawing every live session. It runs after
// the host's main pass: it flushes the recorded resource copies, opens a
// pass that loads the finished color and depth attachments and replays
// one ordered command buffer covering all sessions.
type Node struct {
	plugin *Plugin
}

// Name implements renderer.Node.
func (n *Node) Name() string {
	return NodeName
}

// Execute implements renderer.Node.
func (n *Node) Execute(ctx renderer.ResourceContext, slots renderer.Slots) error {
	if err := n.plugin.queue.Execute(ctx); err != nil {
		return fmt.Errorf("ui: resource copies: %w", err)
	}

	sampler, err := n.plugin.ensureSampler(ctx)
	if err != nil {
		return fmt.Errorf("ui: sampler: %w", err)
	}

	e := newEmitter(ctx, sampler, n.plugin.frame.Scale)
	for _, session := range n.plugin.ordered() {
		if err := e.session(session); err != nil {
			core.LogError("ui: session %s emission failed, skipping: %v", session.id, err)
		}
	}
	if len(e.commands) == 0 {
		return nil
	}

	encoder, err := ctx.BeginPass(metadata.PassDescriptor{
		ColorAttachments: []metadata.ColorAttachment{{
			Slot:  renderer.SlotColorAttachment,
			Load:  metadata.LoadOpLoad,
			Store: true,
		}},
		DepthStencil: &metadata.DepthStencilAttachment{
			Slot:  renderer.SlotDepth,
			Load:  metadata.LoadOpLoad,
			Store: true,
		},
	}, slots)
	if err != nil {
		return fmt.Errorf("ui: begin pass: %w", err)
	}

	if err := replay(encoder, n.plugin.pipelines, n.plugin.frame, e.commands); err != nil {
		encoder.End()
		return err
	}
	return encoder.End()
}

// replay walks the command buffer into the pass encoder. The pipeline is
// bound exactly once, up front, followed by the frame's viewport push
// constants; a draw arriving before both the pipeline and a vertex buffer
// are set is refused as a recording bug.
func replay(encoder renderer.PassEncoder, pipelines *renderer.PipelineRegistry, frame FrameParams, commands []metadata.RenderCommand) error {
	desc := pipelines.Get(PipelineHandle)
	if desc == nil {
		return fmt.Errorf("ui: pipeline %q is not registered", PipelineHandle)
	}
	if err := encoder.SetPipeline(PipelineHandle, desc); err != nil {
		return fmt.Errorf("ui: bind pipeline: %w", err)
	}
	encoder.SetPushConstants(viewportConstants(frame))

	hasVertexBuffer := false
	for _, command := range commands {
		switch c := command.(type) {
		case metadata.SetVertexBuffer:
			encoder.SetVertexBuffer(c.Slot, c.Buffer, c.Offset)
			hasVertexBuffer = true
		case metadata.SetBindGroup:
			encoder.SetBindGroup(c.Index, c.BindGroup)
		case metadata.SetScissor:
			encoder.SetScissor(c.X, c.Y, c.Width, c.Height)
		case metadata.Draw:
			if !hasVertexBuffer {
				return fmt.Errorf("ui: draw recorded before a vertex buffer was set")
			}
			encoder.Draw(c.FirstVertex, c.VertexCount)
		case metadata.SetPipeline:
			return fmt.Errorf("ui: unexpected pipeline switch inside widget pass")
		}
	}
	return nil
}
