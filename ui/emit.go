package ui

import (
	"fmt"

	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
	"github.com/spaghettifunk/pixelui/widget/draw"
)

// emitter flattens session draw commands into one ordered render command
// buffer. It tracks the currently bound texture across sessions so
// consecutive commands sharing a texture bind once, and creates bind
// groups lazily on first use of each texture.
type emitter struct {
	ctx     renderer.ResourceContext
	sampler metadata.SamplerID
	scale   float32

	commands     []metadata.RenderCommand
	currentGroup metadata.BindGroupID
	bound        bool
}

func newEmitter(ctx renderer.ResourceContext, sampler metadata.SamplerID, scale float32) *emitter {
	return &emitter{ctx: ctx, sampler: sampler, scale: scale}
}

// session appends one session's commands. Sessions without a vertex buffer
// or with a failed reconciliation this frame emit nothing.
func (e *emitter) session(s *Session) error {
	if s.state.skip || !s.state.hasVertexBuffer || s.state.vertexCount == 0 {
		return nil
	}

	e.commands = append(e.commands, metadata.SetVertexBuffer{
		Slot:   0,
		Buffer: s.state.vertexBuffer,
	})

	for _, command := range s.state.commands {
		switch c := command.(type) {
		case draw.CommandNop:

		case draw.CommandClip:
			e.commands = append(e.commands, metadata.SetScissor{
				X:      uint32(c.Scissor.Left * e.scale),
				Y:      uint32(c.Scissor.Top * e.scale),
				Width:  uint32(c.Scissor.Width() * e.scale),
				Height: uint32(c.Scissor.Height() * e.scale),
			})

		case draw.CommandColored:
			// Untextured geometry still renders through the single
			// pipeline, so any texture serves as placeholder binding.
			group, ok, err := e.placeholderGroup(s)
			if err != nil {
				return err
			}
			if ok {
				e.bind(group)
			}
			e.commands = append(e.commands, metadata.Draw{
				FirstVertex: uint32(c.Offset),
				VertexCount: uint32(c.Count),
			})

		case draw.CommandTextured:
			group, err := e.textureGroup(s, c.Texture)
			if err != nil {
				return err
			}
			e.bind(group)
			e.commands = append(e.commands, metadata.Draw{
				FirstVertex: uint32(c.Offset),
				VertexCount: uint32(c.Count),
			})
		}
	}
	return nil
}

// bind emits a SetBindGroup only when the group actually changes.
func (e *emitter) bind(group metadata.BindGroupID) {
	if e.bound && e.currentGroup == group {
		return
	}
	e.commands = append(e.commands, metadata.SetBindGroup{Index: 0, BindGroup: group})
	e.currentGroup = group
	e.bound = true
}

// textureGroup resolves a draw list texture id into a bind group,
// creating it on first use. A miss means the draw list referenced a
// texture before its update, which is an ordering bug upstream.
func (e *emitter) textureGroup(s *Session, id int) (metadata.BindGroupID, error) {
	if group, ok := s.state.bindGroups[id]; ok {
		return group, nil
	}
	texture, ok := s.state.textures[id]
	if !ok {
		panic(fmt.Sprintf("ui: draw command references texture id %d before its update", id))
	}
	group, err := e.ctx.CreateBindGroup(texture, e.sampler)
	if err != nil {
		return 0, fmt.Errorf("bind group for texture %d: %w", id, err)
	}
	s.state.bindGroups[id] = group
	return group, nil
}

// placeholderGroup picks any live texture of the session to satisfy the
// pipeline's binding for untextured draws. With no textures at all the
// current binding, whatever it is, stays in place.
func (e *emitter) placeholderGroup(s *Session) (metadata.BindGroupID, bool, error) {
	if e.bound {
		return e.currentGroup, true, nil
	}
	for id := range s.state.textures {
		group, err := e.textureGroup(s, id)
		if err != nil {
			return 0, false, err
		}
		return group, true, nil
	}
	return 0, false, nil
}
