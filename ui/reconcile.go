package ui

import (
	"fmt"

	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
	"github.com/spaghettifunk/pixelui/widget/draw"
)

// drawState is the GPU side of one session: the host textures backing the
// draw list's texture ids, the current vertex buffer and the command list
// to replay. Handles are owned here and released explicitly; replacing a
// texture id releases the previous handle first so exactly one stays live
// per id.
type drawState struct {
	textures   map[int]metadata.TextureID
	bindGroups map[int]metadata.BindGroupID

	vertexBuffer    metadata.BufferID
	hasVertexBuffer bool
	vertexCount     int

	commands []draw.Command

	// skip marks the session as not drawable this frame after a failed
	// reconciliation.
	skip bool
}

func newDrawState() drawState {
	return drawState{
		textures:   make(map[int]metadata.TextureID),
		bindGroups: make(map[int]metadata.BindGroupID),
	}
}

// padRows repacks tightly packed pixel rows into the row alignment GPU
// copies require. The stride is recomputed from the width every call.
// Data shorter than width*height rows pads out with zeroes.
func padRows(data []byte, width, height, bytesPerTexel uint32) (padded []byte, bytesPerRow uint32) {
	rowBytes := width * bytesPerTexel
	bytesPerRow = metadata.AlignRow(rowBytes)
	if bytesPerRow == rowBytes {
		return data, bytesPerRow
	}
	padded = make([]byte, bytesPerRow*height)
	stride, tight := int(bytesPerRow), int(rowBytes)
	for row := 0; row < int(height); row++ {
		start := row * tight
		if start >= len(data) {
			break
		}
		end := min(start+tight, len(data))
		copy(padded[row*stride:], data[start:end])
	}
	return padded, bytesPerRow
}

// reconcile applies one draw list to the session's GPU state: it uploads
// texture updates through staging buffers on the command queue, swaps the
// vertex buffer and stores the commands for emission. A failure leaves a
// consistent state with the session marked skipped for this frame.
func (s *Session) reconcile(ctx renderer.ResourceContext, queue *renderer.CommandQueue, list draw.List) error {
	s.state.skip = true

	for _, update := range list.Updates {
		switch u := update.(type) {
		case draw.UpdateTexture:
			if err := s.uploadTexture(ctx, queue, u); err != nil {
				return fmt.Errorf("texture %d: %w", u.ID, err)
			}
		case draw.UpdateTextureSubresource:
			if err := s.patchTexture(ctx, queue, u); err != nil {
				return fmt.Errorf("texture %d subresource: %w", u.ID, err)
			}
		}
	}

	if err := s.swapVertexBuffer(ctx, list.Vertices); err != nil {
		return err
	}

	s.state.commands = append(s.state.commands[:0], list.Commands...)
	s.state.skip = false
	return nil
}

// uploadTexture creates the host texture for a draw list texture id and
// records the pixel upload. An update without data allocates the texture
// only, to be filled in later through sub-region patches. Replacing an id
// releases the old texture and drops its cached bind group before the new
// handle is stored.
func (s *Session) uploadTexture(ctx renderer.ResourceContext, queue *renderer.CommandQueue, u draw.UpdateTexture) error {
	format := metadata.TextureFormatRGBA8Unorm
	texture, err := ctx.CreateTexture(metadata.TextureDescriptor{
		Size:   metadata.Extent3D{Width: u.Size[0], Height: u.Size[1], Depth: 1},
		Format: format,
	})
	if err != nil {
		return err
	}

	if len(u.Data) > 0 {
		padded, bytesPerRow := padRows(u.Data, u.Size[0], u.Size[1], format.BytesPerTexel())
		staging, err := ctx.CreateBufferWithData(metadata.BufferInfo{
			Size:  len(padded),
			Usage: metadata.BufferUsageCopySrc,
		}, padded)
		if err != nil {
			ctx.RemoveTexture(texture)
			return err
		}
		queue.CopyBufferToTexture(staging, 0, bytesPerRow, texture, [3]uint32{0, 0, 0},
			metadata.Extent3D{Width: u.Size[0], Height: u.Size[1], Depth: 1})
	}

	if old, ok := s.state.textures[u.ID]; ok {
		ctx.RemoveTexture(old)
		delete(s.state.bindGroups, u.ID)
	}
	s.state.textures[u.ID] = texture
	return nil
}

// patchTexture records a sub-region upload into an already created
// texture. A patch for an id that was never uploaded is a draw list
// ordering bug.
func (s *Session) patchTexture(ctx renderer.ResourceContext, queue *renderer.CommandQueue, u draw.UpdateTextureSubresource) error {
	texture, ok := s.state.textures[u.ID]
	if !ok {
		panic(fmt.Sprintf("ui: subresource update for texture id %d before its creation", u.ID))
	}

	format := metadata.TextureFormatRGBA8Unorm
	padded, bytesPerRow := padRows(u.Data, u.Size[0], u.Size[1], format.BytesPerTexel())

	staging, err := ctx.CreateBufferWithData(metadata.BufferInfo{
		Size:  len(padded),
		Usage: metadata.BufferUsageCopySrc,
	}, padded)
	if err != nil {
		return err
	}

	queue.CopyBufferToTexture(staging, 0, bytesPerRow, texture,
		[3]uint32{u.Offset[0], u.Offset[1], 0},
		metadata.Extent3D{Width: u.Size[0], Height: u.Size[1], Depth: 1})
	return nil
}

// swapVertexBuffer replaces the session's vertex buffer with this frame's
// vertices. The new buffer exists before the old one is released; an empty
// vertex list releases the buffer and leaves the session drawing nothing.
func (s *Session) swapVertexBuffer(ctx renderer.ResourceContext, vertices []draw.Vertex) error {
	if len(vertices) == 0 {
		if s.state.hasVertexBuffer {
			ctx.RemoveBuffer(s.state.vertexBuffer)
			s.state.hasVertexBuffer = false
		}
		s.state.vertexCount = 0
		return nil
	}

	data := draw.VerticesBytes(vertices)
	buffer, err := ctx.CreateBufferWithData(metadata.BufferInfo{
		Size:  len(data),
		Usage: metadata.BufferUsageVertex,
	}, data)
	if err != nil {
		return fmt.Errorf("vertex buffer: %w", err)
	}

	if s.state.hasVertexBuffer {
		ctx.RemoveBuffer(s.state.vertexBuffer)
	}
	s.state.vertexBuffer = buffer
	s.state.hasVertexBuffer = true
	s.state.vertexCount = len(vertices)
	return nil
}

// releaseDrawState returns every GPU handle the session still owns. Called
// when the session despawns.
func (s *Session) releaseDrawState(ctx renderer.ResourceContext) {
	for id, texture := range s.state.textures {
		ctx.RemoveTexture(texture)
		delete(s.state.textures, id)
	}
	for id := range s.state.bindGroups {
		delete(s.state.bindGroups, id)
	}
	if s.state.hasVertexBuffer {
		ctx.RemoveBuffer(s.state.vertexBuffer)
		s.state.hasVertexBuffer = false
	}
	s.state.vertexCount = 0
	s.state.commands = nil
}
