// Package renderer defines the boundary between engine systems and the
// GPU backend: the resource context interface, the recorded command
// queue, the render graph and the pipeline registry. Backends live in
// subpackages and implement ResourceContext.
package renderer

import (
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// ResourceContext creates and destroys GPU resources and opens render
// passes. All calls happen on the render thread; implementations do not
// need internal locking.
type ResourceContext interface {
	// CreateBufferWithData allocates a buffer and uploads data into it.
	CreateBufferWithData(info metadata.BufferInfo, data []byte) (metadata.BufferID, error)
	// RemoveBuffer releases a buffer. Unknown ids are ignored.
	RemoveBuffer(buffer metadata.BufferID)

	// CreateTexture allocates an uninitialized sampled texture.
	CreateTexture(desc metadata.TextureDescriptor) (metadata.TextureID, error)
	// RemoveTexture releases a texture. Unknown ids are ignored.
	RemoveTexture(texture metadata.TextureID)

	// CreateSampler allocates a texture sampler.
	CreateSampler(desc metadata.SamplerDescriptor) (metadata.SamplerID, error)

	// CreateBindGroup builds a texture+sampler binding usable with
	// SetBindGroup commands.
	CreateBindGroup(texture metadata.TextureID, sampler metadata.SamplerID) (metadata.BindGroupID, error)

	// CopyBufferToTexture copies pixel rows from a staging buffer into a
	// texture region. bytesPerRow must respect metadata.RowAlignment.
	CopyBufferToTexture(src metadata.BufferID, srcOffset uint64, bytesPerRow uint32, dst metadata.TextureID, origin [3]uint32, size metadata.Extent3D) error

	// BeginPass opens a render pass with the slot textures resolved by
	// the graph and returns an encoder for its commands.
	BeginPass(desc metadata.PassDescriptor, attachments map[metadata.AttachmentSlot]metadata.TextureID) (PassEncoder, error)
}

// PassEncoder records commands inside an open render pass.
type PassEncoder interface {
	SetPipeline(handle metadata.PipelineHandle, desc *metadata.PipelineDescriptor) error
	// SetPushConstants uploads data into the bound pipeline's vertex stage
	// push constant range. Call it after SetPipeline.
	SetPushConstants(data []byte)
	SetVertexBuffer(slot uint32, buffer metadata.BufferID, offset uint64)
	SetBindGroup(index uint32, group metadata.BindGroupID)
	SetScissor(x, y, width, height uint32)
	Draw(firstVertex, vertexCount uint32)
	End() error
}
