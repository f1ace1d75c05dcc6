package ui

import (
	"errors"

	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
)

// fakeContext is an in-memory resource context recording every call.
type fakeContext struct {
	nextID uint64

	buffers       map[metadata.BufferID]fakeBuffer
	textures      map[metadata.TextureID]metadata.TextureDescriptor
	bindGroups    map[metadata.BindGroupID]metadata.TextureID
	samplers      int
	copies        []fakeCopy
	removedBufs   []metadata.BufferID
	removedTexs   []metadata.TextureID
	failBuffers   bool
	failTextures  bool
	beganPasses   int
	lastEncoder   *fakeEncoder
}

type fakeBuffer struct {
	info metadata.BufferInfo
	data []byte
}

type fakeCopy struct {
	src         metadata.BufferID
	bytesPerRow uint32
	dst         metadata.TextureID
	origin      [3]uint32
	size        metadata.Extent3D
}

func newFakeContext() *fakeContext {
	return &fakeContext{
		buffers:    make(map[metadata.BufferID]fakeBuffer),
		textures:   make(map[metadata.TextureID]metadata.TextureDescriptor),
		bindGroups: make(map[metadata.BindGroupID]metadata.TextureID),
	}
}

func (f *fakeContext) allocate() uint64 {
	f.nextID++
	return f.nextID
}

func (f *fakeContext) CreateBufferWithData(info metadata.BufferInfo, data []byte) (metadata.BufferID, error) {
	if f.failBuffers {
		return 0, errors.New("out of memory")
	}
	id := metadata.BufferID(f.allocate())
	stored := make([]byte, len(data))
	copy(stored, data)
	f.buffers[id] = fakeBuffer{info: info, data: stored}
	return id, nil
}

func (f *fakeContext) RemoveBuffer(buffer metadata.BufferID) {
	delete(f.buffers, buffer)
	f.removedBufs = append(f.removedBufs, buffer)
}

func (f *fakeContext) CreateTexture(desc metadata.TextureDescriptor) (metadata.TextureID, error) {
	if f.failTextures {
		return 0, errors.New("out of memory")
	}
	id := metadata.TextureID(f.allocate())
	f.textures[id] = desc
	return id, nil
}

func (f *fakeContext) RemoveTexture(texture metadata.TextureID) {
	delete(f.textures, texture)
	f.removedTexs = append(f.removedTexs, texture)
}

func (f *fakeContext) CreateSampler(desc metadata.SamplerDescriptor) (metadata.SamplerID, error) {
	f.samplers++
	return metadata.SamplerID(f.allocate()), nil
}

func (f *fakeContext) CreateBindGroup(texture metadata.TextureID, sampler metadata.SamplerID) (metadata.BindGroupID, error) {
	id := metadata.BindGroupID(f.allocate())
	f.bindGroups[id] = texture
	return id, nil
}

func (f *fakeContext) CopyBufferToTexture(src metadata.BufferID, srcOffset uint64, bytesPerRow uint32, dst metadata.TextureID, origin [3]uint32, size metadata.Extent3D) error {
	f.copies = append(f.copies, fakeCopy{
		src:         src,
		bytesPerRow: bytesPerRow,
		dst:         dst,
		origin:      origin,
		size:        size,
	})
	return nil
}

func (f *fakeContext) BeginPass(desc metadata.PassDescriptor, attachments map[metadata.AttachmentSlot]metadata.TextureID) (renderer.PassEncoder, error) {
	f.beganPasses++
	f.lastEncoder = &fakeEncoder{}
	return f.lastEncoder, nil
}

// fakeEncoder records replayed commands.
type fakeEncoder struct {
	pipelines []metadata.PipelineHandle
	pushes    [][]byte
	scissors  [][4]uint32
	binds     []metadata.BindGroupID
	draws     [][2]uint32
	vertexBuf []metadata.BufferID
	ended     bool
}

func (e *fakeEncoder) SetPipeline(handle metadata.PipelineHandle, desc *metadata.PipelineDescriptor) error {
	e.pipelines = append(e.pipelines, handle)
	return nil
}

func (e *fakeEncoder) SetPushConstants(data []byte) {
	stored := make([]byte, len(data))
	copy(stored, data)
	e.pushes = append(e.pushes, stored)
}

func (e *fakeEncoder) SetVertexBuffer(slot uint32, buffer metadata.BufferID, offset uint64) {
	e.vertexBuf = append(e.vertexBuf, buffer)
}

func (e *fakeEncoder) SetBindGroup(index uint32, group metadata.BindGroupID) {
	e.binds = append(e.binds, group)
}

func (e *fakeEncoder) SetScissor(x, y, width, height uint32) {
	e.scissors = append(e.scissors, [4]uint32{x, y, width, height})
}

func (e *fakeEncoder) Draw(firstVertex, vertexCount uint32) {
	e.draws = append(e.draws, [2]uint32{firstVertex, vertexCount})
}

func (e *fakeEncoder) End() error {
	e.ended = true
	return nil
}

var _ renderer.ResourceContext = (*fakeContext)(nil)
