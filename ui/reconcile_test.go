package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/widget/draw"
)

func quadVertices(n int) []draw.Vertex {
	vertices := make([]draw.Vertex, n)
	for i := range vertices {
		vertices[i].Position = [2]float32{float32(i), float32(i)}
	}
	return vertices
}

func TestPadRowsAligned(t *testing.T) {
	// 64 texels of rgba8 are exactly one aligned row; data passes through.
	data := make([]byte, 64*4*2)
	padded, bytesPerRow := padRows(data, 64, 2, 4)
	assert.Equal(t, uint32(256), bytesPerRow)
	assert.Len(t, padded, len(data))
}

func TestPadRowsUnaligned(t *testing.T) {
	width, height := uint32(100), uint32(3)
	data := make([]byte, width*4*height)
	for i := range data {
		data[i] = byte(i)
	}

	padded, bytesPerRow := padRows(data, width, height, 4)
	assert.Equal(t, uint32(512), bytesPerRow)
	require.Len(t, padded, int(bytesPerRow*height))

	// Each padded row starts with the original tight row.
	rowBytes := width * 4
	for row := uint32(0); row < height; row++ {
		assert.Equal(t,
			data[row*rowBytes:(row+1)*rowBytes],
			padded[row*bytesPerRow:row*bytesPerRow+rowBytes])
	}
}

func TestPadRowsShortData(t *testing.T) {
	// Rows past the end of the data stay zeroed instead of reading out of
	// bounds.
	width, height := uint32(100), uint32(4)
	data := make([]byte, width*4)
	for i := range data {
		data[i] = 0xAB
	}

	padded, bytesPerRow := padRows(data, width, height, 4)
	assert.Equal(t, uint32(512), bytesPerRow)
	require.Len(t, padded, int(bytesPerRow*height))
	assert.Equal(t, data, padded[:len(data)])
	for _, b := range padded[bytesPerRow:] {
		require.Zero(t, b)
	}
}

func TestReconcileEmptyTextureDataAllocatesOnly(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := newTestSession(&recordingModel{})
	defer session.Close()

	// A texture declared without pixels is legal: the pixels arrive later
	// through sub-region patches.
	require.NoError(t, session.reconcile(ctx, queue, draw.List{
		Updates: []draw.Update{
			draw.UpdateTexture{ID: 2, Size: [2]uint32{100, 4}},
		},
	}))
	assert.Contains(t, session.state.textures, 2)
	assert.Equal(t, 0, queue.Len())
	assert.Empty(t, ctx.buffers)

	require.NoError(t, session.reconcile(ctx, queue, draw.List{
		Updates: []draw.Update{
			draw.UpdateTextureSubresource{ID: 2, Offset: [2]uint32{0, 1}, Size: [2]uint32{100, 1}, Data: make([]byte, 100*4)},
		},
	}))
	require.Equal(t, 1, queue.Len())
	require.NoError(t, queue.Execute(ctx))
	require.Len(t, ctx.copies, 1)
	assert.Equal(t, session.state.textures[2], ctx.copies[0].dst)
	assert.Equal(t, [3]uint32{0, 1, 0}, ctx.copies[0].origin)
}

func TestReconcileUploadsTexture(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := newTestSession(&recordingModel{})
	defer session.Close()

	list := draw.List{
		Updates: []draw.Update{
			draw.UpdateTexture{ID: 0, Size: [2]uint32{100, 2}, Data: make([]byte, 100*2*4)},
		},
		Commands: []draw.Command{draw.CommandTextured{Texture: 0, Offset: 0, Count: 6}},
		Vertices: quadVertices(6),
	}
	require.NoError(t, session.reconcile(ctx, queue, list))
	assert.False(t, session.state.skip)
	assert.Contains(t, session.state.textures, 0)
	assert.True(t, session.state.hasVertexBuffer)
	assert.Equal(t, 6, session.state.vertexCount)

	// The copy was recorded, not executed.
	assert.Equal(t, 1, queue.Len())
	assert.Empty(t, ctx.copies)

	require.NoError(t, queue.Execute(ctx))
	require.Len(t, ctx.copies, 1)
	assert.Equal(t, uint32(512), ctx.copies[0].bytesPerRow)
	assert.Equal(t, 0, queue.Len())

	// The staging buffer is released after the copy, the vertex buffer
	// stays live.
	require.Len(t, ctx.buffers, 1)
	_, ok := ctx.buffers[session.state.vertexBuffer]
	assert.True(t, ok)
}

func TestReconcileReplaceTextureReleasesOld(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := newTestSession(&recordingModel{})
	defer session.Close()

	upload := func() {
		list := draw.List{
			Updates: []draw.Update{
				draw.UpdateTexture{ID: 7, Size: [2]uint32{64, 64}, Data: make([]byte, 64*64*4)},
			},
			Vertices: quadVertices(3),
		}
		require.NoError(t, session.reconcile(ctx, queue, list))
		require.NoError(t, queue.Execute(ctx))
	}

	upload()
	first := session.state.textures[7]
	upload()
	second := session.state.textures[7]

	assert.NotEqual(t, first, second)
	require.Len(t, ctx.removedTexs, 1)
	assert.Equal(t, first, ctx.removedTexs[0])
	assert.Len(t, ctx.textures, 1)
}

func TestReconcileSubresourceBeforeCreatePanics(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := newTestSession(&recordingModel{})
	defer session.Close()

	list := draw.List{
		Updates: []draw.Update{
			draw.UpdateTextureSubresource{ID: 3, Offset: [2]uint32{0, 0}, Size: [2]uint32{8, 8}, Data: make([]byte, 8*8*4)},
		},
	}
	assert.Panics(t, func() {
		_ = session.reconcile(ctx, queue, list)
	})
}

func TestReconcileEmptyVerticesReleasesBuffer(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := newTestSession(&recordingModel{})
	defer session.Close()

	require.NoError(t, session.reconcile(ctx, queue, draw.List{Vertices: quadVertices(3)}))
	buffer := session.state.vertexBuffer
	require.True(t, session.state.hasVertexBuffer)

	require.NoError(t, session.reconcile(ctx, queue, draw.List{}))
	assert.False(t, session.state.hasVertexBuffer)
	assert.Equal(t, 0, session.state.vertexCount)
	assert.Contains(t, ctx.removedBufs, buffer)

	// An empty session emits no render commands at all.
	em := newEmitter(ctx, 0, 1)
	require.NoError(t, em.session(session))
	assert.Empty(t, em.commands)
}

func TestReconcileFailureMarksSessionSkipped(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := newTestSession(&recordingModel{})
	defer session.Close()

	require.NoError(t, session.reconcile(ctx, queue, draw.List{
		Commands: []draw.Command{draw.CommandColored{Offset: 0, Count: 3}},
		Vertices: quadVertices(3),
	}))
	require.False(t, session.state.skip)

	ctx.failBuffers = true
	err := session.reconcile(ctx, queue, draw.List{Vertices: quadVertices(6)})
	require.Error(t, err)
	assert.True(t, session.state.skip)

	// A skipped session emits nothing this frame.
	em := newEmitter(ctx, 0, 1)
	require.NoError(t, em.session(session))
	assert.Empty(t, em.commands)

	// The next successful reconciliation clears the skip.
	ctx.failBuffers = false
	require.NoError(t, session.reconcile(ctx, queue, draw.List{Vertices: quadVertices(3)}))
	assert.False(t, session.state.skip)
}

func TestReleaseDrawState(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := newTestSession(&recordingModel{})

	list := draw.List{
		Updates: []draw.Update{
			draw.UpdateTexture{ID: 0, Size: [2]uint32{16, 16}, Data: make([]byte, 16*16*4)},
		},
		Vertices: quadVertices(3),
	}
	require.NoError(t, session.reconcile(ctx, queue, list))
	require.NoError(t, queue.Execute(ctx))
	require.NotEmpty(t, ctx.textures)
	require.NotEmpty(t, ctx.buffers)

	session.Close()
	session.releaseDrawState(ctx)
	assert.Empty(t, ctx.textures)
	assert.Empty(t, ctx.buffers)
	assert.False(t, session.state.hasVertexBuffer)
}
