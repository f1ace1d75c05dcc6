package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
	"github.com/spaghettifunk/pixelui/widget/draw"
	"github.com/spaghettifunk/pixelui/widget/layout"
)

func reconciledSession(t *testing.T, ctx *fakeContext, queue *renderer.CommandQueue, list draw.List) *Session {
	t.Helper()
	session := newTestSession(&recordingModel{})
	t.Cleanup(session.Close)
	require.NoError(t, session.reconcile(ctx, queue, list))
	require.NoError(t, queue.Execute(ctx))
	return session
}

func TestEmitterScissorScaling(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := reconciledSession(t, ctx, queue, draw.List{
		Commands: []draw.Command{
			draw.CommandClip{Scissor: layout.FromXYWH(10, 20, 100, 50)},
			draw.CommandColored{Offset: 0, Count: 3},
		},
		Vertices: quadVertices(3),
	})

	em := newEmitter(ctx, 0, 2.0)
	require.NoError(t, em.session(session))

	require.Len(t, em.commands, 3)
	assert.Equal(t, metadata.SetVertexBuffer{Slot: 0, Buffer: session.state.vertexBuffer}, em.commands[0])
	assert.Equal(t, metadata.SetScissor{X: 20, Y: 40, Width: 200, Height: 100}, em.commands[1])
	assert.Equal(t, metadata.Draw{FirstVertex: 0, VertexCount: 3}, em.commands[2])
}

func TestEmitterTextureMissPanics(t *testing.T) {
	ctx := newFakeContext()
	session := newTestSession(&recordingModel{})
	defer session.Close()
	queue := renderer.NewCommandQueue()

	require.NoError(t, session.reconcile(ctx, queue, draw.List{
		Commands: []draw.Command{draw.CommandTextured{Texture: 9, Offset: 0, Count: 3}},
		Vertices: quadVertices(3),
	}))

	em := newEmitter(ctx, 0, 1.0)
	assert.Panics(t, func() {
		_ = em.session(session)
	})
}

func TestEmitterRedundantBindsSkipped(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := reconciledSession(t, ctx, queue, draw.List{
		Updates: []draw.Update{
			draw.UpdateTexture{ID: 0, Size: [2]uint32{8, 8}, Data: make([]byte, 8*8*4)},
		},
		Commands: []draw.Command{
			draw.CommandTextured{Texture: 0, Offset: 0, Count: 3},
			draw.CommandTextured{Texture: 0, Offset: 3, Count: 3},
			draw.CommandColored{Offset: 6, Count: 3},
		},
		Vertices: quadVertices(9),
	})

	em := newEmitter(ctx, 0, 1.0)
	require.NoError(t, em.session(session))

	binds := 0
	draws := 0
	for _, command := range em.commands {
		switch command.(type) {
		case metadata.SetBindGroup:
			binds++
		case metadata.Draw:
			draws++
		}
	}
	// One bind serves all three draws: the second textured draw shares the
	// texture and the colored draw reuses whatever is bound.
	assert.Equal(t, 1, binds)
	assert.Equal(t, 3, draws)

	// The bind group was created lazily, once, and cached on the session.
	assert.Len(t, ctx.bindGroups, 1)
	require.NoError(t, em.session(session))
	assert.Len(t, ctx.bindGroups, 1)
}

func TestEmitterBindGroupCacheDroppedOnReplace(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	list := draw.List{
		Updates: []draw.Update{
			draw.UpdateTexture{ID: 0, Size: [2]uint32{8, 8}, Data: make([]byte, 8*8*4)},
		},
		Commands: []draw.Command{draw.CommandTextured{Texture: 0, Offset: 0, Count: 3}},
		Vertices: quadVertices(3),
	}
	session := reconciledSession(t, ctx, queue, list)

	em := newEmitter(ctx, 0, 1.0)
	require.NoError(t, em.session(session))
	require.Len(t, session.state.bindGroups, 1)
	stale := session.state.bindGroups[0]

	// Replacing the texture invalidates the cached bind group; the next
	// emission builds a fresh one against the new texture.
	require.NoError(t, session.reconcile(ctx, queue, list))
	require.NoError(t, queue.Execute(ctx))
	assert.Empty(t, session.state.bindGroups)

	em = newEmitter(ctx, 0, 1.0)
	require.NoError(t, em.session(session))
	require.Len(t, session.state.bindGroups, 1)
	assert.NotEqual(t, stale, session.state.bindGroups[0])
	assert.Equal(t, session.state.textures[0], ctx.bindGroups[session.state.bindGroups[0]])
}

func TestEmitterColoredWithoutTextures(t *testing.T) {
	ctx := newFakeContext()
	queue := renderer.NewCommandQueue()
	session := reconciledSession(t, ctx, queue, draw.List{
		Commands: []draw.Command{draw.CommandColored{Offset: 0, Count: 6}},
		Vertices: quadVertices(6),
	})

	em := newEmitter(ctx, 0, 1.0)
	require.NoError(t, em.session(session))

	// No texture to bind; the draw goes out without a SetBindGroup.
	require.Len(t, em.commands, 2)
	assert.IsType(t, metadata.SetVertexBuffer{}, em.commands[0])
	assert.IsType(t, metadata.Draw{}, em.commands[1])
}
