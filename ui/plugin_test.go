package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/widget"
)

// mainPassStub stands in for the host's scene pass so the widget node can
// hang its edge off it.
type mainPassStub struct{}

func (mainPassStub) Name() string { return renderer.MainPassNodeName }

func (mainPassStub) Execute(ctx renderer.ResourceContext, slots renderer.Slots) error {
	return nil
}

func newTestPlugin(t *testing.T, ctx *fakeContext) (*Plugin, *renderer.Renderer) {
	t.Helper()
	core.EventSystemInitialize()
	t.Cleanup(func() {
		require.NoError(t, core.EventSystemShutdown())
	})

	r := renderer.New(ctx)
	require.True(t, r.Graph.AddNode(mainPassStub{}))

	plugin := NewPlugin()
	require.NoError(t, plugin.Setup(r))
	plugin.SetFrame(FrameParams{Width: 800, Height: 600, Scale: 1})
	return plugin, r
}

func TestPluginSetupRegistersNodeAndPipeline(t *testing.T) {
	plugin, r := newTestPlugin(t, newFakeContext())

	assert.True(t, r.Graph.HasNode(NodeName))
	assert.NotNil(t, r.Pipelines.Get(PipelineHandle))

	// Setting up again neither duplicates the node nor fails.
	require.NoError(t, plugin.Setup(r))
	assert.True(t, r.Graph.HasNode(NodeName))
}

func TestPluginSpawnBeforeSetup(t *testing.T) {
	plugin := NewPlugin()
	_, err := plugin.Spawn(&recordingModel{})
	assert.ErrorIs(t, err, ErrNotSetup)
}

func TestPluginSpawnAppliesStylesheet(t *testing.T) {
	plugin, _ := newTestPlugin(t, newFakeContext())

	style := widget.DefaultStyle()
	plugin.ApplyStylesheet(style)

	session, err := plugin.Spawn(&recordingModel{})
	require.NoError(t, err)
	t.Cleanup(func() { plugin.Despawn(session.ID()) })

	assert.Same(t, style, session.Ui().Style())
}

func TestPluginApplyStylesheetRestylesLiveSessions(t *testing.T) {
	plugin, _ := newTestPlugin(t, newFakeContext())

	session, err := plugin.Spawn(&recordingModel{})
	require.NoError(t, err)
	t.Cleanup(func() { plugin.Despawn(session.ID()) })

	plugin.Update(1.0 / 60.0)
	require.False(t, session.NeedsRedraw())

	// The reload is staged until the next Update; the frame thread owns
	// session internals, the watcher goroutine never touches them.
	style := widget.DefaultStyle()
	plugin.ApplyStylesheet(style)
	assert.False(t, session.NeedsRedraw())
	assert.NotSame(t, style, session.Ui().Style())

	plugin.Update(1.0 / 60.0)
	assert.Same(t, style, session.Ui().Style())
	assert.False(t, session.NeedsRedraw())
}

func TestPluginStylesheetReloadConcurrentWithUpdates(t *testing.T) {
	plugin, _ := newTestPlugin(t, newFakeContext())

	session, err := plugin.Spawn(&recordingModel{})
	require.NoError(t, err)
	t.Cleanup(func() { plugin.Despawn(session.ID()) })

	// Hammer reloads from a second goroutine the way the file watcher
	// does, while the frame thread keeps updating.
	last := widget.DefaultStyle()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 100; i++ {
			plugin.ApplyStylesheet(widget.DefaultStyle())
		}
		plugin.ApplyStylesheet(last)
	}()
	for i := 0; i < 100; i++ {
		plugin.Update(1.0 / 60.0)
	}
	<-done

	plugin.Update(1.0 / 60.0)
	assert.Same(t, last, session.Ui().Style())
}

func TestPluginRoutesInputEvents(t *testing.T) {
	ctx := newFakeContext()
	plugin, _ := newTestPlugin(t, ctx)

	model := &recordingModel{}
	session, err := plugin.Spawn(model)
	require.NoError(t, err)
	t.Cleanup(func() { plugin.Despawn(session.ID()) })

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_KEY_PRESSED,
		Data: core.KeyEvent{KeyCode: core.KEY_A},
	})
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_MOUSE_MOVED,
		Data: core.MouseEvent{PosX: 10, PosY: 20},
	})
	require.Len(t, plugin.pending, 2)
	assert.Equal(t, widget.EventPress{Key: widget.KeyA}, plugin.pending[0])
	assert.Equal(t, widget.EventCursor{X: 10, Y: 580}, plugin.pending[1])

	plugin.Update(1.0 / 60.0)
	assert.Empty(t, plugin.pending)
}

func TestPluginResizeUpdatesFrame(t *testing.T) {
	plugin, _ := newTestPlugin(t, newFakeContext())

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: core.ResizeEvent{Width: 1024, Height: 768},
	})
	require.Len(t, plugin.pending, 1)
	assert.Equal(t, widget.EventResize{Width: 1024, Height: 768}, plugin.pending[0])
	assert.Equal(t, uint32(1024), plugin.Frame().Width)
	assert.Equal(t, uint32(768), plugin.Frame().Height)

	// The same size again produces no event.
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: core.ResizeEvent{Width: 1024, Height: 768},
	})
	assert.Len(t, plugin.pending, 1)
}

func TestPluginUpdateReconcilesDirtySessions(t *testing.T) {
	ctx := newFakeContext()
	plugin, _ := newTestPlugin(t, ctx)

	session, err := plugin.Spawn(&recordingModel{})
	require.NoError(t, err)
	t.Cleanup(func() { plugin.Despawn(session.ID()) })

	require.True(t, session.NeedsRedraw())
	plugin.Update(1.0 / 60.0)
	assert.False(t, session.NeedsRedraw())

	// Clean sessions are not redrawn.
	buffers := len(ctx.buffers)
	plugin.Update(1.0 / 60.0)
	assert.Len(t, ctx.buffers, buffers)
}

func TestPluginReconcileFailureRetriesNextFrame(t *testing.T) {
	ctx := newFakeContext()
	plugin, _ := newTestPlugin(t, ctx)

	// An opaque background guarantees the session produces vertices.
	style := widget.DefaultStyle()
	style.Background = widget.RGBA(12, 12, 16, 255)
	plugin.ApplyStylesheet(style)

	session, err := plugin.Spawn(&recordingModel{})
	require.NoError(t, err)
	t.Cleanup(func() { plugin.Despawn(session.ID()) })

	ctx.failBuffers = true
	plugin.Update(1.0 / 60.0)
	assert.True(t, session.state.skip)
	assert.True(t, session.NeedsRedraw())

	// The next frame retries without any new input arriving.
	ctx.failBuffers = false
	plugin.Update(1.0 / 60.0)
	assert.False(t, session.state.skip)
	assert.False(t, session.NeedsRedraw())
	assert.True(t, session.state.hasVertexBuffer)
}

func TestPluginDespawnReleasesResources(t *testing.T) {
	ctx := newFakeContext()
	plugin, _ := newTestPlugin(t, ctx)

	session, err := plugin.Spawn(&recordingModel{})
	require.NoError(t, err)
	plugin.Update(1.0 / 60.0)

	plugin.Despawn(session.ID())
	assert.Empty(t, ctx.buffers)
	assert.Empty(t, ctx.textures)
	assert.ErrorIs(t, session.Sender().Send("late"), ErrSessionClosed)

	// Unknown ids are ignored.
	plugin.Despawn(session.ID())
}
