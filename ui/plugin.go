package ui

import (
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/engine/renderer"
	"github.com/spaghettifunk/pixelui/engine/renderer/metadata"
	"github.com/spaghettifunk/pixelui/widget"
	"github.com/spaghettifunk/pixelui/widget/layout"
)

// ErrNotSetup is returned when sessions are spawned before the plugin was
// wired into a renderer.
var ErrNotSetup = errors.New("ui: plugin is not set up")

// FrameParams is the per frame host state the update and render systems
// need: the framebuffer size and the display scale applied to scissor
// rectangles.
type FrameParams struct {
	Width  uint32
	Height uint32
	Scale  float32
}

// Plugin owns every live session and the shared render side state: the
// graph node, the pipeline registration, the lazily created sampler and
// the current stylesheet applied to new sessions.
type Plugin struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*Session

	renderer  *renderer.Renderer
	queue     *renderer.CommandQueue
	pipelines *renderer.PipelineRegistry

	translator *Translator
	pending    []widget.Event

	frame FrameParams

	sampler    metadata.SamplerID
	hasSampler bool

	// style is the stylesheet for newly spawned sessions; pendingStyle
	// holds a reload staged by the asset pipeline until the frame thread
	// picks it up in Update. Both are guarded by mu; session internals are
	// only ever touched from the frame thread.
	style        *widget.Style
	pendingStyle *widget.Style
}

// NewPlugin returns an unwired plugin. Call Setup before spawning
// sessions.
func NewPlugin() *Plugin {
	return &Plugin{
		sessions:   make(map[uuid.UUID]*Session),
		translator: NewTranslator(),
		frame:      FrameParams{Scale: 1},
	}
}

// Setup registers the widget pipeline and the graph node after the main
// pass, and subscribes to the host input events. Setting up twice is a
// no-op for the render side; the graph and registry absorb repeats.
func (p *Plugin) Setup(r *renderer.Renderer) error {
	p.renderer = r
	p.queue = r.Queue
	p.pipelines = r.Pipelines

	registerPipeline(r.Pipelines)
	node := &Node{plugin: p}
	if r.Graph.AddNode(node) {
		if err := r.Graph.AddEdge(renderer.MainPassNodeName, NodeName); err != nil {
			return err
		}
	}

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, p.onKey(true))
	core.EventRegister(core.EVENT_CODE_KEY_RELEASED, p.onKey(false))
	core.EventRegister(core.EVENT_CODE_BUTTON_PRESSED, p.onButton(true))
	core.EventRegister(core.EVENT_CODE_BUTTON_RELEASED, p.onButton(false))
	core.EventRegister(core.EVENT_CODE_MOUSE_MOVED, p.onMouseMove)
	core.EventRegister(core.EVENT_CODE_MOUSE_WHEEL, p.onMouseWheel)
	core.EventRegister(core.EVENT_CODE_RESIZED, p.onResize)
	core.EventRegister(core.EVENT_CODE_CHAR_INPUT, p.onChar)
	return nil
}

// Spawn creates a session for model sized to the current frame, applies
// the active stylesheet and registers it for update and drawing.
func (p *Plugin) Spawn(model widget.Model) (*Session, error) {
	if p.renderer == nil {
		return nil, ErrNotSetup
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	session := NewSession(model, layout.FromWH(float32(p.frame.Width), float32(p.frame.Height)))
	if p.style != nil {
		session.ReplaceStylesheet(p.style)
	}
	p.sessions[session.id] = session
	core.LogDebug("ui: spawned session %s", session.id)
	return session, nil
}

// Despawn closes a session and releases its GPU resources. Unknown ids
// are ignored.
func (p *Plugin) Despawn(id uuid.UUID) {
	p.mu.Lock()
	session, ok := p.sessions[id]
	delete(p.sessions, id)
	p.mu.Unlock()
	if !ok {
		return
	}
	session.Close()
	session.releaseDrawState(p.renderer.Context)
	core.LogDebug("ui: despawned session %s", id)
}

// ApplyStylesheet makes style the stylesheet for sessions spawned later
// and stages it for every live session. The asset pipeline calls this on
// load and on hot reload from the watcher goroutine; live sessions only
// pick the style up at the start of the next Update, on the frame thread
// that owns them.
func (p *Plugin) ApplyStylesheet(style *widget.Style) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.style = style
	p.pendingStyle = style
}

// takePendingStyle claims a staged stylesheet reload, if any.
func (p *Plugin) takePendingStyle() *widget.Style {
	p.mu.Lock()
	defer p.mu.Unlock()
	style := p.pendingStyle
	p.pendingStyle = nil
	return style
}

// Frame returns the last seen frame parameters.
func (p *Plugin) Frame() FrameParams {
	return p.frame
}

// SetFrame seeds the frame parameters before the first resize event, from
// the window the host created. The scale factor multiplies every scissor
// rectangle at emission time.
func (p *Plugin) SetFrame(params FrameParams) {
	p.frame = params
	p.translator.TranslateResize(params.Width, params.Height)
}

// Update runs one frame of UI work: apply a staged stylesheet reload,
// drain every session's command channel, feed the frame's translated
// input to every session, then rebuild and reconcile the draw lists of
// sessions that need a redraw. A session whose GPU upload fails is logged,
// skipped this frame and left dirty so the next frame retries.
func (p *Plugin) Update(deltaTime float64) {
	events := p.pending
	p.pending = nil
	style := p.takePendingStyle()

	for _, session := range p.ordered() {
		if style != nil {
			session.ReplaceStylesheet(style)
		}
		session.ProcessCommands()
		for _, event := range events {
			session.Event(event)
		}
		if !session.NeedsRedraw() {
			continue
		}
		list := session.Draw()
		if err := session.reconcile(p.renderer.Context, p.queue, list); err != nil {
			core.LogWarn("ui: session %s reconciliation failed, retrying next frame: %v", session.id, err)
			session.ui.Invalidate()
		}
	}
}

// ordered returns the live sessions sorted by id so command emission is
// deterministic across frames.
func (p *Plugin) ordered() []*Session {
	p.mu.Lock()
	defer p.mu.Unlock()
	sessions := make([]*Session, 0, len(p.sessions))
	for _, session := range p.sessions {
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].id.String() < sessions[j].id.String()
	})
	return sessions
}

// ensureSampler creates the shared linear sampler on first use.
func (p *Plugin) ensureSampler(ctx renderer.ResourceContext) (metadata.SamplerID, error) {
	if p.hasSampler {
		return p.sampler, nil
	}
	sampler, err := ctx.CreateSampler(metadata.SamplerDescriptor{
		MinFilter: metadata.FilterLinear,
		MagFilter: metadata.FilterLinear,
	})
	if err != nil {
		return 0, err
	}
	p.sampler = sampler
	p.hasSampler = true
	return sampler, nil
}

func (p *Plugin) onKey(pressed bool) core.FnOnEvent {
	return func(event core.EventContext) bool {
		key, ok := event.Data.(core.KeyEvent)
		if !ok {
			return false
		}
		p.pending = append(p.pending, p.translator.TranslateKey(key.KeyCode, pressed)...)
		return false
	}
}

func (p *Plugin) onButton(pressed bool) core.FnOnEvent {
	return func(event core.EventContext) bool {
		mouse, ok := event.Data.(core.MouseEvent)
		if !ok {
			return false
		}
		p.pending = append(p.pending, p.translator.TranslateButton(mouse.Button, pressed)...)
		return false
	}
}

func (p *Plugin) onMouseMove(event core.EventContext) bool {
	mouse, ok := event.Data.(core.MouseEvent)
	if !ok {
		return false
	}
	p.pending = append(p.pending, p.translator.TranslateCursor(mouse.PosX, mouse.PosY))
	return false
}

func (p *Plugin) onMouseWheel(event core.EventContext) bool {
	mouse, ok := event.Data.(core.MouseEvent)
	if !ok {
		return false
	}
	p.pending = append(p.pending, p.translator.TranslateScroll(mouse.ScrollX, mouse.ScrollY))
	return false
}

func (p *Plugin) onResize(event core.EventContext) bool {
	resize, ok := event.Data.(core.ResizeEvent)
	if !ok {
		return false
	}
	translated, changed := p.translator.TranslateResize(resize.Width, resize.Height)
	if !changed {
		return false
	}
	p.frame.Width = resize.Width
	p.frame.Height = resize.Height
	p.pending = append(p.pending, translated)
	return false
}

func (p *Plugin) onChar(event core.EventContext) bool {
	char, ok := event.Data.(core.CharEvent)
	if !ok {
		return false
	}
	p.pending = append(p.pending, p.translator.TranslateChar(char.Char))
	return false
}
