package ui

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/widget"
	"github.com/spaghettifunk/pixelui/widget/draw"
	"github.com/spaghettifunk/pixelui/widget/layout"
)

// ErrSessionClosed is returned by Sender.Send once the session is gone.
// Background work receiving it should stop producing messages.
var ErrSessionClosed = errors.New("ui: session is closed")

// commandBufferSize bounds the command channel. Producers block when the
// consumer falls this far behind; the per-frame drain never blocks.
const commandBufferSize = 100

// Sender feeds messages into a session's command channel from any
// goroutine. Senders are cheap to copy and stay valid after the session
// closes, at which point Send starts failing.
type Sender struct {
	commands chan<- interface{}
	done     <-chan struct{}
}

// Send delivers one message to the session, blocking while the channel is
// full. It returns ErrSessionClosed if the session was closed before the
// message was accepted.
func (s *Sender) Send(message interface{}) error {
	select {
	case <-s.done:
		return ErrSessionClosed
	default:
	}
	select {
	case s.commands <- message:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// SessionHandle is the capability surface the engine systems need from a
// session, independent of its concrete model type.
type SessionHandle interface {
	ID() uuid.UUID
	Resize(viewport layout.Rectangle)
	ReplaceStylesheet(style *widget.Style)
	ProcessCommands()
	Event(event widget.Event)
	NeedsRedraw() bool
	Draw() draw.List
	Close()
}

// Session is one live widget tree bound to an entity: the widget state,
// the bounded command channel background work reports back through, and
// the GPU draw state the reconciler maintains for it.
type Session struct {
	id uuid.UUID
	ui *widget.Ui

	commands  chan interface{}
	done      chan struct{}
	closeOnce sync.Once

	state drawState
}

// NewSession spawns a session for the given model.
func NewSession(model widget.Model, viewport layout.Rectangle) *Session {
	return &Session{
		id:       uuid.New(),
		ui:       widget.New(model, viewport),
		commands: make(chan interface{}, commandBufferSize),
		done:     make(chan struct{}),
		state:    newDrawState(),
	}
}

// ID returns the session's stable identity.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Ui exposes the typed widget state for callers that know the concrete
// session, such as tests and the owning application.
func (s *Session) Ui() *widget.Ui {
	return s.ui
}

// Sender returns a handle for feeding messages in from other goroutines.
func (s *Session) Sender() *Sender {
	return &Sender{commands: s.commands, done: s.done}
}

// ProcessCommands drains every message currently queued and applies them
// in arrival order. It never blocks; messages arriving during the drain
// are picked up next frame. Call this before feeding input events so
// background results are visible to the same frame's interaction.
func (s *Session) ProcessCommands() {
	for {
		select {
		case message := <-s.commands:
			s.spawn(s.ui.Command(message))
		default:
			return
		}
	}
}

// Event feeds one input event into the widget tree. Update work the model
// schedules in response runs on background goroutines and reports back
// through the session's own channel.
func (s *Session) Event(event widget.Event) {
	s.spawn(s.ui.Event(event))
}

// Resize updates the session viewport. Same-size calls are absorbed.
func (s *Session) Resize(viewport layout.Rectangle) {
	s.ui.Resize(viewport)
}

// ReplaceStylesheet swaps the active stylesheet and forces a redraw.
func (s *Session) ReplaceStylesheet(style *widget.Style) {
	s.ui.ReplaceStylesheet(style)
}

// NeedsRedraw reports whether Draw would produce a new draw list.
func (s *Session) NeedsRedraw() bool {
	return s.ui.NeedsRedraw()
}

// Draw builds the current draw list and clears the redraw flag.
func (s *Session) Draw() draw.List {
	return s.ui.Draw()
}

// Close despawns the session. Pending Sends fail with ErrSessionClosed;
// closing twice is a no-op. GPU resources are released separately by the
// reconciler owning the resource context.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

// closed reports whether Close has been called.
func (s *Session) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// spawn runs deferred update work on goroutines, feeding results back
// through the command channel. Results arriving after close are dropped.
func (s *Session) spawn(asyncs []widget.Async) {
	if len(asyncs) == 0 {
		return
	}
	sender := s.Sender()
	for _, async := range asyncs {
		go func(fn widget.Async) {
			result := fn()
			if result == nil {
				return
			}
			if err := sender.Send(result); err != nil {
				core.LogDebug("ui: dropping async result for closed session %s", s.id)
			}
		}(async)
	}
}
