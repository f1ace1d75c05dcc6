package widget

// Key is the widget library's own key enumeration. Host scan codes are
// translated into these before they reach a session; anything the
// enumeration cannot express is dropped at the boundary.
type Key uint8

const (
	KeyUnknown Key = iota
	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ
	KeyEscape
	KeyTab
	KeyShift
	KeyCtrl
	KeyAlt
	KeySpace
	KeyEnter
	KeyBackspace
	KeyHome
	KeyEnd
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyLeftMouseButton
	KeyRightMouseButton
	KeyMiddleMouseButton
)

// Modifiers is the full modifier state at the time of an event.
type Modifiers struct {
	Ctrl  bool
	Alt   bool
	Shift bool
	Logo  bool
}

// Event is one normalized input event. Events are transient: constructed
// per frame by the host side translator and consumed immediately.
type Event interface {
	isEvent()
}

// EventResize reports a new viewport size. Only emitted when the size
// actually changed.
type EventResize struct {
	Width  float32
	Height float32
}

// EventModifiers reports the complete modifier state after any modifier
// key transition, so consumers never have to reconstruct combinations
// from individual presses.
type EventModifiers struct {
	Modifiers Modifiers
}

// EventPress reports a key or mouse button transition to pressed.
type EventPress struct {
	Key Key
}

// EventRelease reports a key or mouse button transition to released.
type EventRelease struct {
	Key Key
}

// EventText carries one composed text character.
type EventText struct {
	Char rune
}

// EventCursor reports the cursor position in the widget library's
// coordinate convention.
type EventCursor struct {
	X float32
	Y float32
}

// EventScroll reports mouse wheel movement.
type EventScroll struct {
	DeltaX float32
	DeltaY float32
}

func (EventResize) isEvent()    {}
func (EventModifiers) isEvent() {}
func (EventPress) isEvent()     {}
func (EventRelease) isEvent()   {}
func (EventText) isEvent()      {}
func (EventCursor) isEvent()    {}
func (EventScroll) isEvent()    {}
