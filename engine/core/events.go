package core

import "sync"

// EventCode identifies what kind of event is being fired. Application
// defined codes should start beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01
	// Keyboard key pressed. Data is KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02
	// Keyboard key released. Data is KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03
	// Mouse button pressed. Data is MouseEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04
	// Mouse button released. Data is MouseEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05
	// Mouse moved. Data is MouseEvent.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06
	// Mouse wheel. Data is MouseEvent.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07
	// Window resized or resolution changed. Data is ResizeEvent.
	EVENT_CODE_RESIZED EventCode = 0x08
	// Composed text input from the platform. Data is CharEvent.
	EVENT_CODE_CHAR_INPUT EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

// KeyEvent is the payload of key press/release events.
type KeyEvent struct {
	KeyCode KeyCode
}

// MouseEvent is the payload of mouse button, move and wheel events.
type MouseEvent struct {
	Button  Button
	PosX    float64
	PosY    float64
	ScrollX float64
	ScrollY float64
}

// ResizeEvent is the payload of window resize events.
type ResizeEvent struct {
	Width  uint32
	Height uint32
}

// CharEvent is the payload of composed character input.
type CharEvent struct {
	Char rune
}

// EventContext is one fired event: its code plus the typed payload.
type EventContext struct {
	Type EventCode
	Data interface{}
}

// FnOnEvent handles a fired event. Returning true marks the event handled
// and stops propagation to later listeners.
type FnOnEvent func(event EventContext) bool

type eventSystemState struct {
	mu       sync.RWMutex
	listener map[EventCode][]FnOnEvent
}

var onceEvent sync.Once
var eventState *eventSystemState

// EventSystemInitialize prepares the process wide event bus. Safe to call
// more than once.
func EventSystemInitialize() bool {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			listener: make(map[EventCode][]FnOnEvent),
		}
	})
	return true
}

// EventSystemShutdown drops all registered listeners.
func EventSystemShutdown() error {
	if eventState == nil {
		return nil
	}
	eventState.mu.Lock()
	eventState.listener = make(map[EventCode][]FnOnEvent)
	eventState.mu.Unlock()
	return nil
}

// EventRegister subscribes a callback for events fired with the given code.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.Lock()
	eventState.listener[code] = append(eventState.listener[code], onEvent)
	eventState.mu.Unlock()
	return true
}

// EventFire delivers an event to all listeners of its code, in
// registration order, until one reports it handled.
func EventFire(event EventContext) bool {
	if eventState == nil {
		return false
	}
	eventState.mu.RLock()
	listeners := eventState.listener[event.Type]
	eventState.mu.RUnlock()

	for _, listener := range listeners {
		if listener(event) {
			return true
		}
	}
	return false
}
