package core

import "sync"

// Button is a mouse button index.
type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// KeyCode is a host keyboard scan code. The values follow the usual
// virtual key layout so platform layers can map into them directly.
type KeyCode uint16

const (
	KEY_BACKSPACE  KeyCode = 0x08
	KEY_TAB        KeyCode = 0x09
	KEY_ENTER      KeyCode = 0x0D
	KEY_SHIFT      KeyCode = 0x10
	KEY_CONTROL    KeyCode = 0x11
	KEY_ALT        KeyCode = 0x12
	KEY_PAUSE      KeyCode = 0x13
	KEY_CAPITAL    KeyCode = 0x14
	KEY_ESCAPE     KeyCode = 0x1B
	KEY_SPACE      KeyCode = 0x20
	KEY_PRIOR      KeyCode = 0x21
	KEY_NEXT       KeyCode = 0x22
	KEY_END        KeyCode = 0x23
	KEY_HOME       KeyCode = 0x24
	KEY_LEFT       KeyCode = 0x25
	KEY_UP         KeyCode = 0x26
	KEY_RIGHT      KeyCode = 0x27
	KEY_DOWN       KeyCode = 0x28
	KEY_INSERT     KeyCode = 0x2D
	KEY_DELETE     KeyCode = 0x2E
	KEY_0          KeyCode = 0x30
	KEY_1          KeyCode = 0x31
	KEY_2          KeyCode = 0x32
	KEY_3          KeyCode = 0x33
	KEY_4          KeyCode = 0x34
	KEY_5          KeyCode = 0x35
	KEY_6          KeyCode = 0x36
	KEY_7          KeyCode = 0x37
	KEY_8          KeyCode = 0x38
	KEY_9          KeyCode = 0x39
	KEY_A          KeyCode = 0x41
	KEY_B          KeyCode = 0x42
	KEY_C          KeyCode = 0x43
	KEY_D          KeyCode = 0x44
	KEY_E          KeyCode = 0x45
	KEY_F          KeyCode = 0x46
	KEY_G          KeyCode = 0x47
	KEY_H          KeyCode = 0x48
	KEY_I          KeyCode = 0x49
	KEY_J          KeyCode = 0x4A
	KEY_K          KeyCode = 0x4B
	KEY_L          KeyCode = 0x4C
	KEY_M          KeyCode = 0x4D
	KEY_N          KeyCode = 0x4E
	KEY_O          KeyCode = 0x4F
	KEY_P          KeyCode = 0x50
	KEY_Q          KeyCode = 0x51
	KEY_R          KeyCode = 0x52
	KEY_S          KeyCode = 0x53
	KEY_T          KeyCode = 0x54
	KEY_U          KeyCode = 0x55
	KEY_V          KeyCode = 0x56
	KEY_W          KeyCode = 0x57
	KEY_X          KeyCode = 0x58
	KEY_Y          KeyCode = 0x59
	KEY_Z          KeyCode = 0x5A
	KEY_LWIN       KeyCode = 0x5B
	KEY_RWIN       KeyCode = 0x5C
	KEY_F1         KeyCode = 0x70
	KEY_F2         KeyCode = 0x71
	KEY_F3         KeyCode = 0x72
	KEY_F4         KeyCode = 0x73
	KEY_F5         KeyCode = 0x74
	KEY_F6         KeyCode = 0x75
	KEY_F7         KeyCode = 0x76
	KEY_F8         KeyCode = 0x77
	KEY_F9         KeyCode = 0x78
	KEY_F10        KeyCode = 0x79
	KEY_F11        KeyCode = 0x7A
	KEY_F12        KeyCode = 0x7B
	KEY_LSHIFT     KeyCode = 0xA0
	KEY_RSHIFT     KeyCode = 0xA1
	KEY_LCONTROL   KeyCode = 0xA2
	KEY_RCONTROL   KeyCode = 0xA3
	KEY_LALT       KeyCode = 0xA4
	KEY_RALT       KeyCode = 0xA5
	KEYS_MAX_KEYS  KeyCode = 0x100
)

// MouseState holds the current mouse position and button states.
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// KeyboardState holds pressed/released flags per scan code.
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// InputState holds current and previous keyboard and mouse snapshots.
type InputState struct {
	KeyboardCurrent  KeyboardState
	KeyboardPrevious KeyboardState
	MouseCurrent     MouseState
	MousePrevious    MouseState
}

var onceInput sync.Once
var inputInitialized bool
var inputState *InputState

// InputInitialize prepares the input subsystem. Safe to call more than once.
func InputInitialize() error {
	onceInput.Do(func() {
		inputState = &InputState{}
		inputInitialized = true
	})
	LogInfo("Input subsystem initialized.")
	return nil
}

// InputShutdown stops input processing.
func InputShutdown() error {
	inputInitialized = false
	return nil
}

// InputUpdate copies current states to previous states. Call once per frame
// after all systems consumed this frame's input.
func InputUpdate(deltaTime float64) error {
	if !inputInitialized {
		return nil
	}
	inputState.KeyboardPrevious = inputState.KeyboardCurrent
	inputState.MousePrevious = inputState.MouseCurrent
	return nil
}

// InputIsKeyDown reports whether key is currently pressed.
func InputIsKeyDown(key KeyCode) bool {
	if !inputInitialized {
		return false
	}
	return inputState.KeyboardCurrent.Keys[key]
}

// InputIsButtonDown reports whether the mouse button is currently pressed.
func InputIsButtonDown(button Button) bool {
	if !inputInitialized {
		return false
	}
	return inputState.MouseCurrent.Buttons[button]
}

// InputGetMousePosition returns the current cursor position in window
// coordinates, origin top-left.
func InputGetMousePosition() (float64, float64) {
	if !inputInitialized {
		return 0, 0
	}
	return inputState.MouseCurrent.X, inputState.MouseCurrent.Y
}

// InputProcessKey records a key transition and fires a key event when the
// state actually changed.
func InputProcessKey(key KeyCode, pressed bool) error {
	if !inputInitialized || key >= KEYS_MAX_KEYS {
		return nil
	}
	if inputState.KeyboardCurrent.Keys[key] == pressed {
		return nil
	}
	inputState.KeyboardCurrent.Keys[key] = pressed

	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	EventFire(EventContext{
		Type: code,
		Data: KeyEvent{KeyCode: key},
	})
	return nil
}

// InputProcessButton records a mouse button transition and fires an event
// when the state actually changed.
func InputProcessButton(button Button, pressed bool) error {
	if !inputInitialized || button >= BUTTON_MAX_BUTTONS {
		return nil
	}
	if inputState.MouseCurrent.Buttons[button] == pressed {
		return nil
	}
	inputState.MouseCurrent.Buttons[button] = pressed

	code := EVENT_CODE_BUTTON_RELEASED
	if pressed {
		code = EVENT_CODE_BUTTON_PRESSED
	}
	EventFire(EventContext{
		Type: code,
		Data: MouseEvent{Button: button, PosX: inputState.MouseCurrent.X, PosY: inputState.MouseCurrent.Y},
	})
	return nil
}

// InputProcessMouseMove records a cursor move and fires an event only when
// the position actually changed.
func InputProcessMouseMove(x, y float64) error {
	if !inputInitialized {
		return nil
	}
	if inputState.MouseCurrent.X == x && inputState.MouseCurrent.Y == y {
		return nil
	}
	inputState.MouseCurrent.X = x
	inputState.MouseCurrent.Y = y

	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_MOVED,
		Data: MouseEvent{PosX: x, PosY: y},
	})
	return nil
}

// InputProcessMouseWheel fires a wheel event.
func InputProcessMouseWheel(deltaX, deltaY float64) error {
	if !inputInitialized {
		return nil
	}
	EventFire(EventContext{
		Type: EVENT_CODE_MOUSE_WHEEL,
		Data: MouseEvent{ScrollX: deltaX, ScrollY: deltaY},
	})
	return nil
}

// InputProcessChar fires a composed character event.
func InputProcessChar(char rune) error {
	if !inputInitialized {
		return nil
	}
	EventFire(EventContext{
		Type: EVENT_CODE_CHAR_INPUT,
		Data: CharEvent{Char: char},
	})
	return nil
}
