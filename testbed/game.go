// Package testbed is the demo application: a counter driven by two
// buttons, rendered through a UI session spawned on the engine's plugin.
package testbed

import (
	"fmt"
	"os"

	"github.com/spaghettifunk/pixelui/engine"
	"github.com/spaghettifunk/pixelui/engine/core"
	"github.com/spaghettifunk/pixelui/widget"
)

// Counter messages.
type (
	upPressed   struct{}
	downPressed struct{}
)

// Counter is the demo model: two buttons around a running count.
type Counter struct {
	Count int
}

// Update implements widget.Model.
func (c *Counter) Update(message interface{}) []widget.Async {
	switch message.(type) {
	case upPressed:
		c.Count++
	case downPressed:
		c.Count--
	}
	return nil
}

// View implements widget.Model.
func (c *Counter) View() widget.Node {
	column := widget.NewColumn(
		widget.NewButton("up", widget.NewText("Up"), upPressed{}),
		widget.NewText(fmt.Sprintf("Count: %d", c.Count)),
		widget.NewButton("down", widget.NewText("Down"), downPressed{}),
	)
	return widget.NewScroll("scroll", column)
}

type TestGame struct {
	*engine.Game
}

type gameState struct {
	counter *Counter

	width  uint32
	height uint32
}

// ConfigPath is the optional on-disk configuration; when the file is
// absent the built-in defaults apply.
const ConfigPath = "testbed.toml"

func NewTestGame() (*TestGame, error) {
	config := &engine.ApplicationConfig{
		StartPosX:      100,
		StartPosY:      100,
		StartWidth:     1280,
		StartHeight:    720,
		Name:           "PixelUI Testbed",
		LogLevel:       core.DebugLevel,
		StylesheetPath: "assets/styles/testbed.pwss",
	}
	if _, err := os.Stat(ConfigPath); err == nil {
		loaded, err := engine.LoadApplicationConfig(ConfigPath)
		if err != nil {
			return nil, err
		}
		config = loaded
	}

	state := &gameState{
		counter: &Counter{},
	}

	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State:             state,
		},
	}
	tg.Game.FnInitialize = tg.initialize
	tg.Game.FnUpdate = tg.update
	tg.Game.FnOnResize = tg.onResize
	return tg, nil
}

func (tg *TestGame) initialize(e *engine.Engine) error {
	state := tg.State.(*gameState)
	state.width, state.height = e.GetFramebufferSize()

	session, err := e.UIPlugin().Spawn(state.counter)
	if err != nil {
		return err
	}
	core.LogInfo("testbed: counter session %s ready", session.ID())
	return nil
}

func (tg *TestGame) update(deltaTime float64) error {
	return nil
}

func (tg *TestGame) onResize(width, height uint32) error {
	state := tg.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}
